package font

import (
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Source represents a parsed font file.
// One Source can back faces at any number of sizes; it is heavyweight and
// should be shared.
//
// Source is safe for concurrent use: the parsed font is only read, and
// every reader brings its own sfnt.Buffer.
type Source struct {
	font *opentype.Font
	name string
}

// NewSource parses TTF or OTF data. The data must not be modified
// afterwards.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &Source{font: f, name: extractName(f)}, nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string) (*Source, error) {
	// #nosec G304 -- font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}
	return NewSource(data)
}

// Name returns the full font name, falling back to the family name.
func (s *Source) Name() string {
	return s.name
}

// NumGlyphs returns the number of glyphs in the font.
func (s *Source) NumGlyphs() int {
	return s.font.NumGlyphs()
}

// HasGlyph reports whether the font maps r to a real glyph.
func (s *Source) HasGlyph(r rune) bool {
	var buf sfnt.Buffer
	idx, err := s.font.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// ItalicAngle returns the italic angle from the post table, in degrees
// counter-clockwise from vertical. Upright fonts report 0.
func (s *Source) ItalicAngle() float64 {
	if pt := s.font.PostTable(); pt != nil {
		return pt.ItalicAngle
	}
	return 0
}

func extractName(f *opentype.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

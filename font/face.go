package font

import "github.com/gogpu/textflow/glyphcache"

// Face is one font instance at one size. It is the only source of
// metrics for the layout engine; the engine never measures or rasterizes
// glyphs itself.
//
// Implementations serialize their own state, so a Face may be shared by
// formatters running on different goroutines.
type Face interface {
	// ID identifies the font instance. Layout compares IDs to find font
	// changes between runs.
	ID() uint32

	// MeasureText writes the cumulative pixel advance after each character
	// of text into widths and its break class into flags, and returns how
	// many leading characters fit within maxWidth (all of them when maxWidth
	// is negative). Both buffers must be at least len(text) long.
	//
	// A character without a glyph is measured as defaultChar; when that is
	// missing too its width is zero. letterSpacing is added after every
	// visible character.
	MeasureText(text []rune, widths []int, flags []CharFlags, maxWidth int,
		defaultChar rune, letterSpacing int, allowHyphenation bool) int

	// CharWidth returns the advance of r in pixels, 0 if r has no glyph.
	CharWidth(r rune) int

	// Size returns the em size in pixels.
	Size() int

	// Height returns the line height in pixels.
	Height() int

	// Baseline returns the distance from the line top to the baseline.
	Baseline() int

	// IsItalic reports whether glyphs overhang to the right.
	IsItalic() bool

	// VisualHangWidth returns the widest of the hyphen and , . ! : ;
	// which is the margin reserved for hanging punctuation.
	VisualHangWidth() int

	// Glyph returns the bitmap of r rasterized at phase. Bitmaps come from
	// the registry's glyph cache; a miss rasterizes and caches the glyph.
	// ok is false when the font has no glyph for r.
	Glyph(r rune, phase glyphcache.Phase) (g glyphcache.Glyph, ok bool)
}

// hangWidth returns the largest advance among HangChars.
func hangWidth(advance func(rune) int) int {
	w := 0
	for _, r := range HangChars {
		w = max(w, advance(r))
	}
	return w
}

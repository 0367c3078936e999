package font

import (
	"slices"
	"sync"

	"github.com/gogpu/textflow/glyphcache"
)

// FixedMetrics describes a synthetic font with integer metrics.
// Zero fields take the defaults noted below.
type FixedMetrics struct {
	// Advance is the width of every character not listed in Widths.
	// Default: 10
	Advance int

	// Widths overrides the advance of individual characters.
	Widths map[rune]int

	// Height is the line height. Default: 20
	Height int

	// Baseline is the distance from the line top to the baseline.
	// Default: 16
	Baseline int

	// Size is the em size. Default: Height
	Size int

	Italic bool

	// Missing lists characters the font has no glyph for.
	Missing []rune
}

func (m *FixedMetrics) normalize() {
	if m.Advance <= 0 {
		m.Advance = 10
	}
	if m.Height <= 0 {
		m.Height = 20
	}
	if m.Baseline <= 0 {
		m.Baseline = min(16, m.Height)
	}
	if m.Size <= 0 {
		m.Size = m.Height
	}
}

// FixedFace is a Face with fixed synthetic metrics. Glyphs rasterize as
// solid boxes of the character's advance by the baseline height; spaces
// and zero-width characters have empty bitmaps.
//
// FixedFace makes layout results independent of font files and is the
// face used throughout the package tests.
type FixedFace struct {
	mu      sync.Mutex
	metrics FixedMetrics
	cache   *glyphcache.Cache
	local   *glyphcache.Local
}

var _ Face = (*FixedFace)(nil)

// NewFixedFace creates a FixedFace caching its bitmaps in cache.
// A nil cache gives the face a private cache with the default capacity.
func NewFixedFace(m FixedMetrics, cache *glyphcache.Cache) *FixedFace {
	m.normalize()
	if cache == nil {
		cache = glyphcache.New(glyphcache.DefaultConfig())
	}
	return &FixedFace{metrics: m, cache: cache, local: cache.NewLocal()}
}

// ID implements Face.ID.
func (f *FixedFace) ID() uint32 {
	return f.local.ID()
}

// Metrics returns the normalized metrics of the face.
func (f *FixedFace) Metrics() FixedMetrics {
	return f.metrics
}

// Local returns the glyph cache index of this face.
func (f *FixedFace) Local() *glyphcache.Local {
	return f.local
}

func (f *FixedFace) advance(r rune) (int, bool) {
	if slices.Contains(f.metrics.Missing, r) {
		return 0, false
	}
	if w, ok := f.metrics.Widths[r]; ok {
		return w, true
	}
	return f.metrics.Advance, true
}

// MeasureText implements Face.MeasureText.
func (f *FixedFace) MeasureText(text []rune, widths []int, flags []CharFlags, maxWidth int,
	defaultChar rune, letterSpacing int, allowHyphenation bool,
) int {
	return measureRunes(text, widths, flags, maxWidth, defaultChar, letterSpacing,
		allowHyphenation, f.advance, nil)
}

// CharWidth implements Face.CharWidth.
func (f *FixedFace) CharWidth(r rune) int {
	w, _ := f.advance(r)
	return w
}

// Size implements Face.Size.
func (f *FixedFace) Size() int { return f.metrics.Size }

// Height implements Face.Height.
func (f *FixedFace) Height() int { return f.metrics.Height }

// Baseline implements Face.Baseline.
func (f *FixedFace) Baseline() int { return f.metrics.Baseline }

// IsItalic implements Face.IsItalic.
func (f *FixedFace) IsItalic() bool { return f.metrics.Italic }

// VisualHangWidth implements Face.VisualHangWidth.
func (f *FixedFace) VisualHangWidth() int {
	return hangWidth(f.CharWidth)
}

// Glyph implements Face.Glyph.
func (f *FixedFace) Glyph(r rune, phase glyphcache.Phase) (glyphcache.Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if g, ok := f.cache.Get(f.local, r, phase); ok {
		return g, true
	}
	adv, ok := f.advance(r)
	if !ok {
		return glyphcache.Glyph{}, false
	}
	g := glyphcache.Glyph{Char: r, Phase: phase, Advance: adv}
	if !isSpaceRune(r) && r != '\n' && adv > 0 {
		g.Width = adv
		g.Height = f.metrics.Baseline
		g.OriginY = -f.metrics.Baseline
		g.Coverage = make([]byte, g.Width*g.Height)
		for i := range g.Coverage {
			g.Coverage[i] = 0xFF
		}
	}
	f.cache.Put(f.local, g)
	return g, true
}

// ClearGlyphs drops this face's cached bitmaps.
func (f *FixedFace) ClearGlyphs() {
	f.cache.ClearLocal(f.local)
}

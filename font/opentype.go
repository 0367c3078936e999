package font

import (
	"image"
	"log/slog"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textflow/glyphcache"
)

// OpenTypeFace is a Face backed by golang.org/x/image/font/opentype.
//
// Advances are memoized in a WidthCache and bitmaps in the registry's
// glyph cache. Changing the hinting, kerning or antialiasing mode clears
// both for this face only.
//
// OpenTypeFace is safe for concurrent use.
type OpenTypeFace struct {
	mu sync.Mutex

	src    *Source
	size   float64
	config faceConfig
	face   xfont.Face

	widths  glyphcache.WidthCache
	missing map[rune]bool

	cache  *glyphcache.Cache
	local  *glyphcache.Local
	closed bool

	height, baseline, hang int
	italic                 bool

	logger *slog.Logger
}

var _ Face = (*OpenTypeFace)(nil)

func newOpenTypeFace(src *Source, size float64, config faceConfig, cache *glyphcache.Cache, logger *slog.Logger) (*OpenTypeFace, error) {
	f := &OpenTypeFace{
		src:     src,
		size:    size,
		config:  config,
		missing: make(map[rune]bool),
		cache:   cache,
		local:   cache.NewLocal(),
		logger:  logger,
	}
	if err := f.openLocked(); err != nil {
		cache.ReleaseLocal(f.local)
		return nil, err
	}
	return f, nil
}

// openLocked (re)creates the x/image face and derived metrics.
func (f *OpenTypeFace) openLocked() error {
	face, err := opentype.NewFace(f.src.font, &opentype.FaceOptions{
		Size:    f.size,
		DPI:     f.config.dpi,
		Hinting: f.config.hinting,
	})
	if err != nil {
		return err
	}
	if f.face != nil {
		_ = f.face.Close()
	}
	f.face = face

	m := face.Metrics()
	f.height = m.Height.Round()
	f.baseline = m.Ascent.Round()
	f.italic = m.CaretSlope.X != 0 || f.src.ItalicAngle() != 0
	f.hang = hangWidth(func(r rune) int {
		w, _ := f.advanceLocked(r)
		return w
	})
	return nil
}

// ID implements Face.ID.
func (f *OpenTypeFace) ID() uint32 {
	return f.local.ID()
}

// Source returns the font file this face was created from.
func (f *OpenTypeFace) Source() *Source {
	return f.src
}

// MeasureText implements Face.MeasureText.
func (f *OpenTypeFace) MeasureText(text []rune, widths []int, flags []CharFlags, maxWidth int,
	defaultChar rune, letterSpacing int, allowHyphenation bool,
) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kern kernFunc
	if f.config.kerning {
		kern = func(a, b rune) int { return f.face.Kern(a, b).Round() }
	}
	return measureRunes(text, widths, flags, maxWidth, defaultChar, letterSpacing,
		allowHyphenation, f.advanceLocked, kern)
}

// advanceLocked returns the memoized advance of r. Caller must hold f.mu.
func (f *OpenTypeFace) advanceLocked(r rune) (int, bool) {
	if w, ok := f.widths.Get(r); ok {
		return w, true
	}
	if f.missing[r] {
		return 0, false
	}
	if !f.src.HasGlyph(r) {
		f.missing[r] = true
		f.logger.Debug("font: missing glyph", "font", f.src.Name(), "char", string(r))
		return 0, false
	}
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		f.missing[r] = true
		return 0, false
	}
	w := adv.Round()
	f.widths.Set(r, w)
	return w, true
}

// CharWidth implements Face.CharWidth.
func (f *OpenTypeFace) CharWidth(r rune) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, _ := f.advanceLocked(r)
	return w
}

// Size implements Face.Size.
func (f *OpenTypeFace) Size() int {
	return int(f.size*f.config.dpi/72 + 0.5)
}

// Height implements Face.Height.
func (f *OpenTypeFace) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

// Baseline implements Face.Baseline.
func (f *OpenTypeFace) Baseline() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.baseline
}

// IsItalic implements Face.IsItalic.
func (f *OpenTypeFace) IsItalic() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.italic
}

// VisualHangWidth implements Face.VisualHangWidth.
func (f *OpenTypeFace) VisualHangWidth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hang
}

// Subpixel returns the sub-pixel mode glyphs are rasterized with.
func (f *OpenTypeFace) Subpixel() glyphcache.SubpixelMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config.subpixel
}

// Glyph implements Face.Glyph.
func (f *OpenTypeFace) Glyph(r rune, phase glyphcache.Phase) (glyphcache.Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		if g, ok := f.cache.Get(f.local, r, phase); ok {
			return g, true
		}
	}
	if _, ok := f.advanceLocked(r); !ok {
		return glyphcache.Glyph{}, false
	}
	g, ok := f.rasterizeLocked(r, phase)
	if !ok {
		return glyphcache.Glyph{}, false
	}
	if !f.closed {
		f.cache.Put(f.local, g)
	}
	return g, true
}

// rasterizeLocked renders r into a coverage bitmap. Caller must hold f.mu.
func (f *OpenTypeFace) rasterizeLocked(r rune, phase glyphcache.Phase) (glyphcache.Glyph, bool) {
	dot := fixed.Point26_6{X: fixed.Int26_6(f.config.subpixel.Offset(phase) * 64)}
	dr, mask, maskp, advance, ok := f.face.Glyph(dot, r)
	if !ok {
		return glyphcache.Glyph{}, false
	}

	g := glyphcache.Glyph{
		Char:    r,
		Phase:   phase,
		Width:   dr.Dx(),
		Height:  dr.Dy(),
		OriginX: dr.Min.X,
		OriginY: dr.Min.Y,
		Advance: advance.Round(),
	}
	g.Coverage = make([]byte, g.Width*g.Height)
	alpha, isAlpha := mask.(*image.Alpha)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var a byte
			if isAlpha {
				a = alpha.AlphaAt(maskp.X+x, maskp.Y+y).A
			} else {
				_, _, _, a32 := mask.At(maskp.X+x, maskp.Y+y).RGBA()
				a = byte(a32 >> 8)
			}
			if !f.config.antialias {
				if a >= 0x80 {
					a = 0xFF
				} else {
					a = 0
				}
			}
			g.Coverage[y*g.Width+x] = a
		}
	}
	return g, true
}

// SetKerning switches pair kerning and drops this face's cached widths
// and glyphs.
func (f *OpenTypeFace) SetKerning(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.config.kerning == on {
		return
	}
	f.config.kerning = on
	f.resetLocked()
}

// SetAntialias switches between antialiased and bilevel bitmaps and drops
// this face's cached widths and glyphs.
func (f *OpenTypeFace) SetAntialias(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.config.antialias == on {
		return
	}
	f.config.antialias = on
	f.resetLocked()
}

// SetHinting changes the hinting mode, which changes both advances and
// bitmaps.
func (f *OpenTypeFace) SetHinting(h xfont.Hinting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.config.hinting == h {
		return nil
	}
	f.config.hinting = h
	f.widths.Clear()
	clear(f.missing)
	if err := f.openLocked(); err != nil {
		return err
	}
	f.resetLocked()
	return nil
}

// resetLocked clears the width cache and this face's local glyph chain.
func (f *OpenTypeFace) resetLocked() {
	f.widths.Clear()
	clear(f.missing)
	if !f.closed {
		f.cache.ClearLocal(f.local)
	}
	f.logger.Debug("font: face caches cleared", "font", f.src.Name(), "size", f.size)
}

// setAntialiasQuiet changes the mode without touching the glyph cache; the
// registry clears the whole cache afterwards.
func (f *OpenTypeFace) setAntialiasQuiet(on bool) {
	f.mu.Lock()
	f.config.antialias = on
	f.mu.Unlock()
}

// Close releases this face's cached glyphs and its local index. The x/image
// face stays open: a closed face keeps measuring and rasterizing, but no
// longer caches bitmaps.
func (f *OpenTypeFace) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.cache.ReleaseLocal(f.local)
	return nil
}

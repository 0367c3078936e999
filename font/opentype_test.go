package font

import (
	"errors"
	"testing"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textflow/glyphcache"
)

// newTestRegistry returns a registry with the Go fonts registered as
// "regular" and "italic".
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry(DefaultRegistryConfig())
	if _, err := r.RegisterData("regular", goregular.TTF); err != nil {
		t.Fatalf("failed to register regular font: %v", err)
	}
	if _, err := r.RegisterData("italic", goitalic.TTF); err != nil {
		t.Fatalf("failed to register italic font: %v", err)
	}
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return r
}

func testFace(t *testing.T, r *Registry, name string, size float64, opts ...FaceOption) *OpenTypeFace {
	t.Helper()
	f, err := r.Face(name, size, opts...)
	if err != nil {
		t.Fatalf("Face(%q, %v): %v", name, size, err)
	}
	return f
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if src.Name() == "" {
		t.Error("Name is empty")
	}
	if src.NumGlyphs() == 0 {
		t.Error("NumGlyphs = 0")
	}
	if !src.HasGlyph('A') {
		t.Error("HasGlyph('A') = false")
	}
	if src.HasGlyph('日') {
		t.Error("HasGlyph('日') = true, the Go fonts have no CJK glyphs")
	}

	if _, err := NewSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewSource([]byte("not a font")); err == nil {
		t.Error("NewSource(garbage) succeeded")
	}
}

func TestOpenTypeFaceMetrics(t *testing.T) {
	r := newTestRegistry(t)

	for _, size := range []float64{12, 16, 24} {
		f := testFace(t, r, "regular", size)
		if f.Height() <= 0 {
			t.Errorf("size %v: Height = %d", size, f.Height())
		}
		if f.Baseline() <= 0 || f.Baseline() >= f.Height() {
			t.Errorf("size %v: Baseline = %d, Height = %d", size, f.Baseline(), f.Height())
		}
		if f.Size() != int(size) {
			t.Errorf("Size = %d, want %d", f.Size(), int(size))
		}
		if f.IsItalic() {
			t.Errorf("size %v: regular face reports italic", size)
		}
		if f.VisualHangWidth() <= 0 {
			t.Errorf("size %v: VisualHangWidth = %d", size, f.VisualHangWidth())
		}
	}

	if f := testFace(t, r, "italic", 16); !f.IsItalic() {
		t.Error("italic face does not report italic")
	}

	small := testFace(t, r, "regular", 12)
	large := testFace(t, r, "regular", 24)
	if large.CharWidth('m') <= small.CharWidth('m') {
		t.Errorf("CharWidth('m') at 24 = %d, at 12 = %d", large.CharWidth('m'), small.CharWidth('m'))
	}
}

func TestOpenTypeFaceMeasureText(t *testing.T) {
	r := newTestRegistry(t)
	f := testFace(t, r, "regular", 16, WithKerning(false))

	fit, widths := measure(f, "Hello, world", -1, 0, 0)
	if fit != 12 {
		t.Errorf("fit = %d, want 12", fit)
	}
	for i := 1; i < len(widths); i++ {
		if widths[i] < widths[i-1] {
			t.Fatalf("widths not cumulative at %d: %v", i, widths)
		}
	}
	sum := 0
	for _, c := range "Hello, world" {
		sum += f.CharWidth(c)
	}
	if widths[len(widths)-1] != sum {
		t.Errorf("total = %d, want sum of advances %d", widths[len(widths)-1], sum)
	}

	fit, _ = measure(f, "Hello, world", widths[4], 0, 0)
	if fit != 5 {
		t.Errorf("fit within width of \"Hello\" = %d, want 5", fit)
	}

	if w := f.CharWidth('日'); w != 0 {
		t.Errorf("CharWidth of missing glyph = %d, want 0", w)
	}
	_, widths = measure(f, "日", -1, '?', 0)
	if widths[0] != f.CharWidth('?') {
		t.Errorf("substituted width = %d, want %d", widths[0], f.CharWidth('?'))
	}
}

func TestOpenTypeFaceGlyph(t *testing.T) {
	r := newTestRegistry(t)
	f := testFace(t, r, "regular", 24)
	cache := r.GlyphCache()

	g, ok := f.Glyph('A', 0)
	if !ok {
		t.Fatal("Glyph('A') not found")
	}
	if g.Width <= 0 || g.Height <= 0 || len(g.Coverage) != g.Width*g.Height {
		t.Fatalf("glyph %dx%d with %d coverage bytes", g.Width, g.Height, len(g.Coverage))
	}
	if g.OriginY >= 0 {
		t.Errorf("OriginY = %d, want above the baseline", g.OriginY)
	}
	if g.Advance != f.CharWidth('A') {
		t.Errorf("Advance = %d, want %d", g.Advance, f.CharWidth('A'))
	}

	if _, ok := f.Glyph('A', 0); !ok {
		t.Fatal("cached Glyph('A') not found")
	}
	if s := cache.Stats(); s.Hits != 1 || s.Items != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 item", s)
	}

	if _, ok := f.Glyph('日', 0); ok {
		t.Error("Glyph('日') found in a font without CJK glyphs")
	}
	if err := cache.Validate(); err != nil {
		t.Error(err)
	}
}

func TestOpenTypeFaceSubpixel(t *testing.T) {
	r := newTestRegistry(t)
	f := testFace(t, r, "regular", 16, WithSubpixel(glyphcache.Subpixel4))

	for p := range glyphcache.Phase(4) {
		if _, ok := f.Glyph('o', p); !ok {
			t.Fatalf("Glyph('o', %d) not found", p)
		}
	}
	if n := r.GlyphCache().Len(); n != 4 {
		t.Errorf("cached phases = %d, want 4", n)
	}
}

func TestOpenTypeFaceModeChangesClearCaches(t *testing.T) {
	r := newTestRegistry(t)
	a := testFace(t, r, "regular", 16)
	b := testFace(t, r, "italic", 16)
	cache := r.GlyphCache()

	for _, c := range "abc" {
		a.Glyph(c, 0)
		b.Glyph(c, 0)
	}
	if cache.Len() != 6 {
		t.Fatalf("Len = %d, want 6", cache.Len())
	}

	a.SetKerning(false)
	if cache.Len() != 3 {
		t.Errorf("Len after SetKerning = %d, want 3", cache.Len())
	}

	b.SetAntialias(false)
	if cache.Len() != 0 {
		t.Errorf("Len after SetAntialias = %d, want 0", cache.Len())
	}
	g, ok := b.Glyph('a', 0)
	if !ok {
		t.Fatal("Glyph('a') not found")
	}
	for _, c := range g.Coverage {
		if c != 0 && c != 0xFF {
			t.Fatalf("bilevel coverage contains %d", c)
		}
	}

	if err := a.SetHinting(xfont.HintingNone); err != nil {
		t.Fatalf("SetHinting: %v", err)
	}
	if a.CharWidth('a') <= 0 {
		t.Error("CharWidth after SetHinting = 0")
	}
	if err := cache.Validate(); err != nil {
		t.Error(err)
	}
}

func TestOpenTypeFaceClose(t *testing.T) {
	r := newTestRegistry(t)
	f := testFace(t, r, "regular", 16)
	f.Glyph('a', 0)

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.GlyphCache().Len() != 0 {
		t.Errorf("Len after Close = %d, want 0", r.GlyphCache().Len())
	}
	if _, ok := f.Glyph('a', 0); !ok {
		t.Error("closed face cannot rasterize")
	}
	if w := f.CharWidth('a'); w <= 0 {
		t.Errorf("closed face CharWidth('a') = %d, want > 0", w)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if r.GlyphCache().Len() != 0 {
		t.Error("closed face cached a glyph")
	}
}

func BenchmarkOpenTypeFaceMeasureText(b *testing.B) {
	r := NewRegistry(DefaultRegistryConfig())
	if _, err := r.RegisterData("regular", goregular.TTF); err != nil {
		b.Fatal(err)
	}
	f, err := r.Face("regular", 16)
	if err != nil {
		b.Fatal(err)
	}
	text := []rune("The quick brown fox jumps over the lazy dog")
	widths := make([]int, len(text))
	flags := make([]CharFlags, len(text))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MeasureText(text, widths, flags, -1, '?', 0, false)
	}
}

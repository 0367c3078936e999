package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/textflow/font"
	"github.com/gogpu/textflow/layout"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
)

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func textRun(f font.Face, s string, flags layout.RunFlags) *layout.TextRun {
	return &layout.TextRun{RunStyle: layout.RunStyle{Flags: flags}, Text: []rune(s), Face: f}
}

func format(runs []layout.Run, width int) []layout.Line {
	return layout.NewFormatter(layout.DefaultOptions()).Format(runs, width, 0).Lines
}

func checkPixels(t *testing.T, img *image.RGBA, want map[image.Point]color.RGBA) {
	t.Helper()
	for p, c := range want {
		if got := img.RGBAAt(p.X, p.Y); got != c {
			t.Errorf("pixel %v = %v, want %v", p, got, c)
		}
	}
}

func TestDrawText(t *testing.T) {
	f := font.NewFixedFace(font.FixedMetrics{}, nil)
	runs := []layout.Run{textRun(f, "ab cd", layout.NewLine)}
	img := newCanvas(80, 30)

	var r Renderer
	r.Draw(img, format(runs, 60), runs, 5, 3, nil)

	checkPixels(t, img, map[image.Point]color.RGBA{
		{5, 3}:   black, // top-left of 'a'
		{24, 18}: black, // bottom-right of 'b'
		{30, 10}: white, // space
		{40, 10}: black, // 'c'
		{5, 19}:  white, // below the baseline
		{60, 10}: white, // past the end
	})
}

func TestDrawBackgroundAndHighlight(t *testing.T) {
	f := font.NewFixedFace(font.FixedMetrics{}, nil)
	bg := textRun(f, "ab cd", layout.NewLine)
	bg.Background = red
	runs := []layout.Run{bg}
	img := newCanvas(60, 20)

	var r Renderer
	lines := format(runs, 60)
	r.Draw(img, lines, runs, 0, 0, []Highlight{{
		Start: Position{0, 0, 1},
		End:   Position{0, 0, 3},
		Color: green,
	}})

	checkPixels(t, img, map[image.Point]color.RGBA{
		{5, 18}:  red,   // under 'a'
		{15, 18}: green, // under 'b'
		{25, 10}: green, // highlighted space
		{35, 18}: red,   // under 'c'
		{15, 5}:  black, // text above the highlight
		{55, 10}: white, // past the run
	})
}

func TestDrawHyphen(t *testing.T) {
	f := font.NewFixedFace(font.FixedMetrics{}, nil)
	runs := []layout.Run{textRun(f, "aaaa bb\u00ADcccc", layout.NewLine|layout.Hyphenate)}
	lines := format(runs, 90)
	if len(lines) != 2 || lines[0].Words[0].Flags&layout.Hyphenated == 0 {
		t.Fatalf("lines = %+v, want a hyphenated first line", lines)
	}
	img := newCanvas(90, 40)

	var r Renderer
	r.Draw(img, lines, runs, 0, 0, nil)

	checkPixels(t, img, map[image.Point]color.RGBA{
		{65, 5}: black, // 'b'
		{75, 5}: black, // inserted hyphen
		{85, 5}: white,
		{5, 25}: black, // 'c' on the second line
	})
}

func TestDrawDefaultChar(t *testing.T) {
	f := font.NewFixedFace(font.FixedMetrics{Missing: []rune{'b'}}, nil)
	plain := textRun(f, "ab", layout.NewLine)
	subst := textRun(f, "ab", layout.NewLine)
	subst.DefaultChar = 'x'
	runs := []layout.Run{plain, subst}
	img := newCanvas(40, 40)

	var r Renderer
	r.Draw(img, format(runs, 40), runs, 0, 0, nil)

	checkPixels(t, img, map[image.Point]color.RGBA{
		{5, 5}:   black,
		{15, 5}:  white, // missing glyph skipped
		{15, 25}: black, // replaced by 'x'
	})
}

func TestDrawDecorations(t *testing.T) {
	f := font.NewFixedFace(font.FixedMetrics{}, nil)
	tests := []struct {
		flags layout.RunFlags
		want  map[image.Point]color.RGBA
	}{
		{0, map[image.Point]color.RGBA{{5, 17}: white}},
		{layout.Underline, map[image.Point]color.RGBA{{5, 17}: black, {5, 18}: white}},
		{layout.Overline | layout.Underline, map[image.Point]color.RGBA{{5, 17}: black}},
	}
	for _, tt := range tests {
		runs := []layout.Run{textRun(f, "ab", layout.NewLine|tt.flags)}
		img := newCanvas(30, 20)

		var r Renderer
		r.Draw(img, format(runs, 30), runs, 0, 0, nil)
		checkPixels(t, img, tt.want)
	}
}

type recordingDrawer struct {
	rects []image.Rectangle
	objs  []any
}

func (d *recordingDrawer) DrawObject(_ draw.Image, r image.Rectangle, obj any) {
	d.rects = append(d.rects, r)
	d.objs = append(d.objs, obj)
}

func TestDrawObject(t *testing.T) {
	f := font.NewFixedFace(font.FixedMetrics{}, nil)
	runs := []layout.Run{
		textRun(f, "ab", layout.NewLine),
		&layout.ObjectRun{Width: 40, Height: 40, Object: "logo"},
	}
	d := &recordingDrawer{}
	r := Renderer{Objects: d}
	r.Draw(newCanvas(100, 60), format(runs, 100), runs, 10, 5, nil)

	if len(d.rects) != 1 {
		t.Fatalf("objects drawn = %d, want 1", len(d.rects))
	}
	if want := image.Rect(30, 5, 70, 45); d.rects[0] != want {
		t.Errorf("object rect = %v, want %v", d.rects[0], want)
	}
	if d.objs[0] != "logo" {
		t.Errorf("object = %v, want logo", d.objs[0])
	}
}

func TestImageObjects(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)

	img := newCanvas(10, 10)
	ImageObjects{}.DrawObject(img, image.Rect(2, 2, 6, 6), src)
	ImageObjects{}.DrawObject(img, image.Rect(6, 6, 8, 8), src)
	ImageObjects{}.DrawObject(img, image.Rect(0, 0, 2, 2), "not an image")

	checkPixels(t, img, map[image.Point]color.RGBA{
		{3, 3}: red,
		{5, 5}: red,
		{7, 7}: red,
		{1, 1}: white,
		{8, 8}: white,
	})
}

func TestHighlightSpan(t *testing.T) {
	h := Highlight{Start: Position{0, 1, 2}, End: Position{1, 0, 3}}
	tests := []struct {
		line, word, n int
		from, to      int
		ok            bool
	}{
		{0, 0, 5, 0, 0, false},
		{0, 1, 5, 2, 5, true},
		{0, 2, 4, 0, 4, true},
		{1, 0, 6, 0, 3, true},
		{1, 1, 2, 0, 0, false},
		{0, 1, 2, 0, 0, false},
	}
	for _, tt := range tests {
		from, to, ok := h.span(tt.line, tt.word, tt.n)
		if from != tt.from || to != tt.to || ok != tt.ok {
			t.Errorf("span(%d, %d, %d) = %d, %d, %v, want %d, %d, %v",
				tt.line, tt.word, tt.n, from, to, ok, tt.from, tt.to, tt.ok)
		}
	}
}

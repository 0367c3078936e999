package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/gogpu/textflow/font"
	"github.com/gogpu/textflow/glyphcache"
	"github.com/gogpu/textflow/layout"
)

const softHyphen = '\u00AD'

// Renderer draws formatted lines. The zero value is ready to use.
//
// A Renderer keeps measurement buffers between calls and is not safe for
// concurrent use.
type Renderer struct {
	// Objects draws inline objects. Nil means ImageObjects{}.
	Objects ObjectDrawer

	// Logger receives missing glyph diagnostics. Nil is silent.
	Logger *slog.Logger

	widths []int
	flags  []font.CharFlags
}

// Draw paints lines, formatted from runs, with the column's top-left
// corner at (x, y). Highlights are painted over run backgrounds and under
// the text.
func (r *Renderer) Draw(dst draw.Image, lines []layout.Line, runs []layout.Run, x, y int, highlights []Highlight) {
	for li := range lines {
		l := &lines[li]
		top := y + l.Y
		left := x + l.X
		for wi := range l.Words {
			r.drawBackground(dst, l, li, wi, runs, left, top, highlights)
		}
		for wi := range l.Words {
			w := &l.Words[wi]
			baseline := top + l.Baseline + w.Y
			switch run := runs[w.Run].(type) {
			case *layout.TextRun:
				r.drawText(dst, w, run, left+w.X, baseline)
				drawDecorations(dst, w, run, left+w.X, top, baseline)
			case *layout.ObjectRun:
				rect := image.Rect(left+w.X, baseline-w.Height, left+w.X+w.Width, baseline)
				r.objects().DrawObject(dst, rect, run.Object)
			}
		}
	}
}

func (r *Renderer) objects() ObjectDrawer {
	if r.Objects == nil {
		return ImageObjects{}
	}
	return r.Objects
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// measure fills r.widths with the cumulative advances of the characters
// of w and returns them.
func (r *Renderer) measure(w *layout.Word, run *layout.TextRun) []int {
	if cap(r.widths) < w.Len {
		r.widths = make([]int, w.Len)
		r.flags = make([]font.CharFlags, w.Len)
	}
	widths, flags := r.widths[:w.Len], r.flags[:w.Len]
	run.Face.MeasureText(run.Text[w.Start:w.Start+w.Len], widths, flags, -1,
		run.DefaultChar, run.LetterSpacing, false)
	return widths
}

// charX returns the offset of character k from the left edge of w.
func (r *Renderer) charX(w *layout.Word, run *layout.TextRun, k int) int {
	if k <= 0 {
		return 0
	}
	if k >= w.Len || run == nil || run.Face == nil {
		return w.Width
	}
	return min(r.measure(w, run)[k-1], w.Width)
}

func (r *Renderer) drawBackground(dst draw.Image, l *layout.Line, li, wi int, runs []layout.Run, left, top int, highlights []Highlight) {
	w := &l.Words[wi]
	run, _ := runs[w.Run].(*layout.TextRun)
	x := left + w.X
	if run != nil && run.Background != nil {
		fill(dst, image.Rect(x, top, x+w.Width, top+l.Height), run.Background)
	}
	for _, h := range highlights {
		from, to, ok := h.span(li, wi, w.Len)
		if !ok || h.Color == nil {
			continue
		}
		x0 := x + r.charX(w, run, from)
		x1 := x + r.charX(w, run, to)
		fill(dst, image.Rect(x0, top, x1, top+l.Height), h.Color)
	}
}

func (r *Renderer) drawText(dst draw.Image, w *layout.Word, run *layout.TextRun, x, baseline int) {
	if run.Face == nil {
		return
	}
	src := image.NewUniform(textColor(run))
	text := run.Text[w.Start : w.Start+w.Len]
	widths := r.measure(w, run)
	for i, c := range text {
		if c == '\n' || c == softHyphen || r.flags[i]&font.FlagSpace != 0 {
			continue
		}
		pen := x
		if i > 0 {
			pen += widths[i-1]
		}
		g, ok := run.Face.Glyph(c, 0)
		if !ok && run.DefaultChar != 0 {
			g, ok = run.Face.Glyph(run.DefaultChar, 0)
		}
		if !ok {
			r.logger().Debug("render: missing glyph", "char", string(c), "face", run.Face.ID())
			continue
		}
		drawGlyph(dst, &g, pen, baseline, src)
	}
	if w.Flags&layout.Hyphenated != 0 {
		if g, ok := run.Face.Glyph('-', 0); ok {
			drawGlyph(dst, &g, x+widths[len(widths)-1], baseline, src)
		}
	}
}

// drawGlyph composites the coverage of g with its origin at the pen
// position on the baseline.
func drawGlyph(dst draw.Image, g *glyphcache.Glyph, pen, baseline int, src image.Image) {
	if g.Width == 0 || g.Height == 0 {
		return
	}
	mask := &image.Alpha{
		Pix:    g.Coverage,
		Stride: g.Width,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
	x0, y0 := pen+g.OriginX, baseline+g.OriginY
	rect := image.Rect(x0, y0, x0+g.Width, y0+g.Height)
	draw.DrawMask(dst, rect, src, image.Point{}, mask, image.Point{}, draw.Over)
}

func drawDecorations(dst draw.Image, w *layout.Word, run *layout.TextRun, x, top, baseline int) {
	const decorations = layout.Underline | layout.Strikethrough | layout.Overline
	if run.Flags&decorations == 0 || run.Face == nil || w.Width <= 0 {
		return
	}
	c := textColor(run)
	thick := max(1, run.Face.Size()/14)
	line := func(y int) {
		fill(dst, image.Rect(x, y, x+w.Width, y+thick), c)
	}
	if run.Flags&layout.Underline != 0 {
		line(baseline + thick)
	}
	if run.Flags&layout.Strikethrough != 0 {
		line(baseline - run.Face.Baseline()/3)
	}
	if run.Flags&layout.Overline != 0 {
		line(top)
	}
}

func textColor(run *layout.TextRun) color.Color {
	if run.Color == nil {
		return color.Black
	}
	return run.Color
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

package textflow

import (
	"image/color"
	"image/draw"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/textflow/font"
	"github.com/gogpu/textflow/layout"
	"github.com/gogpu/textflow/render"
)

// TextStyle holds the per-run attributes of AddTextRun.
type TextStyle struct {
	Align  layout.Align
	VAlign layout.VAlign

	// LineInterval is the line height in sixteenths of the face height.
	// Zero means single spacing.
	LineInterval int

	// FirstLineMargin is used when the run starts a paragraph: positive
	// indents the first line, negative indents all following lines.
	FirstLineMargin int

	// Owner and Offset tie the run back to the caller's document.
	Owner  any
	Offset int

	LetterSpacing int

	// DefaultChar replaces characters missing from the face.
	DefaultChar rune
}

// ObjectStyle holds the per-run attributes of AddObjectRun.
type ObjectStyle struct {
	Align           layout.Align
	VAlign          layout.VAlign
	LineInterval    int
	FirstLineMargin int
	Owner           any

	// Object is handed to the ObjectDrawer when the run is drawn.
	Object any
}

// Buffer collects the runs of a text flow, formats them into lines and
// draws the result.
//
// A Buffer is not safe for concurrent use. Faces may be shared between
// buffers used on different goroutines.
type Buffer struct {
	opts options

	runs   []layout.Run
	lines  []layout.Line
	height int

	fm       *layout.Formatter
	fmLogger *slog.Logger
	renderer render.Renderer
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Buffer{opts: o}
	b.renderer.Objects = o.objects
	if o.logger != nil {
		propagateLogger(o.objects, o.logger)
	}
	return b
}

// SetLogger sets the buffer's own logger and passes it on to the object
// drawer. Nil returns the buffer to the package default.
func (b *Buffer) SetLogger(l *slog.Logger) {
	b.opts.logger = l
	propagateLogger(b.opts.objects, b.logger())
}

func (b *Buffer) logger() *slog.Logger {
	if b.opts.logger != nil {
		return b.opts.logger
	}
	return Logger()
}

// AddTextRun appends a run of text in face. A run flagged layout.NewLine
// starts a new paragraph unless it is also flagged layout.RunIn.
func (b *Buffer) AddTextRun(face font.Face, text string, fg, bg color.Color, flags layout.RunFlags, style TextStyle) error {
	if face == nil {
		return ErrNilFace
	}
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	b.runs = append(b.runs, &layout.TextRun{
		RunStyle: layout.RunStyle{
			Flags:           flags,
			Align:           style.Align,
			VAlign:          style.VAlign,
			LineInterval:    style.LineInterval,
			FirstLineMargin: style.FirstLineMargin,
			Owner:           style.Owner,
			Index:           len(b.runs),
		},
		Text:          []rune(text),
		Face:          face,
		Color:         fg,
		Background:    bg,
		DefaultChar:   style.DefaultChar,
		LetterSpacing: style.LetterSpacing,
		Offset:        style.Offset,
	})
	return nil
}

// AddObjectRun appends an inline object of natural size width by height.
func (b *Buffer) AddObjectRun(width, height int, flags layout.RunFlags, style ObjectStyle) error {
	if width < 0 || height < 0 {
		return ErrInvalidObjectSize
	}
	b.runs = append(b.runs, &layout.ObjectRun{
		RunStyle: layout.RunStyle{
			Flags:           flags,
			Align:           style.Align,
			VAlign:          style.VAlign,
			LineInterval:    style.LineInterval,
			FirstLineMargin: style.FirstLineMargin,
			Owner:           style.Owner,
			Index:           len(b.runs),
		},
		Width:  width,
		Height: height,
		Object: style.Object,
	})
	return nil
}

// Format lays the runs out in a column columnWidth pixels wide and returns
// the total height. pageHeight bounds inline objects; zero leaves them
// unbounded. Previous lines are discarded.
func (b *Buffer) Format(columnWidth, pageHeight int) int {
	res := b.formatter().Format(b.runs, columnWidth, pageHeight)
	b.lines = res.Lines
	b.height = res.Height
	return b.height
}

// formatter returns the buffer's formatter, rebuilt when the logger has
// changed since it was created.
func (b *Buffer) formatter() *layout.Formatter {
	l := b.logger()
	if b.fm == nil || b.fmLogger != l {
		opts := b.opts.layout
		opts.Logger = l
		b.fm = layout.NewFormatter(opts)
		b.fmLogger = l
	}
	return b.fm
}

// Height returns the height computed by the last Format.
func (b *Buffer) Height() int {
	return b.height
}

// LineCount returns the number of lines of the last Format.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt returns a copy of line i. It panics if i is out of range.
func (b *Buffer) LineAt(i int) layout.Line {
	l := b.lines[i]
	l.Words = slices.Clone(l.Words)
	return l
}

// Lines returns a copy of all formatted lines.
func (b *Buffer) Lines() []layout.Line {
	lines := slices.Clone(b.lines)
	for i := range lines {
		lines[i].Words = slices.Clone(lines[i].Words)
	}
	return lines
}

// Run returns run i.
func (b *Buffer) Run(i int) layout.Run {
	return b.runs[i]
}

// Runs returns the number of runs.
func (b *Buffer) Runs() int {
	return len(b.runs)
}

// Draw paints the formatted lines with the column's top-left corner at
// (x, y).
func (b *Buffer) Draw(dst draw.Image, x, y int, highlights []render.Highlight) {
	b.renderer.Logger = b.logger()
	b.renderer.Draw(dst, b.lines, b.runs, x, y, highlights)
}

// Reset removes all runs and lines. Options are kept.
func (b *Buffer) Reset() {
	clear(b.runs)
	b.runs = b.runs[:0]
	b.lines = nil
	b.height = 0
}

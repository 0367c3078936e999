package layout

import (
	"image/color"

	"github.com/gogpu/textflow/font"
)

// RunFlags are per-run layout and decoration flags.
type RunFlags uint16

const (
	// NewLine starts a new paragraph at this run.
	NewLine RunFlags = 1 << iota
	// RunIn merges a NewLine run into the preceding paragraph.
	RunIn
	// Preformatted marks text whose line feeds and spaces are literal.
	Preformatted
	// Hyphenate allows hyphenation of the run's words.
	Hyphenate
	// LinkStart marks the run as the start of a link.
	LinkStart
	Underline
	Strikethrough
	Overline
	Blink
)

// Align is the horizontal alignment of a paragraph.
type Align uint8

const (
	// AlignNone leaves lines where they are, like AlignLeft.
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignNone:
		return "None"
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	case AlignJustify:
		return "Justify"
	default:
		return "Unknown"
	}
}

// VAlign is the vertical alignment of a run relative to the baseline.
type VAlign uint8

const (
	VAlignBaseline VAlign = iota
	VAlignSub
	VAlignSuper
)

// SingleInterval is the LineInterval of single spacing.
const SingleInterval = 16

// RunStyle holds the attributes shared by text and object runs.
type RunStyle struct {
	Flags  RunFlags
	Align  Align
	VAlign VAlign

	// LineInterval scales the line height in sixteenths: 16 is single
	// spacing, 24 one and a half. Zero means single spacing.
	LineInterval int

	// FirstLineMargin is read from the first run of a paragraph. A
	// positive value indents the first line; a negative value indents all
	// other lines by its magnitude.
	FirstLineMargin int

	// Owner is an opaque reference to the caller's source node.
	Owner any

	// Index is the caller's index of the run.
	Index int
}

// Style returns the shared attributes of the run.
func (s *RunStyle) Style() *RunStyle {
	return s
}

func (s *RunStyle) interval() int {
	if s.LineInterval <= 0 {
		return SingleInterval
	}
	return s.LineInterval
}

// Run is either a *TextRun or an *ObjectRun.
type Run interface {
	Style() *RunStyle
	isRun()
}

// TextRun is a piece of text in one face.
type TextRun struct {
	RunStyle

	Text []rune
	Face font.Face

	Color      color.Color
	Background color.Color

	// DefaultChar replaces characters the face has no glyph for.
	// Zero means no replacement.
	DefaultChar rune

	// LetterSpacing is added after every visible character.
	LetterSpacing int

	// Offset is the position of Text within the owner's content.
	Offset int
}

// ObjectRun is an inline object, such as an image, laid out as one
// unbreakable box.
type ObjectRun struct {
	RunStyle

	// Width and Height are the natural size in pixels.
	Width, Height int

	Object any
}

func (*TextRun) isRun()   {}
func (*ObjectRun) isRun() {}

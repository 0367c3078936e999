package layout

import (
	"github.com/gogpu/textflow/font"
)

// objectChar stands in for an inline object in the paragraph text.
const objectChar = '\uFFFC'

// slot is one position of the paragraph buffer: a character of a text
// run or a whole object run.
type slot struct {
	run int
	// off is the offset into the run's Text, -1 for an object.
	off int
	// objW and objH are the resized object size.
	objW, objH int
}

// Formatter breaks runs into lines.
//
// A Formatter keeps scratch buffers between calls and grows them as
// needed. It is not safe for concurrent use; faces shared between
// formatters serialize themselves.
type Formatter struct {
	opts Options

	slots  []slot
	text   []rune
	widths []int
	flags  []font.CharFlags
	tmp    []int
}

// NewFormatter creates a formatter. Zero tuning values in opts take the
// defaults of DefaultOptions.
func NewFormatter(opts Options) *Formatter {
	opts.normalize()
	return &Formatter{opts: opts}
}

// Options returns the normalized options of the formatter.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format lays out runs in a column width pixels wide. pageHeight bounds
// the height of inline objects; zero leaves it unbounded. runs are not
// modified. Format always succeeds: degenerate widths produce one
// character per line.
func (f *Formatter) Format(runs []Run, width, pageHeight int) Result {
	var res Result
	y := 0
	for i, span := range paragraphs(runs) {
		p := f.paragraph(runs, span, i, width, pageHeight)
		lines := p.format()
		for j := range lines {
			lines[j].Y = y
			y += lines[j].Height
		}
		res.Lines = append(res.Lines, lines...)
	}
	res.Height = y
	return res
}

// span is a half-open range of run indices.
type span struct {
	lo, hi int
}

// paragraphs splits runs at every run flagged NewLine and not RunIn.
func paragraphs(runs []Run) []span {
	var spans []span
	lo := 0
	for i := 1; i < len(runs); i++ {
		flags := runs[i].Style().Flags
		if flags&NewLine != 0 && flags&RunIn == 0 {
			spans = append(spans, span{lo, i})
			lo = i
		}
	}
	if len(runs) > 0 {
		spans = append(spans, span{lo, len(runs)})
	}
	return spans
}

// paragraph fills the buffers for one paragraph and measures it.
func (f *Formatter) paragraph(runs []Run, s span, index, width, pageHeight int) *para {
	p := &para{
		f:      f,
		runs:   runs,
		index:  index,
		width:  width,
		first:  runs[s.lo],
		margin: runs[s.lo].Style().FirstLineMargin,
		align:  runs[s.lo].Style().Align,
	}
	f.fill(runs, s, objectWidth(width, p.margin), pageHeight)
	p.n = len(f.slots)
	f.measure(runs)

	if p.preformattedOnly(s) {
		p.align = AlignLeft
	}
	p.split = p.align == AlignJustify || f.opts.condensing()
	if !f.opts.NoHangingPunctuation && (p.align == AlignJustify || p.align == AlignRight) {
		p.visual = true
		p.reserve = maxHangWidth(runs[s.lo:s.hi])
	}
	p.resolveTab()
	return p
}

// objectWidth is the width objects are fitted to: the narrowest line of a
// paragraph with the given first-line margin.
func objectWidth(width, margin int) int {
	if width <= 0 || margin == 0 {
		return width
	}
	return max(width-abs(margin), 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (f *Formatter) fill(runs []Run, s span, objW, pageHeight int) {
	f.slots = f.slots[:0]
	f.text = f.text[:0]
	for i := s.lo; i < s.hi; i++ {
		switch r := runs[i].(type) {
		case *TextRun:
			for k, c := range r.Text {
				f.slots = append(f.slots, slot{run: i, off: k})
				f.text = append(f.text, c)
			}
		case *ObjectRun:
			w, h := resize(r.Width, r.Height, objW, pageHeight, f.opts.ImageScaling, f.opts.IntegerScaleMargin)
			f.slots = append(f.slots, slot{run: i, off: -1, objW: w, objH: h})
			f.text = append(f.text, objectChar)
		}
	}
	n := len(f.slots)
	f.widths = grow(f.widths, n)
	f.flags = grow(f.flags, n)
}

// measure fills widths with cumulative advances from the paragraph start
// and flags with break classes, one face call per chunk of compatible
// text.
func (f *Formatter) measure(runs []Run) {
	n := len(f.slots)
	x := 0
	for i := 0; i < n; {
		tr, ok := runs[f.slots[i].run].(*TextRun)
		if !ok {
			x += f.slots[i].objW
			f.widths[i] = x
			f.flags[i] = font.FlagWrapAfter
			if i > 0 {
				f.flags[i-1] |= font.FlagWrapAfter
			}
			i++
			continue
		}

		j := i + 1
		for j < n && j-i < f.opts.MaxChunkSize && sameChunk(tr, runs[f.slots[j].run]) {
			j++
		}
		f.tmp = grow(f.tmp, j-i)
		if tr.Face != nil {
			tr.Face.MeasureText(f.text[i:j], f.tmp, f.flags[i:j], -1,
				tr.DefaultChar, tr.LetterSpacing, tr.Flags&Hyphenate != 0)
		} else {
			font.Classify(f.text[i:j], f.flags[i:j], tr.Flags&Hyphenate != 0)
			clear(f.tmp)
		}
		for k, w := range f.tmp {
			f.widths[i+k] = x + w
		}
		x = f.widths[j-1]
		i = j
	}
}

// sameChunk reports whether r can be measured in one call with a.
func sameChunk(a *TextRun, r Run) bool {
	b, ok := r.(*TextRun)
	if !ok {
		return false
	}
	if a == b {
		return true
	}
	return a.Face == b.Face && a.DefaultChar == b.DefaultChar &&
		a.LetterSpacing == b.LetterSpacing && (a.Flags^b.Flags)&Hyphenate == 0
}

func maxHangWidth(runs []Run) int {
	w := 0
	for _, r := range runs {
		if tr, ok := r.(*TextRun); ok && tr.Face != nil {
			w = max(w, tr.Face.VisualHangWidth())
		}
	}
	return w
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n, n+n/4)
	}
	return s[:n]
}

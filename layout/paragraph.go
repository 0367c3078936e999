package layout

import (
	"slices"

	"github.com/gogpu/textflow/font"
)

// para is the state of one paragraph during Format. Its slots, text,
// widths and flags live in the Formatter.
type para struct {
	f     *Formatter
	runs  []Run
	first Run
	index int
	n     int

	width  int
	margin int
	align  Align

	// split starts a word after every space.
	split bool
	// visual enables hanging punctuation; reserve is the width kept free
	// for it while breaking.
	visual  bool
	reserve int
}

func (p *para) format() []Line {
	if p.n == 0 {
		return []Line{p.emptyLine()}
	}

	var lines []Line
	for start := 0; start < p.n; {
		x0 := p.indent(len(lines) == 0)
		avail := p.width - x0
		end, hyph := p.nextBreak(start, avail-p.reserve)
		lines = append(lines, p.line(start, end, hyph, x0, avail))
		start = end
	}
	lines[len(lines)-1].Last = true

	p.f.opts.Logger.Debug("layout: paragraph formatted",
		"para", p.index, "chars", p.n, "lines", len(lines), "width", p.width)
	return lines
}

// indent returns the left offset of the first or a following line.
func (p *para) indent(first bool) int {
	switch {
	case first && p.margin > 0:
		return p.margin
	case !first && p.margin < 0:
		return -p.margin
	}
	return 0
}

// emptyLine is the single line of a paragraph without content.
func (p *para) emptyLine() Line {
	l := Line{
		X:     p.indent(true),
		Align: p.align,
		Para:  p.index,
		Last:  true,
	}
	if tr, ok := p.first.(*TextRun); ok && tr.Face != nil {
		h, b := textMetrics(tr)
		l.Height, l.Baseline = h, b
	}
	return l
}

// preformattedOnly reports whether every run is preformatted and the text
// holds a line feed.
func (p *para) preformattedOnly(s span) bool {
	for _, r := range p.runs[s.lo:s.hi] {
		if r.Style().Flags&Preformatted == 0 {
			return false
		}
	}
	return slices.Contains(p.f.text, '\n')
}

// resolveTab moves the text after the first tab to the hanging indent
// when that lies further right than the tab itself.
func (p *para) resolveTab() {
	if p.margin >= 0 {
		return
	}
	t := slices.Index(p.f.text, '\t')
	if t < 0 || p.f.slots[t].off < 0 {
		return
	}
	if dx := -p.margin - p.f.widths[t]; dx > 0 {
		for i := t; i < p.n; i++ {
			p.f.widths[i] += dx
		}
	}
}

// x returns the left edge of slot i from the paragraph start.
func (p *para) x(i int) int {
	if i <= 0 {
		return 0
	}
	return p.f.widths[i-1]
}

func (p *para) isSpace(i int) bool {
	return p.f.flags[i]&font.FlagSpace != 0 && p.f.slots[i].off >= 0
}

func (p *para) isObject(i int) bool {
	return p.f.slots[i].off < 0
}

// textRun returns the text run of slot i, nil for an object.
func (p *para) textRun(i int) *TextRun {
	tr, _ := p.runs[p.f.slots[i].run].(*TextRun)
	return tr
}

// charWidth returns the advance of c in the face of slot i.
func (p *para) charWidth(i int, c rune) int {
	if tr := p.textRun(i); tr != nil && tr.Face != nil {
		return tr.Face.CharWidth(c)
	}
	return 0
}

// narrowable returns how much the space at slot i may be condensed.
func (p *para) narrowable(i int) int {
	pct := p.f.opts.MinSpaceCondensingPercent
	if pct >= 100 {
		return 0
	}
	tr := p.textRun(i)
	if tr == nil || tr.Face == nil {
		return 0
	}
	w := (p.f.widths[i] - p.x(i)) * (100 - pct) / 100
	return max(min(w, 3*tr.Face.Size()/4), 0)
}

// contentWidth is the width of slots start..last without trailing spaces.
func (p *para) contentWidth(start, last int) int {
	k := last
	for k >= start && p.isSpace(k) {
		k--
	}
	return p.x(k+1) - p.x(start)
}

func textMetrics(tr *TextRun) (height, baseline int) {
	fh := tr.Face.Height()
	h := fh * tr.interval() / SingleInterval
	return h, tr.Face.Baseline() + (h-fh)/2
}

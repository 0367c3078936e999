package layout

import (
	"strings"

	"github.com/gogpu/textflow/font"
)

// line builds the words of slots start..end-1, sets the line metrics and
// aligns it in avail pixels starting at x0.
func (p *para) line(start, end int, hyph bool, x0, avail int) Line {
	l := Line{
		X:     x0,
		Align: p.lineAlign(end),
		Para:  p.index,
	}

	ws := start
	for k := start + 1; k <= end; k++ {
		if k < end && !p.wordBoundary(k) {
			continue
		}
		l.Words = append(l.Words, p.word(ws, k))
		ws = k
	}
	p.finishLastWord(&l.Words[len(l.Words)-1], end, hyph)
	p.metrics(&l)
	align(&l, avail)
	return l
}

// lineAlign returns the alignment of the line ending before slot end.
func (p *para) lineAlign(end int) Align {
	a := p.align
	if a != AlignJustify {
		return a
	}
	if end < p.n && p.f.flags[end-1]&font.FlagNewline == 0 {
		return a
	}
	switch last := p.f.opts.LastLineAlign; last {
	case AlignNone, AlignJustify:
		return AlignLeft
	default:
		return last
	}
}

// wordBoundary reports whether a new word starts at slot k.
func (p *para) wordBoundary(k int) bool {
	slots := p.f.slots
	if slots[k].run != slots[k-1].run || p.isObject(k) || p.isObject(k-1) {
		return true
	}
	return p.split && p.isSpace(k-1) && !p.isSpace(k)
}

// word builds the word of slots ws..we-1.
func (p *para) word(ws, we int) Word {
	s := p.f.slots[ws]
	w := Word{
		Run:   s.run,
		Start: s.off,
		Len:   we - ws,
		Width: p.x(we) - p.x(ws),
	}
	if p.isObject(ws) {
		w.Start, w.Len = 0, 1
		w.Height = s.objH
		w.Flags |= IsObject
	}
	if p.runs[s.run].Style().Flags&LinkStart != 0 && s.off <= 0 {
		w.Flags |= IsLinkStart
	}

	flags := p.f.flags[we-1]
	if flags&font.FlagWrapAfter != 0 {
		w.Flags |= CanBreakAfter
	}
	if flags&font.FlagHyphenAfter != 0 {
		w.Flags |= CanHyphenAfter
	}
	if flags&font.FlagNewline != 0 {
		w.Flags |= MustBreakAfter
	}
	w.MinWidth = w.Width
	if p.isSpace(we - 1) {
		w.Flags |= CanAddSpaceAfter
		for k := we - 1; k >= ws && p.isSpace(k); k-- {
			w.MinWidth -= p.narrowable(k)
		}
	}
	return w
}

// finishLastWord drops trailing spaces from the last word of a line, adds
// the inserted hyphen and lets trailing punctuation hang.
func (p *para) finishLastWord(w *Word, end int, hyph bool) {
	ws := end - w.Len
	w.Flags &^= CanAddSpaceAfter
	w.Width = p.contentWidth(ws, end-1)

	k := end - 1
	for k >= ws && p.isSpace(k) {
		k--
	}
	var trailing rune
	if k >= ws && !p.isObject(k) {
		trailing = p.f.text[k]
	}
	if hyph {
		w.Width += p.charWidth(end-1, '-')
		w.Flags |= Hyphenated
		trailing = '-'
	}
	if p.visual && trailing != 0 && strings.ContainsRune(font.HangChars, trailing) {
		w.Width = max(w.Width-p.charWidth(end-1, trailing), 0)
	}
	w.MinWidth = w.Width
}

// metrics sets the height and baseline of l from its words and the
// vertical shift of each word.
func (p *para) metrics(l *Line) {
	ascent, descent := 0, 0
	for i := range l.Words {
		w := &l.Words[i]
		var h, b int
		switch r := p.runs[w.Run].(type) {
		case *TextRun:
			if r.Face != nil {
				h, b = textMetrics(r)
			}
		case *ObjectRun:
			// Objects sit on the baseline.
			h, b = w.Height, w.Height
		}
		switch p.runs[w.Run].Style().VAlign {
		case VAlignSub:
			w.Y = h / 3
		case VAlignSuper:
			w.Y = -h / 2
		}
		ascent = max(ascent, b-w.Y)
		descent = max(descent, h-b+w.Y)
	}
	l.Baseline = ascent
	l.Height = ascent + descent
}

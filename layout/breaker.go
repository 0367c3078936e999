package layout

import "github.com/gogpu/textflow/font"

// nextBreak finds the end of the line starting at slot start, avail pixels
// wide. hyph reports a break inside a word, after which a hyphen is drawn.
func (p *para) nextBreak(start, avail int) (end int, hyph bool) {
	f := p.f
	base := p.x(start)
	lastNormal, lastDeprecated, lastHyph := -1, -1, -1
	condense := 0

	i := start
	for ; i < p.n; i++ {
		flags := f.flags[i]
		if flags&font.FlagNewline != 0 {
			return i + 1, false
		}
		w := f.widths[i] - base
		limit := avail + condense
		// Spaces may hang past the edge; anything else ends the scan.
		if w > limit && flags&font.FlagSpace == 0 {
			break
		}
		if flags&font.FlagWrapAfter != 0 {
			lastNormal = i
		}
		if flags&font.FlagDeprecatedWrapAfter != 0 {
			lastDeprecated = i
		}
		if flags&font.FlagHyphenAfter != 0 && w+p.charWidth(i, '-') <= limit {
			lastHyph = i
		}
		if flags&font.FlagSpace != 0 {
			condense += p.narrowable(i)
		}
	}
	if i == p.n {
		return p.n, false
	}

	brk := lastNormal
	if lastHyph > brk {
		brk, hyph = lastHyph, true
	}
	if lastDeprecated > brk && p.unused(start, brk, avail) > f.opts.DeprecatedWrapUnusedPercent {
		brk, hyph = lastDeprecated, false
	}
	if p.unused(start, brk, avail) > f.opts.HyphenateUnusedPercent {
		if b, ok := p.hyphenate(start, i, brk, avail); ok {
			brk, hyph = b, true
		}
	}

	if brk < start {
		// Nothing to break at: cut the word, keeping at least one slot.
		return max(i, start+1), false
	}
	end = brk + 1
	if !hyph {
		end = p.skipSpaces(end)
	}
	return end, hyph
}

// unused returns the percentage of avail left free by breaking after brk.
func (p *para) unused(start, brk, avail int) int {
	if avail <= 0 {
		return 0
	}
	if brk < start {
		return 100
	}
	return (avail - p.contentWidth(start, brk)) * 100 / avail
}

// skipSpaces extends a line over breakable spaces following its end, and
// over a line feed right after them.
func (p *para) skipSpaces(end int) int {
	const breakable = font.FlagSpace | font.FlagWrapAfter
	for end < p.n && p.f.flags[end]&breakable == breakable {
		end++
	}
	if end < p.n && p.f.flags[end]&font.FlagNewline != 0 {
		end++
	}
	return end
}

// hyphenate asks the oracle to break the word crossing the line end at
// slot over, or the next word when that one is too short. It returns the
// slot after which to break.
func (p *para) hyphenate(start, over, brk, avail int) (int, bool) {
	f := p.f
	if f.opts.Hyphenator == nil {
		return 0, false
	}
	ws, we := p.wordAt(over)
	if we-ws < f.opts.MinHyphenateWordLength {
		next := we
		for next < p.n && !p.isWordChar(next) && !p.isObject(next) {
			next++
		}
		if next >= p.n {
			return 0, false
		}
		ws, we = p.wordAt(next)
		if we-ws < f.opts.MinHyphenateWordLength {
			return 0, false
		}
	}
	tr := p.textRun(ws)
	if tr == nil || tr.Face == nil || tr.Flags&Hyphenate == 0 {
		return 0, false
	}

	hw := tr.Face.CharWidth('-')
	base := p.x(ws)
	// Widths are measured from the word start, which may lie before the
	// line start.
	budget := avail - (base - p.x(start))
	f.tmp = grow(f.tmp, we-ws)
	for k := range f.tmp {
		f.tmp[k] = f.widths[ws+k] - base
	}
	if !f.opts.Hyphenator.Hyphenate(f.text[ws:we], f.tmp, f.flags[ws:we], hw, budget) {
		return 0, false
	}
	for k := we - ws - 2; k >= 0; k-- {
		if f.flags[ws+k]&font.FlagHyphenAfter == 0 || f.tmp[k]+hw > budget {
			continue
		}
		// A point at the line start would leave one letter and a hyphen.
		if b := ws + k; b > start && b >= brk {
			return b, true
		}
		return 0, false
	}
	return 0, false
}

// isWordChar reports a text slot that is neither a space nor a line feed.
func (p *para) isWordChar(i int) bool {
	return !p.isObject(i) && p.f.flags[i]&(font.FlagSpace|font.FlagNewline) == 0
}

// wordAt returns the bounds of the word of one run containing slot i. The
// word may begin on a previous line.
func (p *para) wordAt(i int) (int, int) {
	if !p.isWordChar(i) {
		return i, i
	}
	run := p.f.slots[i].run
	ws := i
	for ws > 0 && p.f.slots[ws-1].run == run && p.isWordChar(ws-1) {
		ws--
	}
	we := i + 1
	for we < p.n && p.f.slots[we].run == run && p.isWordChar(we) {
		we++
	}
	return ws, we
}

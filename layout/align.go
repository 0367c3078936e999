package layout

// align shrinks an overlong line or positions a short one in avail pixels
// according to l.Align, then lays the words out left to right.
func align(l *Line, avail int) {
	width := 0
	for _, w := range l.Words {
		width += w.Width
	}

	if width > avail {
		width -= shrink(l.Words, width-avail)
	} else {
		switch l.Align {
		case AlignCenter:
			l.X += (avail - width) / 2
		case AlignRight:
			l.X += avail - width
		case AlignJustify:
			width += justify(l.Words, avail-width)
		}
	}

	x := 0
	for i := range l.Words {
		l.Words[i].X = x
		x += l.Words[i].Width
	}
	l.Width = width
}

// shrink narrows condensable words in proportion to their slack by up to
// excess pixels in total and returns the amount removed.
func shrink(words []Word, excess int) int {
	total := 0
	for _, w := range words {
		if w.Flags&CanAddSpaceAfter != 0 {
			total += w.Width - w.MinWidth
		}
	}
	if total <= 0 {
		return 0
	}
	excess = min(excess, total)

	removed := 0
	for i := range words {
		w := &words[i]
		if w.Flags&CanAddSpaceAfter == 0 {
			continue
		}
		d := excess * (w.Width - w.MinWidth) / total
		w.Width -= d
		removed += d
	}
	for i := range words {
		if removed == excess {
			break
		}
		w := &words[i]
		if w.Flags&CanAddSpaceAfter != 0 && w.Width > w.MinWidth {
			w.Width--
			removed++
		}
	}
	return removed
}

// justify spreads extra pixels over the words followed by a space, the
// remainder going to the earliest ones, and returns the amount added.
func justify(words []Word, extra int) int {
	n := 0
	for _, w := range words {
		if w.Flags&CanAddSpaceAfter != 0 {
			n++
		}
	}
	if n == 0 || extra <= 0 {
		return 0
	}
	each, rem := extra/n, extra%n
	for i := range words {
		w := &words[i]
		if w.Flags&CanAddSpaceAfter == 0 {
			continue
		}
		w.Width += each
		if rem > 0 {
			w.Width++
			rem--
		}
	}
	return extra
}

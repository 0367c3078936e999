package font

// advanceFunc returns the advance of r and whether the font has a glyph.
type advanceFunc func(r rune) (int, bool)

// kernFunc returns the kerning adjustment between two adjacent runes.
type kernFunc func(a, b rune) int

// measureRunes implements Face.MeasureText on top of per-rune advances.
func measureRunes(text []rune, widths []int, flags []CharFlags, maxWidth int,
	defaultChar rune, letterSpacing int, allowHyphenation bool,
	advance advanceFunc, kern kernFunc,
) int {
	Classify(text, flags[:len(text)], allowHyphenation)

	fit := len(text)
	total := 0
	prev := rune(-1)
	for i, r := range text {
		w := 0
		switch {
		case r == '\n', r == softHyphen:
			// zero width; a soft hyphen only shows when a line ends on it
		default:
			var ok bool
			w, ok = advance(r)
			if !ok && defaultChar != 0 {
				w, ok = advance(defaultChar)
			}
			if !ok {
				w = 0
			}
			if kern != nil && prev >= 0 {
				total += kern(prev, r)
			}
			if w > 0 {
				w += letterSpacing
			}
			prev = r
		}
		total += w
		widths[i] = total
		if maxWidth >= 0 && fit == len(text) && total > maxWidth {
			fit = i
		}
	}
	return fit
}

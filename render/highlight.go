package render

import "image/color"

// Position addresses a character in formatted lines: Char is the offset
// within word Word of line Line.
type Position struct {
	Line, Word, Char int
}

// Less reports whether p comes before q in reading order.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	if p.Word != q.Word {
		return p.Word < q.Word
	}
	return p.Char < q.Char
}

// Highlight paints the characters from Start up to, not including, End.
type Highlight struct {
	Start, End Position
	Color      color.Color
}

// span returns the character range of word (line, word) of length n
// covered by h, and whether any is.
func (h Highlight) span(line, word, n int) (from, to int, ok bool) {
	first := Position{line, word, 0}
	end := Position{line, word, n}
	if !first.Less(h.End) || !h.Start.Less(end) {
		return 0, 0, false
	}
	from, to = 0, n
	if first.Less(h.Start) {
		from = h.Start.Char
	}
	if h.End.Less(end) {
		to = h.End.Char
	}
	return from, to, from < to
}

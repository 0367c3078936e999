package hyphen

import (
	"unicode"

	"github.com/gogpu/textflow/font"
)

// Oracle finds hyphenation points.
type Oracle interface {
	// Hyphenate sets font.FlagHyphenAfter in flags for every character of
	// word after which a hyphen may be inserted, provided that widths[i]
	// plus hyphenWidth does not exceed maxWidth. widths holds cumulative
	// advances from the start of word. It reports whether any point was
	// marked.
	Hyphenate(word []rune, widths []int, flags []font.CharFlags, hyphenWidth, maxWidth int) bool
}

// None is an Oracle that never hyphenates.
type None struct{}

// Hyphenate implements Oracle.
func (None) Hyphenate([]rune, []int, []font.CharFlags, int, int) bool {
	return false
}

// DefaultLeft and DefaultRight are the default minimum number of letters
// kept before and after a hyphenation point.
const (
	DefaultLeft  = 2
	DefaultRight = 2
)

// segments calls fn for every maximal run of letters in word that is at
// least minLen long. start is the index of the run in word.
func segments(word []rune, minLen int, fn func(start int, seg []rune)) {
	start := -1
	for i := 0; i <= len(word); i++ {
		if i < len(word) && unicode.IsLetter(word[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minLen {
			fn(start, word[start:i])
		}
		start = -1
	}
}

// mark sets the hyphen flag after word index i if the prefix and the
// hyphen fit maxWidth.
func mark(i int, widths []int, flags []font.CharFlags, hyphenWidth, maxWidth int) bool {
	if widths[i]+hyphenWidth > maxWidth {
		return false
	}
	flags[i] |= font.FlagHyphenAfter
	return true
}

func normalizeMinimums(left, right int) (int, int) {
	if left <= 0 {
		left = DefaultLeft
	}
	if right <= 0 {
		right = DefaultRight
	}
	return left, right
}

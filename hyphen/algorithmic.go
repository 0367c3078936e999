package hyphen

import (
	"strings"
	"unicode"

	"github.com/gogpu/textflow/font"
)

// vowels of the Latin, Greek and Cyrillic alphabets, lower case.
const vowels = "aeiouyàáâãäåæèéêëìíîïòóôõöøùúûüýÿœāēīōūăĕĭŏŭąęįųαεηιουωаеёиоуыэюяіїє"

// Algorithmic hyphenates with language-neutral vowel/consonant rules:
// a word breaks before a single consonant between vowels (ba-na-na) and
// between two consonants between vowels (but-ter). Every part keeps at
// least one vowel.
//
// The zero value keeps DefaultLeft and DefaultRight letters on each side.
type Algorithmic struct {
	// Left and Right are the minimum letters before and after a point.
	Left, Right int
}

// Hyphenate implements Oracle.
func (a Algorithmic) Hyphenate(word []rune, widths []int, flags []font.CharFlags, hyphenWidth, maxWidth int) bool {
	left, right := normalizeMinimums(a.Left, a.Right)
	found := false
	segments(word, left+right, func(start int, seg []rune) {
		for _, m := range algorithmicPoints(seg, left, right) {
			if mark(start+m, widths, flags, hyphenWidth, maxWidth) {
				found = true
			}
		}
	})
	return found
}

// algorithmicPoints returns the indices after which seg may break.
func algorithmicPoints(seg []rune, left, right int) []int {
	n := len(seg)
	v := make([]bool, n)
	for i, r := range seg {
		v[i] = isVowel(r)
	}

	var points []int
	lastBreak := -1
	for i := left - 1; i+1 <= n-right; i++ {
		if i+2 >= n {
			break
		}
		var ok bool
		switch {
		case v[i] && !v[i+1] && v[i+2]:
			ok = true // V-CV
		case !v[i] && !v[i+1] && i > 0 && v[i-1] && v[i+2]:
			ok = true // VC-CV
		}
		if ok && hasVowel(v[lastBreak+1:i+1]) && hasVowel(v[i+1:]) {
			points = append(points, i)
			lastBreak = i
		}
	}
	return points
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

func hasVowel(v []bool) bool {
	for _, b := range v {
		if b {
			return true
		}
	}
	return false
}

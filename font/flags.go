package font

import "golang.org/x/text/width"

// CharFlags is the break class of one character, as reported by
// Face.MeasureText and updated by hyphenation.
type CharFlags uint8

const (
	// FlagSpace marks a space whose width may be distributed or condensed.
	FlagSpace CharFlags = 1 << iota
	// FlagNewline marks a mandatory line break after the character.
	FlagNewline
	// FlagWrapAfter marks a normal line break opportunity after the character.
	FlagWrapAfter
	// FlagDeprecatedWrapAfter marks a low quality break opportunity, such as
	// after a dash inside a word.
	FlagDeprecatedWrapAfter
	// FlagHyphenAfter marks a hyphenation point: a line may end after the
	// character with an inserted hyphen.
	FlagHyphenAfter
	// FlagSoftHyphen marks U+00AD, invisible unless a line ends there.
	FlagSoftHyphen
)

// HangChars are the characters allowed to hang past the right margin.
const HangChars = "-,.!:;"

const softHyphen = '\u00AD'

// Classify fills flags with the break classes of text. flags must be at
// least as long as text. The classification is a deliberately small subset
// of UAX #14: spaces, hard newlines, dashes, soft hyphens and East Asian
// wide characters.
func Classify(text []rune, flags []CharFlags, allowHyphenation bool) {
	for i, r := range text {
		var next rune = -1
		if i+1 < len(text) {
			next = text[i+1]
		}
		var prev rune = -1
		if i > 0 {
			prev = text[i-1]
		}
		flags[i] = classifyRune(prev, r, next, allowHyphenation)
	}
}

func classifyRune(prev, r, next rune, allowHyphenation bool) CharFlags {
	switch {
	case r == '\n':
		return FlagNewline
	case r == ' ' || r == '\t' || r == '\u3000':
		return FlagSpace | FlagWrapAfter
	case r == '\u00A0' || r == '\u202F':
		// No-break spaces stretch but never end a line.
		return FlagSpace
	case r == '\u200B':
		return FlagWrapAfter
	case r == softHyphen:
		if allowHyphenation {
			return FlagSoftHyphen | FlagHyphenAfter
		}
		return FlagSoftHyphen
	case isDash(r):
		if prev >= 0 && !isSpaceRune(prev) && next >= 0 && isLetter(next) {
			return FlagDeprecatedWrapAfter
		}
		return 0
	}

	if isOpening(r) {
		return 0
	}
	if next >= 0 && isClosing(next) {
		return 0
	}
	if isWide(r) || (next >= 0 && isWide(next) && !isSpaceRune(r)) {
		return FlagWrapAfter
	}
	return 0
}

func isDash(r rune) bool {
	switch r {
	case '-', '/', '\u2010', '\u2012', '\u2013', '\u2014':
		return true
	}
	return false
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\u00A0' || r == '\u3000'
}

func isLetter(r rune) bool {
	return r > ' ' && !isSpaceRune(r) && !isDash(r) && !(r >= '0' && r <= '9')
}

// isOpening reports punctuation that must not end a line.
func isOpening(r rune) bool {
	switch r {
	case '(', '[', '{', '\u201C', '\u2018', '\u300C', '\u300E', '\uFF08', '\u3010', '\u3008', '\u300A':
		return true
	}
	return false
}

// isClosing reports punctuation that must not start a line.
func isClosing(r rune) bool {
	switch r {
	case ')', ']', '}', '\u201D', '\u2019', ',', '.', '!', '?', ':', ';',
		'\u3001', '\u3002', '\uFF0C', '\uFF0E', '\uFF1A', '\uFF1B', '\uFF01', '\uFF1F',
		'\u300D', '\u300F', '\uFF09', '\u3011', '\u3009', '\u300B':
		return true
	}
	return false
}

// isWide reports East Asian wide and fullwidth characters, between which
// lines may break without spaces.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

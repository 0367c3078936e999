package hyphen

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textflow/font"
	"github.com/gogpu/textflow/internal/cache"
)

//go:embed patterns/*.pat
var patternFiles embed.FS

// wordCacheLimit bounds the number of words whose points are memoized.
const wordCacheLimit = 1024

// Dictionary hyphenates with Liang's algorithm.
//
// A pattern is a letter string with digits between the letters, such as
// "hy3ph" or ".ach4": where several patterns match a word, the highest
// digit at each position wins and odd values allow a break. A dot
// anchors the pattern at a word boundary.
//
// Dictionary is safe for concurrent use.
type Dictionary struct {
	lang       language.Language
	patterns   map[string][]uint8
	maxLen     int
	exceptions map[string][]int

	// Left and Right are the minimum letters before and after a point.
	// Zero values mean DefaultLeft and DefaultRight.
	Left, Right int

	words *cache.Cache[string, []int]
}

// ParsePatterns reads patterns for lang from r.
//
// The input is a sequence of whitespace separated patterns. Lines
// starting with % are comments. A TeX \patterns{...} wrapper is accepted,
// and words inside \hyphenation{...} are exceptions hyphenated exactly as
// written, such as "ta-ble".
func ParsePatterns(lang string, r io.Reader) (*Dictionary, error) {
	d := &Dictionary{
		lang:       language.NewLanguage(lang),
		patterns:   make(map[string][]uint8),
		exceptions: make(map[string][]int),
		words:      cache.New[string, []int](wordCacheLimit),
	}

	exceptions := false
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '%'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			switch {
			case strings.HasPrefix(tok, `\patterns`):
				exceptions = false
				tok = strings.TrimPrefix(strings.TrimPrefix(tok, `\patterns`), "{")
			case strings.HasPrefix(tok, `\hyphenation`):
				exceptions = true
				tok = strings.TrimPrefix(strings.TrimPrefix(tok, `\hyphenation`), "{")
			}
			tok = strings.TrimRight(tok, "}")
			if tok == "" || tok == "{" {
				continue
			}
			var err error
			if exceptions {
				err = d.addException(tok)
			} else {
				err = d.addPattern(tok)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", err, line, tok)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("hyphen: failed to read patterns: %w", err)
	}
	if len(d.patterns) == 0 {
		return nil, ErrNoPatterns
	}
	return d, nil
}

func (d *Dictionary) addPattern(tok string) error {
	var letters []rune
	values := []uint8{0}
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			values[len(values)-1] = uint8(r - '0')
			continue
		}
		if r != '.' && !unicode.IsLetter(r) && r != '\'' {
			return ErrInvalidPattern
		}
		letters = append(letters, unicode.ToLower(r))
		values = append(values, 0)
	}
	if len(letters) == 0 {
		return ErrInvalidPattern
	}
	d.patterns[string(letters)] = values
	d.maxLen = max(d.maxLen, len(letters))
	return nil
}

func (d *Dictionary) addException(tok string) error {
	var letters []rune
	var points []int
	for _, r := range tok {
		if r == '-' {
			if len(letters) == 0 {
				return ErrInvalidPattern
			}
			points = append(points, len(letters)-1)
			continue
		}
		letters = append(letters, unicode.ToLower(r))
	}
	if len(letters) == 0 {
		return ErrInvalidPattern
	}
	d.exceptions[string(letters)] = points
	return nil
}

// Language returns the language the patterns were loaded for.
func (d *Dictionary) Language() language.Language {
	return d.lang
}

// Len returns the number of patterns.
func (d *Dictionary) Len() int {
	return len(d.patterns)
}

// Hyphenate implements Oracle.
func (d *Dictionary) Hyphenate(word []rune, widths []int, flags []font.CharFlags, hyphenWidth, maxWidth int) bool {
	left, right := normalizeMinimums(d.Left, d.Right)
	found := false
	segments(word, left+right, func(start int, seg []rune) {
		for _, m := range d.Points(seg) {
			if m+1 < left || len(seg)-m-1 < right {
				continue
			}
			if mark(start+m, widths, flags, hyphenWidth, maxWidth) {
				found = true
			}
		}
	})
	return found
}

// Points returns the indices of the characters of word after which the
// patterns allow a break, ignoring Left and Right.
func (d *Dictionary) Points(word []rune) []int {
	key := foldWord(word)
	return d.words.GetOrCreate(key, func() []int {
		if points, ok := d.exceptions[key]; ok {
			return points
		}
		return d.liang([]rune(key))
	})
}

// liang runs the pattern matcher over a folded word.
func (d *Dictionary) liang(word []rune) []int {
	dotted := make([]rune, 0, len(word)+2)
	dotted = append(dotted, '.')
	dotted = append(dotted, word...)
	dotted = append(dotted, '.')

	// values[p] sits between dotted[p-1] and dotted[p].
	values := make([]uint8, len(dotted)+1)
	for i := range dotted {
		for j := i + 1; j <= len(dotted) && j-i <= d.maxLen; j++ {
			pat, ok := d.patterns[string(dotted[i:j])]
			if !ok {
				continue
			}
			for k, v := range pat {
				values[i+k] = max(values[i+k], v)
			}
		}
	}

	var points []int
	// A break after word[m] sits between dotted[m+1] and dotted[m+2].
	for m := 0; m+1 < len(word); m++ {
		if values[m+2]%2 == 1 {
			points = append(points, m)
		}
	}
	return points
}

// foldWord lower-cases and composes word. Composition that would change
// the character count is skipped so that indices stay aligned with the
// caller's widths.
func foldWord(word []rune) string {
	lower := strings.ToLower(string(word))
	if composed := norm.NFC.String(lower); len([]rune(composed)) == len(word) {
		return composed
	}
	if len([]rune(lower)) != len(word) {
		return string(word)
	}
	return lower
}

var english = sync.OnceValue(func() *Dictionary {
	d, err := loadEmbedded("en")
	if err != nil {
		panic(err)
	}
	return d
})

// English returns a dictionary built from the embedded English patterns.
// The patterns are a compact subset of the TeX US English set; common
// words hyphenate correctly, rare ones may get no points at all.
func English() *Dictionary {
	return english()
}

func loadEmbedded(lang string) (*Dictionary, error) {
	f, err := patternFiles.Open("patterns/" + lang + ".pat")
	if err != nil {
		return nil, fmt.Errorf("hyphen: no embedded patterns for %q: %w", lang, err)
	}
	defer f.Close()
	return ParsePatterns(lang, f)
}

// builtin maps primary language subtags to embedded dictionaries.
var builtin = map[language.Language]func() *Dictionary{
	"en": English,
}

// ForLanguage returns the best oracle for a BCP 47 language tag: an
// embedded dictionary for the tag's primary language when there is one,
// None for the empty tag and "none", Algorithmic otherwise.
func ForLanguage(tag string) Oracle {
	if tag == "" || strings.EqualFold(tag, "none") {
		return None{}
	}
	lang := language.NewLanguage(tag)
	if load, ok := builtin[lang.Primary()]; ok {
		return load()
	}
	return Algorithmic{}
}

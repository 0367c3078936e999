// Package hyphen finds hyphenation points in words.
//
// An Oracle marks the characters after which a line may end with an
// inserted hyphen. Three oracles are provided:
//
//   - None never hyphenates.
//   - Algorithmic splits between vowel and consonant groups and needs no
//     data, which makes it a reasonable fallback for any alphabetic script.
//   - Dictionary applies Liang's pattern algorithm, the one used by TeX,
//     with patterns in the TeX \patterns{} format.
//
// ForLanguage picks the best oracle available for a language tag:
//
//	o := hyphen.ForLanguage("en-US")
//	ok := o.Hyphenate(word, widths, flags, hyphenWidth, budget)
//
// Widths passed to an oracle are cumulative from the start of the word,
// as produced by font.Face.MeasureText. A point is only marked when the
// word prefix plus the hyphen fits within the budget.
package hyphen

// Package layout breaks styled runs of text and inline objects into lines.
//
// A Formatter splits its input into paragraphs at runs flagged NewLine,
// measures each paragraph with the faces of its runs and fills lines
// greedily. Break opportunities come from the character classes reported
// by font.Face; when a line would otherwise be left too short the
// Formatter tries a break after a dash and then asks the configured
// hyphen.Oracle for a hyphenation point.
//
// Lines are aligned left, right, centered or justified. Justification
// widens the words followed by a space; with MinSpaceCondensingPercent
// below 100 spaces may instead be narrowed to fit more text. Trailing
// punctuation of right aligned and justified paragraphs may hang past the
// right margin.
//
// Format is deterministic: the same runs, width and options always produce
// the same Result.
package layout

package layout

// WordFlags describe a word's relation to what follows it.
type WordFlags uint8

const (
	// CanAddSpaceAfter marks a word ending in a space that justification
	// may widen or condensing may narrow.
	CanAddSpaceAfter WordFlags = 1 << iota
	CanBreakAfter
	CanHyphenAfter
	MustBreakAfter
	IsObject
	IsLinkStart
	// Hyphenated marks the last word of a line broken inside the word; a
	// hyphen is drawn after it and included in Width.
	Hyphenated
)

// Word is a positioned span of one run.
type Word struct {
	// Run is the index of the source run.
	Run int

	// Start and Len locate the word in the run's Text. An object word has
	// Start 0 and Len 1.
	Start, Len int

	// X is the offset from the line's X.
	X int

	// Width is the width after alignment. MinWidth is the narrowest the
	// word may be condensed to.
	Width, MinWidth int

	// Y shifts the word's baseline from the line's baseline, positive
	// down.
	Y int

	// Height is the resized height of an object word, 0 for text.
	Height int

	Flags WordFlags
}

// Line is one formatted line.
type Line struct {
	// Y is the top of the line from the top of the text.
	Y int

	// X is the left edge of the line from the column's left edge.
	X int

	Width    int
	Height   int
	Baseline int

	// Align is the alignment applied to this line.
	Align Align

	Words []Word

	// Para is the index of the paragraph, counting from zero.
	Para int

	// Last marks the last line of a paragraph.
	Last bool
}

// Result is the output of Formatter.Format.
type Result struct {
	Height int
	Lines  []Line
}

package layout

import (
	"log/slog"

	"github.com/gogpu/textflow/hyphen"
)

// Options configures a Formatter.
type Options struct {
	// LastLineAlign aligns the last line of a justified paragraph.
	// AlignNone and AlignJustify mean AlignLeft.
	LastLineAlign Align

	// MinSpaceCondensingPercent is how narrow a space may be condensed to
	// fit more text on a line, in percent of its width. 100 disables
	// condensing.
	// Default: 100
	MinSpaceCondensingPercent int

	// Hyphenator finds hyphenation points in runs flagged Hyphenate.
	// Nil disables hyphenation.
	Hyphenator hyphen.Oracle

	// ImageScaling controls how inline objects are resized.
	ImageScaling ImageScaling

	// NoHangingPunctuation keeps trailing punctuation of right aligned and
	// justified lines inside the right margin instead of letting it hang.
	NoHangingPunctuation bool

	// DeprecatedWrapUnusedPercent is the unused width, in percent of the
	// line, above which a break after a dash is preferred to an earlier
	// space.
	// Default: 3
	DeprecatedWrapUnusedPercent int

	// HyphenateUnusedPercent is the unused width above which the word
	// crossing the line end is hyphenated.
	// Default: 5
	HyphenateUnusedPercent int

	// MinHyphenateWordLength is the shortest word the Hyphenator is asked
	// about.
	// Default: 4
	MinHyphenateWordLength int

	// MaxChunkSize is the most characters measured in one call to the
	// face.
	// Default: 4096
	MaxChunkSize int

	// IntegerScaleMargin is the margin an integer enlargement must leave
	// to the column and page.
	// Default: 20
	IntegerScaleMargin int

	// Logger receives per-paragraph diagnostics. Nil is silent.
	Logger *slog.Logger
}

// DefaultOptions returns the default formatter options.
func DefaultOptions() Options {
	return Options{
		LastLineAlign:               AlignNone,
		MinSpaceCondensingPercent:   100,
		ImageScaling:                DefaultImageScaling(),
		DeprecatedWrapUnusedPercent: 3,
		HyphenateUnusedPercent:      5,
		MinHyphenateWordLength:      4,
		MaxChunkSize:                4096,
		IntegerScaleMargin:          20,
	}
}

// normalize replaces zero tuning values with defaults.
func (o *Options) normalize() {
	def := DefaultOptions()
	if o.MinSpaceCondensingPercent <= 0 || o.MinSpaceCondensingPercent > 100 {
		o.MinSpaceCondensingPercent = def.MinSpaceCondensingPercent
	}
	if o.DeprecatedWrapUnusedPercent <= 0 {
		o.DeprecatedWrapUnusedPercent = def.DeprecatedWrapUnusedPercent
	}
	if o.HyphenateUnusedPercent <= 0 {
		o.HyphenateUnusedPercent = def.HyphenateUnusedPercent
	}
	if o.MinHyphenateWordLength <= 0 {
		o.MinHyphenateWordLength = def.MinHyphenateWordLength
	}
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = def.MaxChunkSize
	}
	if o.IntegerScaleMargin <= 0 {
		o.IntegerScaleMargin = def.IntegerScaleMargin
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// condensing reports whether spaces may be narrowed.
func (o *Options) condensing() bool {
	return o.MinSpaceCondensingPercent < 100
}

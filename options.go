package textflow

import (
	"log/slog"

	"github.com/gogpu/textflow/hyphen"
	"github.com/gogpu/textflow/layout"
	"github.com/gogpu/textflow/render"
)

// Option configures a Buffer during creation.
//
// Example:
//
//	buf := textflow.NewBuffer(
//	    textflow.WithLastLineAlign(layout.AlignCenter),
//	    textflow.WithHyphenator(hyphen.English()),
//	)
type Option func(*options)

// options holds the configuration of a Buffer.
type options struct {
	layout  layout.Options
	objects render.ObjectDrawer
	logger  *slog.Logger
}

// defaultOptions returns the default buffer options.
func defaultOptions() options {
	return options{
		layout:  layout.DefaultOptions(),
		objects: nil, // render.ImageObjects
		logger:  nil, // package Logger()
	}
}

// WithLayoutOptions replaces all formatter options at once.
// Options applied after it adjust the given values.
func WithLayoutOptions(o layout.Options) Option {
	return func(opts *options) {
		opts.layout = o
	}
}

// WithImageScaling sets how inline objects are resized to the column.
func WithImageScaling(s layout.ImageScaling) Option {
	return func(o *options) {
		o.layout.ImageScaling = s
	}
}

// WithMinSpaceCondensingPercent lets spaces shrink to p percent of their
// width so that more text fits on a line. 100 disables condensing.
func WithMinSpaceCondensingPercent(p int) Option {
	return func(o *options) {
		o.layout.MinSpaceCondensingPercent = p
	}
}

// WithLastLineAlign sets the alignment of the last line of justified
// paragraphs.
func WithLastLineAlign(a layout.Align) Option {
	return func(o *options) {
		o.layout.LastLineAlign = a
	}
}

// WithHyphenator enables hyphenation of runs flagged layout.Hyphenate.
//
// Example:
//
//	buf := textflow.NewBuffer(textflow.WithHyphenator(hyphen.ForLanguage("en-US")))
func WithHyphenator(h hyphen.Oracle) Option {
	return func(o *options) {
		o.layout.Hyphenator = h
	}
}

// WithHangingPunctuation controls whether trailing punctuation of right
// aligned and justified lines hangs past the margin. It is on by default.
func WithHangingPunctuation(on bool) Option {
	return func(o *options) {
		o.layout.NoHangingPunctuation = !on
	}
}

// WithMaxChunkSize limits how many characters are measured per call to a
// face.
func WithMaxChunkSize(n int) Option {
	return func(o *options) {
		o.layout.MaxChunkSize = n
	}
}

// WithObjectDrawer sets the drawer of inline objects used by Draw.
func WithObjectDrawer(d render.ObjectDrawer) Option {
	return func(o *options) {
		o.objects = d
	}
}

// WithLogger gives the buffer its own logger instead of the package
// default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

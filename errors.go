package textflow

import "errors"

var (
	// ErrNilFace is returned when a text run is added without a face.
	ErrNilFace = errors.New("textflow: nil face")

	// ErrInvalidText is returned for text that is not valid UTF-8.
	ErrInvalidText = errors.New("textflow: text is not valid UTF-8")

	// ErrInvalidObjectSize is returned for an object with a negative size.
	ErrInvalidObjectSize = errors.New("textflow: negative object size")
)

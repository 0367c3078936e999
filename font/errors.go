package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrRegistryClosed is returned when a closed registry is used.
	ErrRegistryClosed = errors.New("font: registry is closed")

	// ErrInvalidSize is returned for non-positive face sizes.
	ErrInvalidSize = errors.New("font: face size must be positive")
)

// UnknownFontError is returned when a face is requested for a font name
// that was never registered.
type UnknownFontError struct {
	Name string
}

func (e *UnknownFontError) Error() string {
	return fmt.Sprintf("font: unknown font %q", e.Name)
}

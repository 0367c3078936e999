package hyphen

import "errors"

// Sentinel errors for hyphen package.
var (
	// ErrNoPatterns is returned when pattern data holds no patterns.
	ErrNoPatterns = errors.New("hyphen: no patterns")

	// ErrInvalidPattern is returned for a malformed pattern token.
	ErrInvalidPattern = errors.New("hyphen: invalid pattern")
)

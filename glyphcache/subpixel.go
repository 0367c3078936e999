package glyphcache

// Phase is a quantized sub-pixel horizontal offset, in [0, divisions).
type Phase uint8

// SubpixelMode controls how many sub-pixel phases a glyph may be
// rasterized at. Every phase is a separate cache entry.
type SubpixelMode int

const (
	// SubpixelNone snaps glyphs to whole pixels.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 uses 4 phases (0.0, 0.25, 0.5, 0.75).
	Subpixel4 SubpixelMode = 4

	// Subpixel10 uses 10 phases (0.0, 0.1, ..., 0.9).
	Subpixel10 SubpixelMode = 10
)

// String returns the string representation of the subpixel mode.
func (m SubpixelMode) String() string {
	switch m {
	case SubpixelNone:
		return "None"
	case Subpixel4:
		return "Subpixel4"
	case Subpixel10:
		return "Subpixel10"
	default:
		return "Unknown"
	}
}

// IsEnabled returns true if sub-pixel positioning is enabled.
func (m SubpixelMode) IsEnabled() bool {
	return m > 0
}

// Divisions returns the number of phases, 1 for SubpixelNone.
func (m SubpixelMode) Divisions() int {
	if m <= 0 {
		return 1
	}
	return int(m)
}

// Quantize splits a fractional pen position into an integer pixel
// position and a phase.
//
// With Subpixel4:
//   - pos=10.0 returns (10, 0)
//   - pos=10.25 returns (10, 1)
//   - pos=10.99 returns (10, 3)
func Quantize(pos float64, mode SubpixelMode) (int, Phase) {
	if !mode.IsEnabled() {
		return int(pos + 0.5), 0
	}

	intPart := int(pos)
	if pos < 0 && pos != float64(intPart) {
		intPart--
	}
	frac := pos - float64(intPart)

	sub := int(frac * float64(mode.Divisions()))
	sub = min(max(sub, 0), mode.Divisions()-1)
	return intPart, Phase(sub) //nolint:gosec // bounded by Divisions
}

// Offset returns the fractional pixel offset of a phase.
// For Subpixel4: 0 -> 0.0, 1 -> 0.25, 2 -> 0.5, 3 -> 0.75.
func (m SubpixelMode) Offset(p Phase) float64 {
	if !m.IsEnabled() {
		return 0
	}
	return float64(p) / float64(m.Divisions())
}

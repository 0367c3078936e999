package layout

// ScaleMode selects how an inline object may be resized.
type ScaleMode uint8

const (
	// ScaleDisabled never enlarges; oversized objects are still reduced
	// by an integer divisor.
	ScaleDisabled ScaleMode = iota
	// ScaleInteger resizes by integer factors only.
	ScaleInteger
	// ScaleArbitrary resizes by any ratio.
	ScaleArbitrary
)

// String returns the string representation of the scale mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleDisabled:
		return "Disabled"
	case ScaleInteger:
		return "Integer"
	case ScaleArbitrary:
		return "Arbitrary"
	default:
		return "Unknown"
	}
}

// ScalePolicy is one direction of object scaling.
type ScalePolicy struct {
	Mode ScaleMode

	// MaxScale caps enlargement. Zero means 1.
	MaxScale int
}

// ImageScaling holds the policies for objects smaller than the column
// (ZoomIn) and larger than it (ZoomOut).
type ImageScaling struct {
	ZoomIn  ScalePolicy
	ZoomOut ScalePolicy
}

// DefaultImageScaling never enlarges and shrinks oversized objects to fit.
func DefaultImageScaling() ImageScaling {
	return ImageScaling{
		ZoomIn:  ScalePolicy{Mode: ScaleDisabled, MaxScale: 1},
		ZoomOut: ScalePolicy{Mode: ScaleArbitrary, MaxScale: 1},
	}
}

// ResizeObject returns the size of a w by h object laid out in a column
// of maxW by maxH pixels. A non-positive maxH leaves the height
// unconstrained; a non-positive maxW or object size returns the size
// unchanged.
func ResizeObject(w, h, maxW, maxH int, s ImageScaling) (int, int) {
	return resize(w, h, maxW, maxH, s, DefaultOptions().IntegerScaleMargin)
}

func resize(w, h, maxW, maxH int, s ImageScaling, margin int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 {
		return w, h
	}
	if maxH <= 0 {
		// Unconstrained: as tall as enlargement could ever need.
		maxH = h*max(s.ZoomIn.MaxScale, 1) + 2*margin + 1
	}

	if w <= maxW && h <= maxH {
		p := s.ZoomIn
		if p.Mode == ScaleArbitrary {
			return scaleArbitrary(w, h, maxW, maxH, p.MaxScale)
		}
		limit := max(p.MaxScale, 1)
		if p.Mode == ScaleDisabled {
			limit = 1
		}
		for k := min(limit, 3); k >= 2; k-- {
			if k*h < maxH-margin && k*w < maxW-margin {
				return k * w, k * h
			}
		}
		return w, h
	}

	if s.ZoomOut.Mode == ScaleArbitrary {
		return scaleArbitrary(w, h, maxW, maxH, 1)
	}
	div := max(ceilDiv(w, maxW), ceilDiv(h, maxH))
	return max(w/div, 1), max(h/div, 1)
}

// scaleArbitrary fits w by h into maxW by maxH at the largest ratio, in
// thousandths, not above maxScale.
func scaleArbitrary(w, h, maxW, maxH, maxScale int) (int, int) {
	scale := min(1000*maxW/w, 1000*maxH/h, max(maxScale, 1)*1000)
	return max(w*scale/1000, 1), max(h*scale/1000, 1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

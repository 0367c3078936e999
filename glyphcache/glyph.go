package glyphcache

// HeaderSize is the fixed per-item overhead counted in the footprint of
// every cached glyph, on top of its coverage bytes.
const HeaderSize = 48

// Glyph is a rasterized glyph bitmap.
type Glyph struct {
	// Char is the character this bitmap was rasterized for.
	Char rune

	// Phase is the sub-pixel phase the glyph was rasterized at.
	Phase Phase

	// Width and Height are the bitmap dimensions in pixels.
	Width, Height int

	// OriginX and OriginY locate the bitmap's top-left corner relative to
	// the pen position on the baseline.
	OriginX, OriginY int

	// Advance is the horizontal pen advance in pixels.
	Advance int

	// Coverage holds Width*Height alpha values, row-major.
	Coverage []byte
}

// Footprint returns the number of bytes the glyph accounts for in the cache.
func (g *Glyph) Footprint() int {
	return HeaderSize + g.Width*g.Height
}

// At returns the coverage at bitmap position (x, y), or 0 outside the bitmap.
func (g *Glyph) At(x, y int) byte {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	i := y*g.Width + x
	if i >= len(g.Coverage) {
		return 0
	}
	return g.Coverage[i]
}

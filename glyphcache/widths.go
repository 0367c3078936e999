package glyphcache

const (
	widthPageBits = 9
	// WidthPageSize is the number of characters covered by one page.
	WidthPageSize = 1 << widthPageBits

	notMeasured int32 = -1
)

type widthPage [WidthPageSize]int32

// WidthCache maps characters to advance widths without rasterizing.
//
// The table is sparse: one page per 512-character block, allocated on the
// first store into that block. There is no eviction; Clear drops every
// page, which owners do whenever the font's rendering mode changes.
//
// WidthCache is not safe for concurrent use.
type WidthCache struct {
	pages []*widthPage
}

// Get returns the cached advance of r.
func (c *WidthCache) Get(r rune) (int, bool) {
	if r < 0 {
		return 0, false
	}
	p := int(r >> widthPageBits)
	if p >= len(c.pages) || c.pages[p] == nil {
		return 0, false
	}
	w := c.pages[p][r&(WidthPageSize-1)]
	if w == notMeasured {
		return 0, false
	}
	return int(w), true
}

// Set stores the advance of r.
func (c *WidthCache) Set(r rune, w int) {
	if r < 0 {
		return
	}
	p := int(r >> widthPageBits)
	if p >= len(c.pages) {
		grown := make([]*widthPage, p+1)
		copy(grown, c.pages)
		c.pages = grown
	}
	page := c.pages[p]
	if page == nil {
		page = new(widthPage)
		for i := range page {
			page[i] = notMeasured
		}
		c.pages[p] = page
	}
	page[r&(WidthPageSize-1)] = int32(w) //nolint:gosec // glyph advances fit in int32
}

// Clear forgets every measured width.
func (c *WidthCache) Clear() {
	c.pages = nil
}

// Pages returns the number of allocated pages.
func (c *WidthCache) Pages() int {
	n := 0
	for _, p := range c.pages {
		if p != nil {
			n++
		}
	}
	return n
}

// Package glyphcache keeps rasterized glyph bitmaps within a byte budget.
//
// The cache is organised as two linked structures over one arena of items:
//
//   - a global list holding every resident item in most-recently-used order,
//     which tracks the total byte footprint against a fixed capacity;
//   - one local chain per font instance ([Local]), an unordered list of the
//     items rasterized for that font. Local chains have no capacity.
//
// Capacity pressure on the global list evicts its tail, and the evicted
// item is unlinked from whichever local chain holds it in the same step:
//
//	c := glyphcache.New(glyphcache.DefaultConfig())
//	local := c.NewLocal()
//	if g, ok := c.Get(local, 'A', 0); ok {
//	    draw(g)
//	} else {
//	    g = rasterize('A')
//	    c.Put(local, g)
//	}
//
// Items are addressed by stable int32 arena indices rather than pointers,
// so an evicted item can never be reached through a stale link.
//
// The package also provides [WidthCache], a paged table of character
// advances that is independent of rasterization.
package glyphcache

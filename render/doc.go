// Package render paints formatted lines onto a draw.Image.
//
// The Renderer walks the lines produced by package layout and draws, in
// order, run backgrounds, selection highlights, glyph coverage masks,
// text decorations and inline objects. Glyph bitmaps come from each run's
// font.Face and therefore from the shared glyph cache; the renderer never
// rasterizes outlines itself.
//
// Inline objects are drawn by an ObjectDrawer. The default, ImageObjects,
// scales image.Image objects into their laid out rectangle.
//
// Example:
//
//	res := layout.NewFormatter(layout.DefaultOptions()).Format(runs, 400, 0)
//	dst := image.NewRGBA(image.Rect(0, 0, 400, res.Height))
//	var r render.Renderer
//	r.Draw(dst, res.Lines, runs, 0, 0, nil)
package render

// Package font provides the font metrics used by the paragraph layout
// engine and the glyph bitmaps used by the renderer.
//
// The pipeline separates three concerns:
//
//   - Source: a parsed TTF/OTF file, heavyweight and shared
//   - Face: one font instance at one size, measuring text and producing
//     glyph bitmaps through the shared glyph cache
//   - Registry: the explicit owner of sources, faces and the glyph cache
//
// # Example usage
//
//	reg := font.NewRegistry(font.DefaultRegistryConfig())
//	defer reg.Close()
//
//	if err := reg.RegisterData("Go", goregular.TTF); err != nil {
//	    log.Fatal(err)
//	}
//	face, err := reg.Face("Go", 16, font.WithKerning(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	widths := make([]int, len(text))
//	flags := make([]font.CharFlags, len(text))
//	n := face.MeasureText(text, widths, flags, 400, '?', 0, true)
//
// There is no process-wide font manager: a Registry is constructed and torn
// down by its owner, and layout code receives faces explicitly.
package font

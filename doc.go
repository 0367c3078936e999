// Package textflow lays out styled text and inline objects into lines and
// draws them.
//
// # Overview
//
// A Buffer collects runs: pieces of text in one font.Face and inline
// objects such as images. Format breaks them into paragraphs and lines for
// a column width, and Draw paints the lines onto any draw.Image.
//
// # Quick Start
//
//	reg := font.NewRegistry(font.DefaultRegistryConfig())
//	defer reg.Close()
//	if _, err := reg.RegisterData("regular", goregular.TTF); err != nil {
//	    log.Fatal(err)
//	}
//	face, err := reg.Face("regular", 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := textflow.NewBuffer(textflow.WithHyphenator(hyphen.English()))
//	_ = buf.AddTextRun(face, "Hello world", color.Black, nil,
//	    layout.NewLine|layout.Hyphenate, textflow.TextStyle{Align: layout.AlignJustify})
//	height := buf.Format(400, 0)
//
//	dst := image.NewRGBA(image.Rect(0, 0, 400, height))
//	buf.Draw(dst, 0, 0, nil)
//
// # Architecture
//
// The module is organized into:
//   - glyphcache: byte-budgeted LRU of glyph bitmaps with per-font chains
//   - font: faces, font sources and the font registry
//   - hyphen: hyphenation oracles (TeX patterns, algorithmic, none)
//   - layout: the paragraph formatter
//   - render: painting of formatted lines
//
// # Logging
//
// textflow is silent by default. SetLogger installs a *slog.Logger used by
// buffers without one of their own.
package textflow

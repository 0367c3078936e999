// Command flowdemo formats a text file into a column and renders it to PNG.
//
// Paragraphs are separated by blank lines. A paragraph whose lines all
// start with a tab is preformatted; text between underscores is set in
// italics.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textflow"
	"github.com/gogpu/textflow/font"
	"github.com/gogpu/textflow/hyphen"
	"github.com/gogpu/textflow/layout"
)

const sample = `The layout engine breaks paragraphs of styled runs into lines. It prefers breaks at spaces, falls back to dashes inside compound words such as state-of-the-art, and hyphenates long words like internationalization or representation when a line would otherwise be left too short.

Justified lines spread their leftover width over the spaces; the last line of a paragraph is aligned _left_ unless configured otherwise.

	func main() {
		fmt.Println("preformatted text keeps its line feeds")
	}`

// margin is the border around the column in the output image.
const margin = 16

func main() {
	var (
		input   = flag.String("in", "", "text file (default: built-in sample)")
		width   = flag.Int("width", 480, "column width in pixels")
		align   = flag.String("align", "justify", "alignment: left, right, center or justify")
		size    = flag.Float64("size", 16, "font size in points")
		lang    = flag.String("hyphenate", "en", "hyphenation language, none to disable")
		output  = flag.String("out", "flow.png", "output file")
		verbose = flag.Bool("v", false, "log layout diagnostics")
	)
	flag.Parse()

	if *verbose {
		textflow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	text := sample
	if *input != "" {
		data, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		text = string(data)
	}
	a, err := parseAlign(*align)
	if err != nil {
		log.Fatal(err)
	}

	reg := font.NewRegistry(font.RegistryConfig{Logger: textflow.Logger()})
	defer func() {
		_ = reg.Close()
	}()
	regular, italic, err := loadFaces(reg, *size)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	buf := textflow.NewBuffer(textflow.WithHyphenator(hyphen.ForLanguage(*lang)))
	if err := addText(buf, text, regular, italic, a); err != nil {
		log.Fatalf("Failed to add text: %v", err)
	}
	height := buf.Format(*width, 0)

	img := image.NewRGBA(image.Rect(0, 0, *width+2*margin, height+2*margin))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	buf.Draw(img, margin, margin, nil)

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Flow saved to %s (%d lines, %dx%d)\n", *output, buf.LineCount(), img.Bounds().Dx(), img.Bounds().Dy())
}

func parseAlign(s string) (layout.Align, error) {
	switch strings.ToLower(s) {
	case "left":
		return layout.AlignLeft, nil
	case "right":
		return layout.AlignRight, nil
	case "center":
		return layout.AlignCenter, nil
	case "justify":
		return layout.AlignJustify, nil
	}
	return layout.AlignNone, fmt.Errorf("unknown alignment %q", s)
}

func loadFaces(reg *font.Registry, size float64) (regular, italic font.Face, err error) {
	if _, err = reg.RegisterData("regular", goregular.TTF); err != nil {
		return nil, nil, err
	}
	if _, err = reg.RegisterData("italic", goitalic.TTF); err != nil {
		return nil, nil, err
	}
	r, err := reg.Face("regular", size)
	if err != nil {
		return nil, nil, err
	}
	i, err := reg.Face("italic", size)
	if err != nil {
		return nil, nil, err
	}
	return r, i, nil
}

// addText adds one paragraph per block of text between blank lines.
func addText(buf *textflow.Buffer, text string, regular, italic font.Face, align layout.Align) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.Trim(para, "\n")
		if para == "" {
			continue
		}
		if preformatted(para) {
			body := strings.ReplaceAll(strings.TrimPrefix(para, "\t"), "\n\t", "\n")
			style := textflow.TextStyle{Align: layout.AlignLeft}
			if err := buf.AddTextRun(regular, body, color.Black, nil, layout.NewLine|layout.Preformatted, style); err != nil {
				return err
			}
			continue
		}
		if err := addParagraph(buf, strings.ReplaceAll(para, "\n", " "), regular, italic, align); err != nil {
			return err
		}
	}
	return nil
}

// addParagraph adds the runs of one paragraph, switching to the italic
// face at every underscore.
func addParagraph(buf *textflow.Buffer, para string, regular, italic font.Face, align layout.Align) error {
	style := textflow.TextStyle{Align: align, FirstLineMargin: margin}
	flags := layout.NewLine
	for i, part := range strings.Split(para, "_") {
		if part == "" {
			continue
		}
		face := regular
		if i%2 == 1 {
			face = italic
		}
		if err := buf.AddTextRun(face, part, color.Black, nil, flags|layout.Hyphenate, style); err != nil {
			return err
		}
		flags = 0
	}
	return nil
}

func preformatted(para string) bool {
	for _, line := range strings.Split(para, "\n") {
		if !strings.HasPrefix(line, "\t") {
			return false
		}
	}
	return true
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

package font

import (
	"log/slog"

	xfont "golang.org/x/image/font"

	"github.com/gogpu/textflow/glyphcache"
)

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for OpenTypeFace.
type faceConfig struct {
	hinting   xfont.Hinting
	kerning   bool
	antialias bool
	subpixel  glyphcache.SubpixelMode
	dpi       float64
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		hinting:   xfont.HintingFull,
		kerning:   true,
		antialias: true,
		subpixel:  glyphcache.SubpixelNone,
		dpi:       72,
	}
}

// WithHinting sets the hinting mode for the face.
func WithHinting(h xfont.Hinting) FaceOption {
	return func(c *faceConfig) {
		c.hinting = h
	}
}

// WithKerning enables or disables pair kerning in measurement.
func WithKerning(on bool) FaceOption {
	return func(c *faceConfig) {
		c.kerning = on
	}
}

// WithAntialias selects antialiased (true) or bilevel (false) bitmaps.
func WithAntialias(on bool) FaceOption {
	return func(c *faceConfig) {
		c.antialias = on
	}
}

// WithSubpixel sets the number of sub-pixel phases glyphs are rasterized at.
func WithSubpixel(m glyphcache.SubpixelMode) FaceOption {
	return func(c *faceConfig) {
		c.subpixel = m
	}
}

// WithDPI sets the resolution used to convert the point size to pixels.
// Default: 72, so that sizes are in pixels.
func WithDPI(dpi float64) FaceOption {
	return func(c *faceConfig) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// RegistryConfig holds configuration for Registry.
type RegistryConfig struct {
	// CacheCapacity is the byte budget of the shared glyph cache.
	// Default: glyphcache.DefaultCapacity
	CacheCapacity int

	// FaceLimit bounds the number of open OpenType faces. The least
	// recently requested face is closed when the limit is exceeded.
	// Default: 64. Zero or negative means the default.
	FaceLimit int

	// Logger receives registry and cache diagnostics. Nil is silent.
	Logger *slog.Logger
}

// DefaultRegistryConfig returns the default registry configuration.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		CacheCapacity: glyphcache.DefaultCapacity,
		FaceLimit:     64,
	}
}

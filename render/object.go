package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ObjectDrawer draws the payload of an inline object into r.
type ObjectDrawer interface {
	DrawObject(dst draw.Image, r image.Rectangle, obj any)
}

// ImageObjects draws image.Image objects scaled to their rectangle and
// ignores anything else.
type ImageObjects struct {
	// Scaler resizes images. Nil means xdraw.ApproxBiLinear.
	Scaler xdraw.Scaler
}

// DrawObject implements ObjectDrawer.
func (d ImageObjects) DrawObject(dst draw.Image, r image.Rectangle, obj any) {
	img, ok := obj.(image.Image)
	if !ok || r.Empty() {
		return
	}
	if img.Bounds().Size() == r.Size() {
		draw.Draw(dst, r, img, img.Bounds().Min, draw.Over)
		return
	}
	s := d.Scaler
	if s == nil {
		s = xdraw.ApproxBiLinear
	}
	s.Scale(dst, r, img, img.Bounds(), xdraw.Over, nil)
}

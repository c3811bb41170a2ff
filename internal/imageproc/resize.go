package imageproc

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// DisplaySize returns the aspect-preserving scale that fits a w×h image into a cw×ch container
// and the resulting size. A non-positive container dimension means no scaling.
func DisplaySize(w, h, cw, ch int) (scale float64, dw, dh int) {
	if w <= 0 || h <= 0 || cw <= 0 || ch <= 0 {
		return 1, w, h
	}
	scale = math.Min(float64(cw)/float64(w), float64(ch)/float64(h))
	dw = max(1, int(math.Round(float64(w)*scale)))
	dh = max(1, int(math.Round(float64(h)*scale)))
	return scale, dw, dh
}

// Resizer scales a rendered surface down (or up) to the display size.
func Resizer(img image.Image, dw, dh int) image.Image {
	b := img.Bounds()
	if b.Dx() == dw && b.Dy() == dh {
		return img
	}
	return imaging.Resize(img, dw, dh, imaging.Lanczos)
}

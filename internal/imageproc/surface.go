// Package imageproc provides the raster pipeline: a drawing surface, noise and text-watermark compositing,
// decoding/encoding, thumbnails and display-size resizing.
package imageproc

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Surface is a mutable grid of non-premultiplied RGBA pixels with a global paint alpha.
// Pixels are stored row by row starting at (0,0), 4 bytes per pixel.
type Surface struct {
	img         *image.NRGBA
	globalAlpha float64
}

func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", model.ErrSurfaceUnavailable, w, h)
	}
	return &Surface{
		img:         image.NewNRGBA(image.Rect(0, 0, w, h)),
		globalAlpha: 1,
	}, nil
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Image exposes the backing pixels; callers must not keep it past the next mutation.
func (s *Surface) Image() *image.NRGBA { return s.img }

func (s *Surface) GlobalAlpha() float64 { return s.globalAlpha }

// SetGlobalAlpha ignores values outside [0,1], as 2D canvases do.
func (s *Surface) SetGlobalAlpha(a float64) {
	if math.IsNaN(a) || a < 0 || a > 1 {
		return
	}
	s.globalAlpha = a
}

// DrawImage composites src over the surface with its top-left corner at the origin.
// The source is drawn opaque, global alpha only applies to text.
func (s *Surface) DrawImage(src image.Image) {
	b := src.Bounds()
	draw.Draw(s.img, image.Rect(0, 0, b.Dx(), b.Dy()), src, b.Min, draw.Over)
}

// Channel returns channel c (0=R, 1=G, 2=B, 3=A) of pixel (x,y).
func (s *Surface) Channel(x, y, c int) uint8 {
	return s.img.Pix[s.img.PixOffset(x, y)+c]
}

// SetChannel writes v into channel c of pixel (x,y), saturating to [0,255].
func (s *Surface) SetChannel(x, y, c int, v float64) {
	s.img.Pix[s.img.PixOffset(x, y)+c] = saturate(v)
}

// saturate rounds half to even and clamps into the byte range.
func saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// FillText draws a single run of text positioned by anchor.
// The fill color's alpha is multiplied by the global alpha.
func (s *Surface) FillText(face font.Face, text string, a Anchor, c color.NRGBA) {
	if text == "" {
		return
	}

	width := font.MeasureString(face, text)
	x := toFixed(a.X)
	switch a.Align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}

	m := face.Metrics()
	y := toFixed(a.Y)
	switch a.Baseline {
	case BaselineTop:
		y += m.Ascent
	case BaselineMiddle:
		y += (m.Ascent - m.Descent) / 2
	case BaselineBottom:
		y -= m.Descent
	}

	c.A = uint8(math.Round(float64(c.A) * s.globalAlpha))
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(text)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

package imageproc

import (
	"fmt"
	"image"
	"image/color"

	"github.com/UnendingLoop/ImageWatermarker/internal/csscolor"
	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

// defaultFill - как у 2D-канваса: невалидный цвет игнорируется, остается черный
var defaultFill = color.NRGBA{A: 255}

// ApplyWatermark draws opts.Text once at the anchor of opts.Position with opts.Opacity as global alpha.
// Global alpha is back at 1 when it returns.
func ApplyWatermark(s *Surface, opts model.WatermarkOptions) error {
	anchor, err := ComputeAnchor(opts.Position, float64(s.Width()), float64(s.Height()), opts.FontSize)
	if err != nil {
		return err
	}

	face, err := NewFace(opts.FontSize)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrIncorrectOptions, err)
	}
	defer face.Close()

	fill, err := csscolor.Parse(opts.Color)
	if err != nil {
		fill = defaultFill
	}

	s.SetGlobalAlpha(opts.Opacity)
	defer s.SetGlobalAlpha(1)

	s.FillText(face, opts.Text, anchor, fill)
	return nil
}

// Render draws src onto a fresh surface at its native resolution and applies noise, then the watermark.
func Render(src image.Image, opts model.WatermarkOptions) (*Surface, error) {
	b := src.Bounds()
	s, err := NewSurface(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	s.DrawImage(src)
	ApplyNoise(s, opts.NoiseLevel)
	if err := ApplyWatermark(s, opts); err != nil {
		return nil, fmt.Errorf("apply watermark: %w", err)
	}
	return s, nil
}

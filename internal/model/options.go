package model

import (
	"fmt"

	"github.com/UnendingLoop/ImageWatermarker/internal/csscolor"
	"github.com/go-playground/validator/v10"
)

// WatermarkOptions - общие настройки для всех картинок на один проход рендера
type WatermarkOptions struct {
	Text       string   `json:"text"`
	FontSize   float64  `json:"font_size" validate:"gte=10,lte=200"`
	Color      string   `json:"color" validate:"required"`
	Opacity    float64  `json:"opacity" validate:"gte=0,lte=1"`
	Position   Position `json:"position"`
	NoiseLevel float64  `json:"noise_level" validate:"gte=0,lte=1"`
}

// DefaultOptions - значения формы по умолчанию
var DefaultOptions = WatermarkOptions{
	Text:       "© Watermark",
	FontSize:   48,
	Color:      "#ffffff",
	Opacity:    0.5,
	Position:   BottomRight,
	NoiseLevel: 0,
}

var validate = validator.New()

// Validate checks the limits the API imposes on options coming from clients.
// Compositors accept any positive font size, the API keeps it in [10,200].
func (o WatermarkOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrIncorrectOptions, err)
	}
	if _, err := ParsePosition(string(o.Position)); err != nil {
		return fmt.Errorf("%w: %w %q", ErrIncorrectOptions, err, o.Position)
	}
	if _, err := csscolor.Parse(o.Color); err != nil {
		return fmt.Errorf("%w: %v", ErrIncorrectColor, err)
	}
	return nil
}

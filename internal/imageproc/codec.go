package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// MaxJPEGQuality - экспорт всегда в максимальном качестве
const MaxJPEGQuality = 100

// Decode decodes an image of any registered format, applying EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to DEcode image: %w", err)
	}
	return img, nil
}

// DecodeConfig reads only the header and reports whether data is in a format Decode understands.
func DecodeConfig(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg, format, nil
}

// Encode encodes img as contentType at maximum quality. Types without an encoder are written as PNG,
// the returned content type is the one actually produced.
func Encode(img image.Image, contentType string) ([]byte, string, error) {
	format, ok := model.GetFormat[contentType]
	if !ok {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(MaxJPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("failed to ENcode image as %s: %w", model.GetCType[format], err)
	}
	return buf.Bytes(), model.GetCType[format], nil
}

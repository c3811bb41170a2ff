package imageproc

import (
	"errors"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/disintegration/imaging"
)

// Thumbnailer decodes an original item and returns a size×size PNG thumbnail of it.
func Thumbnailer(data []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("thumbnail size must be positive")
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	thumb := imaging.Thumbnail(img, size, size, imaging.Lanczos)

	res, _, err := Encode(thumb, model.PNG)
	return res, err
}

package transport

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrCommon500),
		errors.Is(err, model.ErrExportFailed),
		errors.Is(err, model.ErrSurfaceUnavailable):
		return 500
	case errors.Is(err, model.ErrExportInProgress):
		return 409
	case errors.Is(err, model.ErrNothingToPreview):
		return 204
	case errors.Is(err, model.ErrIncorrectIndex),
		errors.Is(err, model.ErrIncorrectOptions),
		errors.Is(err, model.ErrIncorrectPosition),
		errors.Is(err, model.ErrIncorrectColor),
		errors.Is(err, model.ErrEmptySource),
		errors.Is(err, model.ErrUnsupportedFormat),
		errors.Is(err, model.ErrNoImages):
		return 400
	default:
		return 500
	}
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, model.ErrIncorrectIndex
	}
	return index, nil
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}
	if err := res.Close(); err != nil {
		log.Println("Handler failed to close fileflow:", err)
	}
}

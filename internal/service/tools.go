package service

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/UnendingLoop/ImageWatermarker/internal/imageproc"
	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

const (
	defaultThumbSize = 128
	maxThumbSize     = 512
)

func normalizeThumbSize(size int) int {
	switch {
	case size <= 0:
		return defaultThumbSize
	case size > maxThumbSize:
		return maxThumbSize
	}
	return size
}

// readUpload читает файл и валидирует тип. ID и время ставит вызывающий
func readUpload(u *model.UploadData) (model.ImageItem, error) {
	if u.File == nil {
		return model.ImageItem{}, model.ErrEmptySource
	}
	data, err := io.ReadAll(u.File)
	if err != nil {
		return model.ImageItem{}, fmt.Errorf("%w: %v", model.ErrEmptySource, err)
	}
	if len(data) == 0 {
		return model.ImageItem{}, model.ErrEmptySource
	}

	// Content-Type из заголовка части, если его нет - угадываем по байтам
	ctype := normalizeCType(u.ContentType)
	if ctype == "" || ctype == "application/octet-stream" {
		ctype = normalizeCType(http.DetectContentType(data))
	}
	if !strings.HasPrefix(ctype, "image/") {
		return model.ImageItem{}, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, ctype)
	}
	// image/* еще не значит, что мы сможем это декодировать (svg, heic)
	if _, _, err := imageproc.DecodeConfig(data); err != nil {
		return model.ImageItem{}, fmt.Errorf("%w: %q: %v", model.ErrUnsupportedFormat, ctype, err)
	}

	return model.ImageItem{
		Filename:    sanitizeFilename(u.Filename, ctype),
		ContentType: ctype,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func normalizeCType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

// sanitizeFilename оставляет только базовое имя, чтобы в архиве не было путей
func sanitizeFilename(name, ctype string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		ext := model.GetImageFileExt[ctype]
		if ext == "" {
			ext = ".img"
		}
		return "image" + ext
	}
	return name
}

// renderItem - полный проход для экспорта: decode, noise, watermark, encode в исходный формат
func renderItem(item model.ImageItem, opts model.WatermarkOptions) ([]byte, string, error) {
	src, err := imageproc.Decode(item.Data)
	if err != nil {
		return nil, "", err
	}
	surface, err := imageproc.Render(src, opts)
	if err != nil {
		return nil, "", err
	}
	return imageproc.Encode(surface.Image(), item.ContentType)
}

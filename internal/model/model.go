// Package model provides data-structs for internal app-usage
package model

import (
	"errors"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	CenterLeft   Position = "center-left"
	Center       Position = "center"
	CenterRight  Position = "center-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

var PositionsMap = map[Position]bool{
	TopLeft:      true,
	TopCenter:    true,
	TopRight:     true,
	CenterLeft:   true,
	Center:       true,
	CenterRight:  true,
	BottomLeft:   true,
	BottomCenter: true,
	BottomRight:  true,
}

// ParsePosition validates a symbolic anchor name
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if !PositionsMap[p] {
		return "", ErrIncorrectPosition
	}
	return p, nil
}

//---------------------

// ImageItem - загруженный пользователем файл, после создания не меняется
type ImageItem struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Data        []byte    `json:"-"`
	AddedAt     time.Time `json:"added_at"`
}

// ItemList - ответ на запрос списка
type ItemList struct {
	Items    []ImageItem `json:"items"`
	Selected *int        `json:"selected"`
}

//---------------------

type PreviewRequest struct {
	Width  int  `form:"width"`
	Height int  `form:"height"`
	Fit    bool `form:"fit"`
}

type PreviewResult struct {
	Data          []byte
	ContentType   string
	NativeWidth   int
	NativeHeight  int
	DisplayWidth  int
	DisplayHeight int
	Scale         float64
}

// ArchiveEntry - один файл внутри итогового архива
type ArchiveEntry struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadData - один файл из multipart-формы
type UploadData struct {
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

type ExportResult struct {
	ID        string
	Archive   []byte
	Name      string
	Entries   int
	CreatedAt time.Time
}

// ExportEvent - сообщение в очередь по итогам экспорта
type ExportEvent struct {
	ExportID   string           `json:"export_id"`
	Entries    int              `json:"entries"`
	Size       int              `json:"size"`
	ArchiveKey string           `json:"archive_key,omitempty"`
	Options    WatermarkOptions `json:"options"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ------------------

var (
	ErrCommon500          error = errors.New("something went wrong. Try again later") // 500
	ErrIncorrectIndex     error = errors.New("incorrect image index")                 // 400
	ErrIncorrectOptions   error = errors.New("incorrect watermark options")           // 400
	ErrIncorrectPosition  error = errors.New("incorrect watermark position")          // 400
	ErrIncorrectColor     error = errors.New("incorrect watermark color")             // 400
	ErrEmptySource        error = errors.New("empty/incorrect source image provided") // 400
	ErrUnsupportedFormat  error = errors.New("unsupported image format")              // 400
	ErrNoImages           error = errors.New("no images to export")                   // 400
	ErrNothingToPreview   error = errors.New("nothing to preview")                    // 204
	ErrExportInProgress   error = errors.New("export is already in progress")         // 409
	ErrExportFailed       error = errors.New("failed to export images")               // 500
	ErrSurfaceUnavailable error = errors.New("rendering surface is unavailable")      // 500
)

//--------------------

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
	BMP  = "image/bmp"
	TIFF = "image/tiff"
	WEBP = "image/webp"

	ZIP = "application/zip"
)

var GetImageFileExt = map[string]string{
	JPEG: ".jpg",
	PNG:  ".png",
	GIF:  ".gif",
	BMP:  ".bmp",
	TIFF: ".tiff",
	WEBP: ".webp",
}

// GetFormat - форматы, которые умеем кодировать обратно. Остальное уходит в PNG
var GetFormat = map[string]imaging.Format{
	JPEG: imaging.JPEG,
	PNG:  imaging.PNG,
	GIF:  imaging.GIF,
	BMP:  imaging.BMP,
	TIFF: imaging.TIFF,
}

var GetCType = map[imaging.Format]string{
	imaging.JPEG: JPEG,
	imaging.GIF:  GIF,
	imaging.PNG:  PNG,
	imaging.BMP:  BMP,
	imaging.TIFF: TIFF,
}

// Package transport provides methods for processing requests from endpoints
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/wb-go/wbf/ginext"
)

type WatermarkHandler struct {
	service   WatermarkService
	maxUpload int64
}

type WatermarkService interface {
	Upload(ctx context.Context, files []model.UploadData) ([]model.ImageItem, error)
	List(ctx context.Context) model.ItemList
	Remove(ctx context.Context, index int) error
	Clear(ctx context.Context)
	Select(ctx context.Context, index int) error
	Thumbnail(ctx context.Context, index, size int) ([]byte, error)
	GetOptions(ctx context.Context) model.WatermarkOptions
	SetOptions(ctx context.Context, opts model.WatermarkOptions) error
	Preview(ctx context.Context, req model.PreviewRequest) (*model.PreviewResult, error)
	Export(ctx context.Context) (*model.ExportResult, error)
}

func NewWatermarkHandler(svc WatermarkService, maxUpload int64) *WatermarkHandler {
	return &WatermarkHandler{
		service:   svc,
		maxUpload: maxUpload,
	}
}

func (h WatermarkHandler) SimplePinger(ctx *ginext.Context) {
	ctx.JSON(200, map[string]string{"message": "pong"})
}

func (h WatermarkHandler) Upload(ctx *ginext.Context) {
	if h.maxUpload > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxUpload)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			ctx.JSON(413, map[string]string{"error": fmt.Sprintf("upload exceeds %d bytes", h.maxUpload)})
			return
		}
		ctx.JSON(400, map[string]string{"error": "failed to parse multipart form"})
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		ctx.JSON(400, map[string]string{"error": "images are required"})
		return
	}

	// открываем все части, закрываем после сервиса
	files := make([]model.UploadData, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			ctx.JSON(400, map[string]string{"error": fmt.Sprintf("failed to open %q", fh.Filename)})
			return
		}
		defer closeFileFlow(f)

		files = append(files, model.UploadData{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			File:        f,
		})
	}

	res, err := h.service.Upload(ctx.Request.Context(), files)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(201, res)
}

func (h WatermarkHandler) List(ctx *ginext.Context) {
	ctx.JSON(200, h.service.List(ctx.Request.Context()))
}

func (h WatermarkHandler) Clear(ctx *ginext.Context) {
	h.service.Clear(ctx.Request.Context())
	ctx.Status(204)
}

func (h WatermarkHandler) Remove(ctx *ginext.Context) {
	index, err := parseIndex(ctx.Param("index"))
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	if err := h.service.Remove(ctx.Request.Context(), index); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, h.service.List(ctx.Request.Context()))
}

func (h WatermarkHandler) Select(ctx *ginext.Context) {
	index, err := parseIndex(ctx.Param("index"))
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	if err := h.service.Select(ctx.Request.Context(), index); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, h.service.List(ctx.Request.Context()))
}

func (h WatermarkHandler) Thumbnail(ctx *ginext.Context) {
	index, err := parseIndex(ctx.Param("index"))
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	size := 0
	if s := ctx.Query("size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil {
			ctx.JSON(400, map[string]string{"error": "size must be an integer"})
			return
		}
	}

	res, err := h.service.Thumbnail(ctx.Request.Context(), index, size)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.Data(200, model.PNG, res)
}

func (h WatermarkHandler) GetOptions(ctx *ginext.Context) {
	ctx.JSON(200, h.service.GetOptions(ctx.Request.Context()))
}

func (h WatermarkHandler) SetOptions(ctx *ginext.Context) {
	var opts model.WatermarkOptions
	if err := ctx.ShouldBindJSON(&opts); err != nil {
		ctx.JSON(400, map[string]string{"error": "failed to parse options"})
		return
	}

	if err := h.service.SetOptions(ctx.Request.Context(), opts); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, h.service.GetOptions(ctx.Request.Context()))
}

func (h WatermarkHandler) Preview(ctx *ginext.Context) {
	var req model.PreviewRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(400, map[string]string{"error": "failed to parse query-params"})
		return
	}

	res, err := h.service.Preview(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrNothingToPreview) {
			ctx.Status(204)
			return
		}
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.Header("X-Native-Width", strconv.Itoa(res.NativeWidth))
	ctx.Header("X-Native-Height", strconv.Itoa(res.NativeHeight))
	ctx.Header("X-Display-Width", strconv.Itoa(res.DisplayWidth))
	ctx.Header("X-Display-Height", strconv.Itoa(res.DisplayHeight))
	ctx.Header("X-Display-Scale", strconv.FormatFloat(res.Scale, 'f', -1, 64))
	ctx.Data(200, res.ContentType, res.Data)
}

func (h WatermarkHandler) Export(ctx *ginext.Context) {
	res, err := h.service.Export(ctx.Request.Context())
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Name))
	ctx.Header("X-Export-Id", res.ID)
	ctx.Header("X-Export-Entries", strconv.Itoa(res.Entries))
	ctx.Data(200, model.ZIP, res.Archive)
}

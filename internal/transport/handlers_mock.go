package transport

import (
	"context"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/gin-gonic/gin"
)

type mockWatermarkService struct {
	uploadFn    func(ctx context.Context, files []model.UploadData) ([]model.ImageItem, error)
	listFn      func(ctx context.Context) model.ItemList
	removeFn    func(ctx context.Context, index int) error
	clearFn     func(ctx context.Context)
	selectFn    func(ctx context.Context, index int) error
	thumbnailFn func(ctx context.Context, index, size int) ([]byte, error)
	getOptsFn   func(ctx context.Context) model.WatermarkOptions
	setOptsFn   func(ctx context.Context, opts model.WatermarkOptions) error
	previewFn   func(ctx context.Context, req model.PreviewRequest) (*model.PreviewResult, error)
	exportFn    func(ctx context.Context) (*model.ExportResult, error)
}

func (m *mockWatermarkService) Upload(ctx context.Context, files []model.UploadData) ([]model.ImageItem, error) {
	return m.uploadFn(ctx, files)
}

func (m *mockWatermarkService) List(ctx context.Context) model.ItemList {
	return m.listFn(ctx)
}

func (m *mockWatermarkService) Remove(ctx context.Context, index int) error {
	return m.removeFn(ctx, index)
}

func (m *mockWatermarkService) Clear(ctx context.Context) {
	m.clearFn(ctx)
}

func (m *mockWatermarkService) Select(ctx context.Context, index int) error {
	return m.selectFn(ctx, index)
}

func (m *mockWatermarkService) Thumbnail(ctx context.Context, index, size int) ([]byte, error) {
	return m.thumbnailFn(ctx, index, size)
}

func (m *mockWatermarkService) GetOptions(ctx context.Context) model.WatermarkOptions {
	return m.getOptsFn(ctx)
}

func (m *mockWatermarkService) SetOptions(ctx context.Context, opts model.WatermarkOptions) error {
	return m.setOptsFn(ctx, opts)
}

func (m *mockWatermarkService) Preview(ctx context.Context, req model.PreviewRequest) (*model.PreviewResult, error) {
	return m.previewFn(ctx, req)
}

func (m *mockWatermarkService) Export(ctx context.Context) (*model.ExportResult, error) {
	return m.exportFn(ctx)
}

func init() {
	gin.SetMode(gin.TestMode)
}

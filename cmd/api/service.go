package main

import (
	"context"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

type WatermarkAPIService interface {
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

type EventPublisher interface {
	Publish(ctx context.Context, ev model.ExportEvent) error
	Close() error
}

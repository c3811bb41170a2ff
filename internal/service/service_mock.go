package service

import (
	"context"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

// MOCK PACKAGER

type mockPackager struct {
	packFn func(ctx context.Context, entries []model.ArchiveEntry) ([]byte, error)
}

func (m *mockPackager) Pack(ctx context.Context, entries []model.ArchiveEntry) ([]byte, error) {
	return m.packFn(ctx, entries)
}

// MOCK PUBLISHER

type mockPublisher struct {
	publishFn func(ctx context.Context, ev model.ExportEvent) error
}

func (m *mockPublisher) Publish(ctx context.Context, ev model.ExportEvent) error {
	return m.publishFn(ctx, ev)
}

// MOCK SINK

type mockSink struct {
	putFn func(ctx context.Context, key, ct string, data []byte) error
}

func (m *mockSink) Put(ctx context.Context, key, ct string, data []byte) error {
	return m.putFn(ctx, key, ct, data)
}

func silentPublisher() *mockPublisher {
	return &mockPublisher{publishFn: func(ctx context.Context, ev model.ExportEvent) error { return nil }}
}

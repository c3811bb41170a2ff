// Package service provides business-logic for the app
package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/UnendingLoop/ImageWatermarker/internal/imageproc"
	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/UnendingLoop/ImageWatermarker/internal/mwlogger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type WatermarkService struct {
	ws          Workspace
	packager    Packager
	publisher   EventPublisher
	sink        ArchiveSink // nil - выгрузка отключена
	archiveName string
	keyPrefix   string
	exporting   atomic.Bool
}

func NewWatermarkService(ws Workspace, pkg Packager, pub EventPublisher, sink ArchiveSink, archiveName, keyPrefix string) *WatermarkService {
	return &WatermarkService{
		ws:          ws,
		packager:    pkg,
		publisher:   pub,
		sink:        sink,
		archiveName: archiveName,
		keyPrefix:   keyPrefix,
	}
}

// Workspace - контракт для работы с состоянием сессии
type Workspace interface {
	Add(items ...model.ImageItem)
	Remove(index int) error
	Clear()
	Select(index int) error
	Item(index int) (model.ImageItem, error)
	SelectedItem() (model.ImageItem, bool)
	List() model.ItemList
	Options() model.WatermarkOptions
	SetOptions(opts model.WatermarkOptions) error
	Snapshot() ([]model.ImageItem, model.WatermarkOptions)
}

// Packager - контракт для сборки архива
type Packager interface {
	Pack(ctx context.Context, entries []model.ArchiveEntry) ([]byte, error)
}

// EventPublisher - контракт для работы с очередью
type EventPublisher interface {
	Publish(ctx context.Context, ev model.ExportEvent) error
}

// ArchiveSink - контракт для работы с хранилищем архивов
type ArchiveSink interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// Upload reads every file and appends them to the workspace. Nothing is added if any file is rejected.
func (s *WatermarkService) Upload(ctx context.Context, files []model.UploadData) ([]model.ImageItem, error) {
	logger := mwlogger.LoggerFromContext(ctx)
	if len(files) == 0 {
		return nil, model.ErrEmptySource
	}

	now := time.Now().UTC()
	items := make([]model.ImageItem, 0, len(files))
	for i := range files {
		item, err := readUpload(&files[i])
		if err != nil {
			logger.Debug().Err(err).Str("filename", files[i].Filename).Msg("Upload rejected")
			return nil, err
		}
		item.ID = uuid.New()
		item.AddedAt = now
		items = append(items, item)
	}

	s.ws.Add(items...)
	logger.Info().Int("count", len(items)).Msg("Images added to workspace")
	return items, nil
}

func (s *WatermarkService) List(ctx context.Context) model.ItemList {
	return s.ws.List()
}

func (s *WatermarkService) Remove(ctx context.Context, index int) error {
	return s.ws.Remove(index)
}

func (s *WatermarkService) Clear(ctx context.Context) {
	logger := mwlogger.LoggerFromContext(ctx)
	s.ws.Clear()
	logger.Info().Msg("Workspace cleared")
}

func (s *WatermarkService) Select(ctx context.Context, index int) error {
	return s.ws.Select(index)
}

func (s *WatermarkService) GetOptions(ctx context.Context) model.WatermarkOptions {
	return s.ws.Options()
}

func (s *WatermarkService) SetOptions(ctx context.Context, opts model.WatermarkOptions) error {
	logger := mwlogger.LoggerFromContext(ctx)
	if err := s.ws.SetOptions(opts); err != nil {
		logger.Debug().Err(err).Msg("Options rejected")
		return err
	}
	return nil
}

// Thumbnail returns a square PNG thumbnail of the item at index.
func (s *WatermarkService) Thumbnail(ctx context.Context, index, size int) ([]byte, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	item, err := s.ws.Item(index)
	if err != nil {
		return nil, err
	}

	res, err := imageproc.Thumbnailer(item.Data, normalizeThumbSize(size))
	if err != nil {
		logger.Debug().Err(err).Str("filename", item.Filename).Msg("Failed to build thumbnail")
		return nil, model.ErrUnsupportedFormat
	}
	return res, nil
}

// Preview renders the selected item at native resolution with current options.
// ErrNothingToPreview means there is no selection or the item does not decode.
func (s *WatermarkService) Preview(ctx context.Context, req model.PreviewRequest) (*model.PreviewResult, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	item, ok := s.ws.SelectedItem()
	if !ok {
		return nil, model.ErrNothingToPreview
	}
	opts := s.ws.Options()

	src, err := imageproc.Decode(item.Data)
	if err != nil {
		logger.Debug().Err(err).Str("filename", item.Filename).Msg("Preview decode failed")
		return nil, model.ErrNothingToPreview
	}

	surface, err := imageproc.Render(src, opts)
	if err != nil {
		if errors.Is(err, model.ErrSurfaceUnavailable) {
			return nil, err
		}
		logger.Error().Err(err).Str("filename", item.Filename).Msg("Preview render failed")
		return nil, model.ErrCommon500
	}

	scale, dw, dh := imageproc.DisplaySize(surface.Width(), surface.Height(), req.Width, req.Height)
	var out image.Image = surface.Image()
	if req.Fit {
		out = imageproc.Resizer(out, dw, dh)
	}

	data, ctype, err := imageproc.Encode(out, model.PNG)
	if err != nil {
		logger.Error().Err(err).Msg("Preview encode failed")
		return nil, model.ErrCommon500
	}

	return &model.PreviewResult{
		Data:          data,
		ContentType:   ctype,
		NativeWidth:   surface.Width(),
		NativeHeight:  surface.Height(),
		DisplayWidth:  dw,
		DisplayHeight: dh,
		Scale:         scale,
	}, nil
}

// Export renders every item with the options current at start and packs them into one archive.
// Any failing item fails the whole export. Only one export runs at a time.
func (s *WatermarkService) Export(ctx context.Context) (*model.ExportResult, error) {
	if !s.exporting.CompareAndSwap(false, true) {
		return nil, model.ErrExportInProgress
	}
	defer s.exporting.Store(false)

	logger := mwlogger.LoggerFromContext(ctx)
	// экспорт не прерывается, даже если клиент ушел
	ctx = context.WithoutCancel(ctx)

	items, opts := s.ws.Snapshot()
	if len(items) == 0 {
		return nil, model.ErrNoImages
	}

	started := time.Now()
	entries := make([]model.ArchiveEntry, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, ctype, err := renderItem(item, opts)
			if err != nil {
				return fmt.Errorf("item #%d %q: %w", i, item.Filename, err)
			}
			entries[i] = model.ArchiveEntry{Name: item.Filename, ContentType: ctype, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Int("items", len(items)).Msg("Export failed")
		return nil, model.ErrExportFailed
	}

	archive, err := s.packager.Pack(ctx, entries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to pack archive")
		return nil, model.ErrExportFailed
	}

	res := &model.ExportResult{
		ID:        uuid.NewString(),
		Archive:   archive,
		Name:      s.archiveName,
		Entries:   len(entries),
		CreatedAt: time.Now().UTC(),
	}
	logger.Info().
		Str("export_id", res.ID).
		Int("entries", res.Entries).
		Int("bytes", len(archive)).
		Dur("took", time.Since(started)).
		Msg("Export finished")

	s.notify(ctx, res, opts)
	return res, nil
}

// notify копирует архив в хранилище и шлет событие. Ошибки только логируются
func (s *WatermarkService) notify(ctx context.Context, res *model.ExportResult, opts model.WatermarkOptions) {
	logger := mwlogger.LoggerFromContext(ctx)

	var key string
	if s.sink != nil {
		k := s.keyPrefix + res.ID + ".zip"
		if err := s.sink.Put(ctx, k, model.ZIP, res.Archive); err != nil {
			logger.Warn().Err(err).Str("key", k).Msg("Failed to store archive copy")
		} else {
			key = k
		}
	}

	ev := model.ExportEvent{
		ExportID:   res.ID,
		Entries:    res.Entries,
		Size:       len(res.Archive),
		ArchiveKey: key,
		Options:    opts,
		CreatedAt:  res.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logger.Warn().Err(err).Str("export_id", res.ID).Msg("Failed to publish export event")
	}
}

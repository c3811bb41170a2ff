// Package storage connects the optional archive sink
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/UnendingLoop/ImageWatermarker/internal/config"
	"github.com/UnendingLoop/ImageWatermarker/internal/storage/miniostorage"
	"github.com/wb-go/wbf/retry"
)

// NewArchiveStorage tries to connect to minio up to tries times, waiting delay between tries.
func NewArchiveStorage(ctx context.Context, cfg config.MinioConfig, put retry.Strategy, tries int, delay time.Duration) (*miniostorage.MinioArchiveStorage, error) {
	var lastErr error
	for i := 0; i < tries; i++ {
		log.Println("Connecting to archive-storage...")
		client, err := miniostorage.NewMinioClient(ctx, cfg, put)
		if err == nil {
			log.Println("Successfully connected archive-storage!")
			return client, nil
		}
		lastErr = err
		log.Printf("Failed to init connection to archive-storage: %v\nNext retry in %v...", err, delay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("archive-storage unavailable after %d tries: %w", tries, lastErr)
}

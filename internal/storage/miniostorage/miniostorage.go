// Package miniostorage keeps copies of exported archives in a minio bucket
package miniostorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/UnendingLoop/ImageWatermarker/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
)

// objectPutter - кусок minio.Client, который нужен для выгрузки
type objectPutter interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type MinioArchiveStorage struct {
	bucket   string
	client   objectPutter
	strategy retry.Strategy
}

func NewMinioClient(ctx context.Context, cfg config.MinioConfig, strategy retry.Strategy) (*MinioArchiveStorage, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio endpoint is empty")
	}

	// подключаемся к минио - создаем клиента
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.User, cfg.Pass, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, err
	}

	// создаем бакет если его нет
	if err := ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket %q: %w", cfg.Bucket, err)
	}

	return &MinioArchiveStorage{bucket: cfg.Bucket, client: client, strategy: strategy}, nil
}

// Put uploads data under key, retrying per strategy. At least one attempt is made.
func (s *MinioArchiveStorage) Put(ctx context.Context, key, contentType string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty object passed to storage.Put")
	}

	strategy := s.strategy
	strategy.Attempts = max(1, strategy.Attempts)

	err := retry.DoContext(ctx, strategy, func() error {
		_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

package miniostorage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
)

type mockPutter struct {
	putFn func(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

func (m *mockPutter) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return m.putFn(ctx, bucket, key, r, size, opts)
}

func TestPut(t *testing.T) {
	strategy := retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 2}

	tests := []struct {
		name      string
		failures  int
		data      []byte
		wantCalls int
		wantErr   bool
	}{
		{"OK first try", 0, []byte("zip"), 1, false},
		{"OK after retries", 2, []byte("zip"), 3, false},
		{"all attempts failed", 5, []byte("zip"), 3, true},
		{"empty data", 0, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			putter := &mockPutter{
				putFn: func(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
					calls++
					require.Equal(t, "exports", bucket)
					require.Equal(t, "exports/abc.zip", key)
					require.Equal(t, "application/zip", opts.ContentType)

					body, err := io.ReadAll(r)
					require.NoError(t, err)
					require.Equal(t, tt.data, body)
					require.Equal(t, int64(len(tt.data)), size)

					if calls <= tt.failures {
						return minio.UploadInfo{}, errors.New("minio is down")
					}
					return minio.UploadInfo{Key: key}, nil
				},
			}

			s := &MinioArchiveStorage{bucket: "exports", client: putter, strategy: strategy}
			err := s.Put(context.Background(), "exports/abc.zip", "application/zip", tt.data)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestPut_CanceledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	putter := &mockPutter{
		putFn: func(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			cancel()
			return minio.UploadInfo{}, errors.New("minio is down")
		},
	}

	s := &MinioArchiveStorage{bucket: "b", client: putter, strategy: retry.Strategy{Attempts: 5, Delay: time.Minute}}
	err := s.Put(ctx, "k", "application/zip", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPut_ZeroAttemptsStillTriesOnce(t *testing.T) {
	calls := 0
	putter := &mockPutter{
		putFn: func(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			calls++
			return minio.UploadInfo{}, errors.New("minio is down")
		},
	}

	s := &MinioArchiveStorage{bucket: "b", client: putter, strategy: retry.Strategy{}}
	err := s.Put(context.Background(), "k", "application/zip", []byte("x"))
	require.ErrorContains(t, err, "minio is down")
	require.Equal(t, 1, calls)
}

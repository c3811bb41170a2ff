package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]string

func (m mapSource) GetString(key string) string { return m[key] }

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(mapSource{})
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "release", cfg.GinMode)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	require.Equal(t, "watermarked_images.zip", cfg.ArchiveName)
	require.Equal(t, model.DefaultOptions, cfg.DefaultOptions)
	require.Empty(t, cfg.Minio.Endpoint)
	require.Equal(t, "exports/", cfg.Minio.KeyPrefix)
	require.Empty(t, cfg.Kafka.Broker)
	require.Equal(t, 1, cfg.SideChannel.Attempts)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(mapSource{
		"APP_PORT":              "9090",
		"MAX_UPLOAD_MB":         "8",
		"MINIO_ENDPOINT":        "minio:9000",
		"MINIO_SECURE":          "true",
		"KAFKA_BROKER":          "kafka:9092",
		"KAFKA_TOPIC":           "exports",
		"SIDE_CHANNEL_ATTEMPTS": "3",
		"SIDE_CHANNEL_DELAY":    "250ms",
		"SHUTDOWN_TIMEOUT":      "3s",
		"DEFAULT_WM_TEXT":       " Draft ",
		"DEFAULT_WM_FONT_SIZE":  "72",
		"DEFAULT_WM_COLOR":      "rgba(255, 0, 0, 0.8)",
		"DEFAULT_WM_OPACITY":    "0.25",
		"DEFAULT_WM_POSITION":   "center",
		"DEFAULT_WM_NOISE":      "0.1",
	})
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
	require.Equal(t, "minio:9000", cfg.Minio.Endpoint)
	require.True(t, cfg.Minio.Secure)
	require.Equal(t, KafkaConfig{Broker: "kafka:9092", Topic: "exports"}, cfg.Kafka)
	require.Equal(t, 3, cfg.SideChannel.Attempts)
	require.Equal(t, 250*time.Millisecond, cfg.SideChannel.Delay)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, model.WatermarkOptions{
		Text:       "Draft",
		FontSize:   72,
		Color:      "rgba(255, 0, 0, 0.8)",
		Opacity:    0.25,
		Position:   model.Center,
		NoiseLevel: 0.1,
	}, cfg.DefaultOptions)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  mapSource
		want string
	}{
		{"bad upload size", mapSource{"MAX_UPLOAD_MB": "lots"}, "MAX_UPLOAD_MB"},
		{"zero upload size", mapSource{"MAX_UPLOAD_MB": "0"}, "MAX_UPLOAD_MB"},
		{"bad bool", mapSource{"MINIO_SECURE": "maybe"}, "MINIO_SECURE"},
		{"bad duration", mapSource{"SHUTDOWN_TIMEOUT": "soon"}, "SHUTDOWN_TIMEOUT"},
		{"zero attempts", mapSource{"SIDE_CHANNEL_ATTEMPTS": "0"}, "SIDE_CHANNEL_ATTEMPTS"},
		{"bad position", mapSource{"DEFAULT_WM_POSITION": "left"}, "DEFAULT_WM_"},
		{"bad color", mapSource{"DEFAULT_WM_COLOR": "#12"}, "DEFAULT_WM_"},
		{"several bad keys", mapSource{"APP_PORT": "1", "DEFAULT_WM_OPACITY": "x", "DEFAULT_WM_NOISE": "y"}, "DEFAULT_WM_NOISE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.src)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParse_MalformedIsNotZero(t *testing.T) {
	_, err := parse(mapSource{
		"MAX_UPLOAD_MB":         "ten",
		"SHUTDOWN_TIMEOUT":      "5",
		"SIDE_CHANNEL_ATTEMPTS": "3x",
	})
	require.Error(t, err)
	for _, key := range []string{"MAX_UPLOAD_MB", "SHUTDOWN_TIMEOUT", "SIDE_CHANNEL_ATTEMPTS"} {
		require.ErrorContains(t, err, key)
	}
}

func TestLoad_EnvFileOptional(t *testing.T) {
	t.Setenv("APP_PORT", "7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port)
}

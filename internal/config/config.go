// Package config reads app settings from env and .env into a typed struct
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	wbfconfig "github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/retry"
)

type AppConfig struct {
	Port            string
	GinMode         string
	LogLevel        string
	MaxUploadBytes  int64
	ArchiveName     string
	DefaultOptions  model.WatermarkOptions
	Minio           MinioConfig
	Kafka           KafkaConfig
	SideChannel     retry.Strategy
	ShutdownTimeout time.Duration
}

// MinioConfig - пустой Endpoint отключает выгрузку архивов
type MinioConfig struct {
	Endpoint  string
	User      string
	Pass      string
	Secure    bool
	Bucket    string
	KeyPrefix string
}

// KafkaConfig - пустой Broker отключает события
type KafkaConfig struct {
	Broker string
	Topic  string
}

type source interface {
	GetString(key string) string
}

// Load reads env (and envFile when it exists) into AppConfig.
func Load(envFile string) (*AppConfig, error) {
	cfg := wbfconfig.New()
	cfg.EnableEnv("")
	if _, err := os.Stat(envFile); err == nil {
		if err := cfg.LoadEnvFiles(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	}
	return parse(cfg)
}

func parse(src source) (*AppConfig, error) {
	p := parser{src: src}

	res := &AppConfig{
		Port:        p.str("APP_PORT", "8080"),
		GinMode:     p.str("GIN_MODE", "release"),
		LogLevel:    p.str("LOG_LEVEL", "info"),
		ArchiveName: p.str("ARCHIVE_NAME", "watermarked_images.zip"),
		Minio: MinioConfig{
			Endpoint:  p.str("MINIO_ENDPOINT", ""),
			User:      p.str("MINIO_USER", ""),
			Pass:      p.str("MINIO_PASS", ""),
			Secure:    p.boolean("MINIO_SECURE", false),
			Bucket:    p.str("BUCKET_NAME", "watermarks"),
			KeyPrefix: p.str("ARCHIVE_KEY_PREFIX", "exports/"),
		},
		Kafka: KafkaConfig{
			Broker: p.str("KAFKA_BROKER", ""),
			Topic:  p.str("KAFKA_TOPIC", "watermark-exports"),
		},
		SideChannel: retry.Strategy{
			Attempts: p.integer("SIDE_CHANNEL_ATTEMPTS", 1),
			Delay:    p.duration("SIDE_CHANNEL_DELAY", time.Second),
			Backoff:  2,
		},
		ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	res.MaxUploadBytes = int64(p.integer("MAX_UPLOAD_MB", 32)) << 20

	opts := model.DefaultOptions
	opts.Text = p.str("DEFAULT_WM_TEXT", opts.Text)
	opts.FontSize = p.float("DEFAULT_WM_FONT_SIZE", opts.FontSize)
	opts.Color = p.str("DEFAULT_WM_COLOR", opts.Color)
	opts.Opacity = p.float("DEFAULT_WM_OPACITY", opts.Opacity)
	opts.Position = model.Position(p.str("DEFAULT_WM_POSITION", string(opts.Position)))
	opts.NoiseLevel = p.float("DEFAULT_WM_NOISE", opts.NoiseLevel)
	res.DefaultOptions = opts

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}

	switch {
	case res.MaxUploadBytes <= 0:
		return nil, errors.New("MAX_UPLOAD_MB must be positive")
	case res.SideChannel.Attempts < 1:
		return nil, errors.New("SIDE_CHANNEL_ATTEMPTS must be at least 1")
	case res.ShutdownTimeout <= 0:
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if err := res.DefaultOptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_WM_* settings: %w", err)
	}

	return res, nil
}

// parser читает строки через GetString и парсит сам: типизированные геттеры viper
// на кривом значении молча отдают 0. Ошибки копятся, чтобы показать все кривые ключи разом
type parser struct {
	src  source
	errs []error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.src.GetString(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (p *parser) boolean(key string, def bool) bool {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

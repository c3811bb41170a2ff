// Package main (in api-subfolder) provides launch of the whole application
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnendingLoop/ImageWatermarker/internal/archive"
	"github.com/UnendingLoop/ImageWatermarker/internal/config"
	"github.com/UnendingLoop/ImageWatermarker/internal/events"
	"github.com/UnendingLoop/ImageWatermarker/internal/kafka"
	"github.com/UnendingLoop/ImageWatermarker/internal/mwlogger"
	"github.com/UnendingLoop/ImageWatermarker/internal/service"
	"github.com/UnendingLoop/ImageWatermarker/internal/storage"
	"github.com/UnendingLoop/ImageWatermarker/internal/transport"
	"github.com/UnendingLoop/ImageWatermarker/internal/workspace"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/ считать энвы
	cfg, err := config.Load("./.env")
	if err != nil {
		log.Fatalf("Failed to load config: %s\nExiting app...", err)
	}

	// стартуем логгер
	zlog.InitConsole()
	if err := zlog.SetLevel(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	// готовим заранее слушатель прерываний - контекст для всего приложения
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// побочные каналы опциональны: без них экспорт работает так же
	pub := connectEvents(ctx, cfg)
	sink := connectArchiveStorage(ctx, cfg)

	// состояние сессии и сервис
	ws := workspace.New(cfg.DefaultOptions)
	var svc WatermarkAPIService = service.NewWatermarkService(ws, archive.NewZipPackager(), pub, sink, cfg.ArchiveName, cfg.Minio.KeyPrefix)
	// cоздаем экземпляр хендлера HTTP
	handlers := transport.NewWatermarkHandler(svc, cfg.MaxUploadBytes)
	// сетапим сервер
	engine := ginext.New(cfg.GinMode)

	engine.GET("/ping", handlers.SimplePinger)
	engine.POST("/images", handlers.Upload)                    // добавить файлы
	engine.GET("/images", handlers.List)                       // список + выбранный индекс
	engine.DELETE("/images", handlers.Clear)                   // очистить все
	engine.DELETE("/images/:index", handlers.Remove)           // удалить один
	engine.PUT("/images/selected/:index", handlers.Select)     // выбрать для превью
	engine.GET("/images/:index/thumbnail", handlers.Thumbnail) // миниатюра
	engine.GET("/options", handlers.GetOptions)                // текущие настройки
	engine.PUT("/options", handlers.SetOptions)                // заменить настройки
	engine.GET("/preview", handlers.Preview)                   // превью выбранной картинки
	engine.POST("/export", handlers.Export)                    // скачать архив

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mwlogger.NewMWLogger(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server launch
	go func() {
		log.Printf("Server running on http://localhost%s\n", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil {
			switch {
			case errors.Is(err, http.ErrServerClosed):
				log.Println("Server gracefully stopping...")
			default:
				log.Printf("Server stopped: %v", err)
				stop()
			}
		}
	}()

	// ждем отмены контекста для запуска грейсфул остановки
	<-ctx.Done()

	shutdown(srv, pub, cfg.ShutdownTimeout)
	log.Println("Exiting app...")
}

func connectEvents(ctx context.Context, cfg *config.AppConfig) EventPublisher {
	broker := cfg.Kafka.Broker
	if broker == "" {
		log.Println("KAFKA_BROKER is empty, export events are disabled")
		return events.NoopPublisher{}
	}

	// ждем пока кафка раздуплится
	if err := kafka.WaitKafkaReady(ctx, broker, 5, 5*time.Second); err != nil {
		log.Printf("Export events are disabled: %v", err)
		return events.NoopPublisher{}
	}
	if err := kafka.EnsureTopics(ctx, broker, 5, 5*time.Second, cfg.Kafka.Topic); err != nil {
		log.Printf("Export events are disabled: %v", err)
		return events.NoopPublisher{}
	}
	return events.NewKafkaPublisher([]string{broker}, cfg.Kafka.Topic, cfg.SideChannel)
}

func connectArchiveStorage(ctx context.Context, cfg *config.AppConfig) service.ArchiveSink {
	if cfg.Minio.Endpoint == "" {
		log.Println("MINIO_ENDPOINT is empty, archive copies are disabled")
		return nil
	}

	strg, err := storage.NewArchiveStorage(ctx, cfg.Minio, cfg.SideChannel, 3, 5*time.Second)
	if err != nil {
		log.Printf("Archive copies are disabled: %v", err)
		return nil
	}
	return strg
}

func shutdown(srv *http.Server, pub EventPublisher, timeout time.Duration) {
	log.Println("Interrupt received!!! Starting shutdown sequence...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// даем дописаться текущим ответам (в том числе экспорту)
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Failed to shutdown HTTP-server correctly:", err)
	}
	log.Println("HTTP-server stopped.")

	// Closing Kafka connection:
	if err := pub.Close(); err != nil {
		log.Println("Failed to close Kafka-producer:", err)
	}
	log.Println("Kafka-producer connection closed.")
}

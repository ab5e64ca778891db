package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"focus-cam/config"
	"focus-cam/internal/container"
	"focus-cam/internal/domain/port"
	"focus-cam/internal/infrastructure/bridge"
	"focus-cam/internal/infrastructure/camera"
	"focus-cam/internal/infrastructure/storage"
	"focus-cam/internal/infrastructure/upload"
	"focus-cam/internal/infrastructure/vision"
)

// loadConfig учитывает флаг --config и загружает настройки.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("FOCUSCAM_CONFIG", path); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// appBundle собранное приложение и функция освобождения ресурсов.
type appBundle struct {
	cfg       *config.Config
	container *container.Container
	close     func() error
}

func buildApp(cfg *config.Config) (*appBundle, error) {
	history, closeHistory, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}

	c := container.New(container.Deps{
		Users:     storage.NewMemoryUserRepository(),
		History:   history,
		Source:    buildSource(cfg),
		Estimator: buildEstimator(cfg),
		Codec:     vision.JPEGCodec{Quality: cfg.JPEGQuality},
		Uploader:  buildUploader(cfg),
		Outbox:    bridge.NewOutbox(cfg.OutboxSize),
		Redirect:  bridge.NewRedirector(cfg.RedirectBase),
	})
	return &appBundle{cfg: cfg, container: c, close: closeHistory}, nil
}

func buildEstimator(cfg *config.Config) port.QualityEstimator {
	th := vision.Thresholds(cfg.Thresholds)
	if cfg.Estimator == "gocv" {
		return vision.NewGoCVEstimator(cfg.FrameWidth, cfg.FrameHeight, th)
	}
	return vision.NewEstimator(cfg.FrameWidth, cfg.FrameHeight, th)
}

func buildSource(cfg *config.Config) port.FrameSource {
	if cfg.StillImage != "" {
		return camera.NewStillFileSource(cfg.StillImage)
	}
	return camera.NewVideoCaptureSource(cfg.CameraDevice)
}

func buildUploader(cfg *config.Config) port.Uploader {
	if cfg.UploadURL == "" {
		return nil
	}
	return upload.NewHTTPUploader(cfg.UploadURL, cfg.UploadField, cfg.UploadTimeout)
}

func openHistory(cfg *config.Config) (port.CaptureRepository, func() error, error) {
	if cfg.DBPath == config.HistoryMemory {
		return storage.NewMemoryCaptureRepository(), func() error { return nil }, nil
	}
	repo, err := storage.OpenSQLiteCaptureRepository(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	return repo, repo.Close, nil
}

// shutdownTimeout сколько ждём завершения HTTP-запросов при остановке.
const shutdownTimeout = 5 * time.Second

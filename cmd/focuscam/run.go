package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"focus-cam/internal/api/rest"
)

// NewRunCmd запускает экран съёмки и REST-интерфейс.
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the capture loop and the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := buildApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.close(); err != nil {
					log.Printf("Close error: %v", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *appBundle) error {
	srv := &http.Server{
		Addr:    a.cfg.HTTPAddr,
		Handler: rest.NewRouter(a.container),
	}

	g, ctx := errgroup.WithContext(ctx)

	// Без камеры API продолжает работать и показывает ошибку в /status.
	g.Go(func() error {
		if err := a.container.CaptureService.Run(ctx, a.cfg.TickInterval); err != nil {
			log.Printf("Capture loop stopped: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Printf("HTTP API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/config"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := newApp(ctx, cfg, time.Now)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to start")
	}
	defer func() {
		if err := application.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to release resources")
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      application.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logging.Info().
			Str("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Driver).
			Str("timezone", cfg.Analytics.Timezone).
			Msg("Just For Today API running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("stop signal received, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("forced shutdown")
		return
	}

	logging.Info().Msg("server stopped gracefully")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/cmd"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := newLogger(configs)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer, err := app.NewKafkaConsumer()
	if err != nil {
		log.Fatalf("Failed to create kafka consumer: %v", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", "error", err)
		}
	}()
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Kafka consumer stopped", "error", err)
		}
	}()

	e, err := app.NewRouter()
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort, logger)
}

func newLogger(configs cmd.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: configs.LogLevel}
	if configs.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// startWebServer serves until ctx is cancelled and then drains in-flight requests.
func startWebServer(ctx context.Context, e *echo.Echo, port int, logger *slog.Logger) {
	if logger.Enabled(ctx, slog.LevelDebug) {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%d", port))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
		return
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}

package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/reignagency/reign/internal/config"
	"github.com/reignagency/reign/internal/queue"
	"github.com/reignagency/reign/internal/telemetry"
)

func main() {
	var mode = flag.String("mode", "worker", "Mode to run: 'worker', 'scheduler'")
	flag.Parse()

	level := slog.LevelInfo
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(telemetry.NewTraceHandler(jsonHandler))

	switch *mode {
	case "worker":
		runWorker(logger)
	case "scheduler":
		runScheduler(logger)
	default:
		logger.Error("Invalid mode. Use 'worker' or 'scheduler'", slog.String("mode", *mode))
		os.Exit(1)
	}
}

func runWorker(logger *slog.Logger) {
	worker, err := queue.NewWorker(logger)
	if err != nil {
		logger.Error("Failed to create worker", slog.String("err", err.Error()))
		os.Exit(1)
	}

	go func() {
		if err := worker.Start(); err != nil {
			logger.Error("Worker error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	worker.Stop()
	logger.Info("Worker exited properly")
}

func runScheduler(logger *slog.Logger) {
	scheduler, err := queue.NewScheduler(logger)
	if err != nil {
		logger.Error("Failed to create scheduler", slog.String("err", err.Error()))
		os.Exit(1)
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			logger.Error("Scheduler error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()
	logger.Info("Scheduler exited properly")
}

package queue

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/reignagency/reign/internal/config"
	"github.com/reignagency/reign/internal/database"
	"github.com/reignagency/reign/internal/email"
	"github.com/reignagency/reign/internal/events"
	"github.com/reignagency/reign/internal/filestorage"
	"github.com/reignagency/reign/internal/instagram"
	"github.com/reignagency/reign/internal/queue/handlers"
	"github.com/reignagency/reign/internal/usecase"
)

// Worker is the task-processing application: an asynq server with all
// the handler dependencies wired in.
type Worker struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
	repo        usecase.Repository
	logger      *slog.Logger
}

func NewWorker(logger *slog.Logger) (*Worker, error) {
	repo, err := database.New(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	mp := email.NewEmailProvider(
		os.Getenv(config.ENV_KEY_SMTP_HOST),
		os.Getenv(config.ENV_KEY_SMTP_USERNAME),
		os.Getenv(config.ENV_KEY_SMTP_PASSWORD),
		os.Getenv(config.ENV_KEY_SMTP_PORT),
		logger,
	)

	fsp := filestorage.NewMinIOStorage(
		os.Getenv(config.ENV_KEY_MINIO_BUCKET),
		os.Getenv(config.ENV_KEY_MINIO_PUBLIC_PATH),
		os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
		os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
		os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
	)

	ig := instagram.NewApifyProvider(
		os.Getenv(config.ENV_KEY_APIFY_TOKEN),
		os.Getenv(config.ENV_KEY_APIFY_ACTOR_ID),
	)

	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)
	redisPassword := os.Getenv(config.ENV_KEY_REDIS_PASSWORD)

	eb := events.NewRedisBroker(redisAddr, redisPassword, logger)

	// Workers never enqueue, so no task client.
	uc := usecase.New(repo, fsp, mp, ig, eb, nil, logger)

	concurrency := 10
	if wc := os.Getenv(config.ENV_KEY_WORKER_CONCURRENCY); wc != "" {
		if n, err := strconv.Atoi(wc); err == nil && n > 0 {
			concurrency = n
		}
	}

	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	h := handlers.NewHandlers(uc, logger)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingNotify, h.HandleBookingNotify)
	mux.HandleFunc(TypeInstagramSync, h.HandleInstagramSync)
	mux.HandleFunc(TypeInstagramSyncAll, h.HandleInstagramSyncAll)

	return &Worker{
		asynqServer: asynqServer,
		mux:         mux,
		repo:        repo,
		logger:      logger,
	}, nil
}

func (w *Worker) Start() error {
	w.logger.Info("worker_start")
	return w.asynqServer.Start(w.mux)
}

func (w *Worker) Stop() {
	w.logger.Info("worker_stop")
	w.asynqServer.Shutdown()

	if err := w.repo.Close(); err != nil {
		w.logger.Error("worker_close_db", slog.String("err", err.Error()))
	}
}

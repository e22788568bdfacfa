package queue

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/reignagency/reign/internal/config"
)

// Scheduler registers the recurring tasks. Run exactly one scheduler
// process per deployment.
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
		},
		&asynq.SchedulerOpts{},
	)

	// Instagram scrapes go stale slowly, every six hours is plenty.
	entryID, err := scheduler.Register(
		"@every 6h",
		asynq.NewTask(TypeInstagramSyncAll, nil),
		asynq.Queue("low"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", TypeInstagramSyncAll, err)
	}
	logger.Info("scheduler_registered",
		slog.String("task", TypeInstagramSyncAll),
		slog.String("entry_id", entryID))

	return &Scheduler{scheduler: scheduler, logger: logger}, nil
}

func (s *Scheduler) Start() error {
	s.logger.Info("scheduler_start")
	return s.scheduler.Run()
}

func (s *Scheduler) Stop() {
	s.logger.Info("scheduler_stop")
	s.scheduler.Shutdown()
}

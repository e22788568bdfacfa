package handlers

import (
	"log/slog"

	"github.com/reignagency/reign/internal/usecase"
)

// Handlers contains all queue task handlers.
type Handlers struct {
	usecase usecase.Usecase
	logger  *slog.Logger
}

func NewHandlers(uc usecase.Usecase, logger *slog.Logger) *Handlers {
	return &Handlers{
		usecase: uc,
		logger:  logger,
	}
}

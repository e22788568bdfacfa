package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type instagramSyncPayload struct {
	ModelID string `json:"model_id"`
}

// HandleInstagramSync re-scrapes one model's profile.
func (h *Handlers) HandleInstagramSync(ctx context.Context, task *asynq.Task) error {
	var payload instagramSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.logger.ErrorContext(ctx, "task_payload_decode",
			slog.String("task", task.Type()), slog.String("err", err.Error()))
		return err
	}

	modelID, err := uuid.Parse(payload.ModelID)
	if err != nil {
		h.logger.ErrorContext(ctx, "task_payload_invalid_id",
			slog.String("task", task.Type()), slog.String("err", err.Error()))
		return err
	}

	if err := h.usecase.SyncModelInstagram(ctx, modelID); err != nil {
		h.logger.ErrorContext(ctx, "instagram_sync_failed",
			slog.String("model_id", modelID.String()), slog.String("err", err.Error()))
		return err
	}

	h.logger.InfoContext(ctx, "instagram_sync_done",
		slog.String("model_id", modelID.String()))
	return nil
}

// HandleInstagramSyncAll walks every model with an instagram username.
// Scheduled periodically, no payload.
func (h *Handlers) HandleInstagramSyncAll(ctx context.Context, task *asynq.Task) error {
	if err := h.usecase.SyncAllInstagram(ctx); err != nil {
		h.logger.ErrorContext(ctx, "instagram_sync_all_failed",
			slog.String("err", err.Error()))
		return err
	}

	h.logger.InfoContext(ctx, "instagram_sync_all_done")
	return nil
}

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type bookingNotifyPayload struct {
	BookingID string `json:"booking_id"`
}

// HandleBookingNotify sends the booking notification email. A thin
// wrapper, the business logic lives in the usecase.
func (h *Handlers) HandleBookingNotify(ctx context.Context, task *asynq.Task) error {
	var payload bookingNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.logger.ErrorContext(ctx, "task_payload_decode",
			slog.String("task", task.Type()), slog.String("err", err.Error()))
		return err
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		h.logger.ErrorContext(ctx, "task_payload_invalid_id",
			slog.String("task", task.Type()), slog.String("err", err.Error()))
		return err
	}

	if err := h.usecase.SendBookingEmail(ctx, bookingID); err != nil {
		h.logger.ErrorContext(ctx, "booking_notify_failed",
			slog.String("booking_id", bookingID.String()), slog.String("err", err.Error()))
		return err
	}

	h.logger.InfoContext(ctx, "booking_notify_sent",
		slog.String("booking_id", bookingID.String()))
	return nil
}

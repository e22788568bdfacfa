package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names shared between the client and the worker mux.
const (
	TypeBookingNotify    = "booking:notify"
	TypeInstagramSync    = "instagram:sync"
	TypeInstagramSyncAll = "instagram:sync_all"
)

type BookingNotifyPayload struct {
	BookingID string `json:"booking_id"`
}

type InstagramSyncPayload struct {
	ModelID string `json:"model_id"`
}

// Client wraps asynq.Client for enqueuing tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string, redisPassword string) *Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
	})

	return &Client{
		client: client,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueBookingNotify schedules the booking notification email. Booking
// mail is time-sensitive, so it rides the critical queue.
func (c *Client) EnqueueBookingNotify(ctx context.Context, bookingID uuid.UUID) error {
	payload, err := json.Marshal(BookingNotifyPayload{BookingID: bookingID.String()})
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingNotify, payload)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue("critical")); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// EnqueueInstagramSync schedules a profile re-scrape for one model.
func (c *Client) EnqueueInstagramSync(ctx context.Context, modelID uuid.UUID) error {
	payload, err := json.Marshal(InstagramSyncPayload{ModelID: modelID.String()})
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeInstagramSync, payload)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue("low")); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/reignagency/reign/internal/usecase"
)

const bookingChannel = "bookings:events"

// RedisBroker fans booking events out over a redis pub/sub channel so
// every API replica can push them to its websocket clients.
type RedisBroker struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisBroker(addr, password string, logger *slog.Logger) *RedisBroker {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisBroker{client: client, logger: logger}
}

func (b *RedisBroker) PublishBookingEvent(ctx context.Context, ev usecase.BookingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, bookingChannel, payload).Err()
}

// SubscribeBookingEvents returns a channel of decoded events. The returned
// cancel func closes the subscription and, eventually, the channel.
func (b *RedisBroker) SubscribeBookingEvents(ctx context.Context) (<-chan usecase.BookingEvent, func(), error) {
	sub := b.client.Subscribe(ctx, bookingChannel)

	// Force the subscribe round-trip so a dead redis fails here, not later.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan usecase.BookingEvent)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev usecase.BookingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("event_decode", slog.String("err", err.Error()))
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			b.logger.Warn("event_unsubscribe", slog.String("err", err.Error()))
		}
	}
	return out, cancel, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

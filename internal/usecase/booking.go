package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID           uuid.UUID
	BrandName    string
	ContactName  string
	ShootDate    time.Time
	BookingHour  string
	WANumber     string
	Email        string
	DesiredModel string
	Usages       string
	Status       string
	UserID       uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User *User
}

// BookingEvent is the payload published to the admin dashboard feed.
type BookingEvent struct {
	ID          uuid.UUID `json:"id"`
	BrandName   string    `json:"brand_name"`
	ContactName string    `json:"contact_name"`
	ShootDate   time.Time `json:"shoot_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListBookingsOption struct {
	Skip   int
	Limit  int
	Status string
}

func (u Usecase) ListBookings(ctx context.Context, opt ListBookingsOption) ([]Booking, int, error) {
	return u.repo.ListBookings(ctx, opt)
}

func (u Usecase) CreateBooking(ctx context.Context, b Booking) (Booking, error) {
	if b.BrandName == "" {
		return Booking{}, fmt.Errorf("%w: brand_name is required", ErrInvalidArgument)
	}
	if b.Status == "" {
		b.Status = "ongoing"
	}

	created, err := u.repo.CreateBooking(ctx, b)
	if err != nil {
		return Booking{}, err
	}

	// Notification delivery happens off the request path; a full queue or a
	// dead broker must not fail the booking itself.
	if err := u.tasks.EnqueueBookingNotify(ctx, created.ID); err != nil {
		u.logger.ErrorContext(ctx, "booking_enqueue_notify",
			slog.String("booking_id", created.ID.String()),
			slog.String("err", err.Error()))
	}

	if err := u.events.PublishBookingEvent(ctx, BookingEvent{
		ID:          created.ID,
		BrandName:   created.BrandName,
		ContactName: created.ContactName,
		ShootDate:   created.ShootDate,
		Status:      created.Status,
		CreatedAt:   created.CreatedAt,
	}); err != nil {
		u.logger.ErrorContext(ctx, "booking_publish_event",
			slog.String("booking_id", created.ID.String()),
			slog.String("err", err.Error()))
	}

	return created, nil
}

func (u Usecase) UpdateBooking(ctx context.Context, id uuid.UUID, b Booking) (Booking, error) {
	existing, err := u.repo.GetBookingByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	b.ID = existing.ID
	b.Status = existing.Status
	return u.repo.UpdateBooking(ctx, b)
}

func (u Usecase) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (Booking, error) {
	if status == "" {
		return Booking{}, fmt.Errorf("%w: status is required", ErrInvalidArgument)
	}
	b, err := u.repo.GetBookingByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	b.Status = status
	return u.repo.UpdateBooking(ctx, b)
}

func (u Usecase) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	if _, err := u.repo.GetBookingByID(ctx, id); err != nil {
		return err
	}
	return u.repo.DeleteBooking(ctx, id)
}

func (u Usecase) SubscribeBookingEvents(ctx context.Context) (<-chan BookingEvent, func(), error) {
	return u.events.SubscribeBookingEvents(ctx)
}

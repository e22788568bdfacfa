package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_DefaultsAndSideEffects(t *testing.T) {
	uc, env := newTestUsecase(t)

	b, err := uc.CreateBooking(context.Background(), Booking{
		BrandName:   "Acme",
		ContactName: "Wile E.",
		ShootDate:   time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "ongoing", b.Status)
	require.Len(t, env.tasks.bookingNotifies, 1)
	assert.Equal(t, b.ID, env.tasks.bookingNotifies[0])
	require.Len(t, env.broker.published, 1)
	assert.Equal(t, b.ID, env.broker.published[0].ID)
}

func TestCreateBooking_RequiresBrandName(t *testing.T) {
	uc, env := newTestUsecase(t)

	_, err := uc.CreateBooking(context.Background(), Booking{ContactName: "Wile E."})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, env.repo.bookings)
	assert.Empty(t, env.tasks.bookingNotifies)
}

func TestCreateBooking_SucceedsWhenSideEffectsFail(t *testing.T) {
	uc, env := newTestUsecase(t)
	env.tasks.err = errBoom
	env.broker.err = errBoom

	b, err := uc.CreateBooking(context.Background(), Booking{
		BrandName:   "Acme",
		ContactName: "Wile E.",
		ShootDate:   time.Now(),
	})
	require.NoError(t, err, "queue and broker failures must not fail the booking")
	assert.Contains(t, env.repo.bookings, b.ID)
}

func TestUpdateBooking_PreservesStatus(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	b, err := uc.CreateBooking(ctx, Booking{
		BrandName:   "Acme",
		ContactName: "Wile E.",
		ShootDate:   time.Now(),
	})
	require.NoError(t, err)

	_, err = uc.UpdateBookingStatus(ctx, b.ID, "confirmed")
	require.NoError(t, err)

	updated, err := uc.UpdateBooking(ctx, b.ID, Booking{
		BrandName:   "Acme Corp",
		ContactName: "Wile E.",
		ShootDate:   b.ShootDate,
		Status:      "cancelled", // must be ignored on plain updates
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", updated.BrandName)
	assert.Equal(t, "confirmed", updated.Status)
}

func TestUpdateBookingStatus_RequiresStatus(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()

	b, err := uc.CreateBooking(ctx, Booking{
		BrandName:   "Acme",
		ContactName: "Wile E.",
		ShootDate:   time.Now(),
	})
	require.NoError(t, err)

	_, err = uc.UpdateBookingStatus(ctx, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "ongoing", env.repo.bookings[b.ID].Status)
}

func TestSendBookingEmail(t *testing.T) {
	t.Setenv("BOOKING_MAILBOX", "bookings@reignagency.com")
	uc, env := newTestUsecase(t)
	ctx := context.Background()

	b, err := uc.CreateBooking(ctx, Booking{
		BrandName:   "Acme",
		ContactName: "Wile E.",
		ShootDate:   time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, uc.SendBookingEmail(ctx, b.ID))
	require.Len(t, env.mailer.sent, 1)

	mail := env.mailer.sent[0]
	assert.Equal(t, []string{"bookings@reignagency.com"}, mail.To)
	assert.Contains(t, mail.Body, "Acme")
}

func TestSendBookingEmail_MailboxUnset(t *testing.T) {
	t.Setenv("BOOKING_MAILBOX", "")
	uc, env := newTestUsecase(t)
	ctx := context.Background()

	b, err := uc.CreateBooking(ctx, Booking{
		BrandName:   "Acme",
		ContactName: "Wile E.",
		ShootDate:   time.Now(),
	})
	require.NoError(t, err)

	err = uc.SendBookingEmail(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, env.mailer.sent)
}

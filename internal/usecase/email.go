package usecase

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/reignagency/reign/internal/config"
)

type Email struct {
	To          []string
	From        string
	CC          []string
	BCC         []string
	Subject     string
	Body        string
	Attachments []EmailAttachment
}

type EmailAttachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// SendBookingEmail notifies the agency mailbox about a new or updated
// booking. Runs from the worker, not the request path.
func (u Usecase) SendBookingEmail(ctx context.Context, id uuid.UUID) error {
	b, err := u.repo.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}

	body, err := buildBookingEmailBody(b)
	if err != nil {
		return err
	}

	recipient := os.Getenv(config.ENV_KEY_BOOKING_MAILBOX)
	if recipient == "" {
		return fmt.Errorf("%w: booking mailbox is not configured", ErrInvalidArgument)
	}

	return u.mailer.SendEmail(ctx, Email{
		To:      []string{recipient},
		From:    "no-reply@reignagency.com",
		Subject: "New Booking Notification",
		Body:    body,
	})
}

//go:embed templates/*
var templates embed.FS

type bookingEmailData struct {
	Title       string
	CurrentYear string

	BrandName    string
	ContactName  string
	ShootDate    string
	BookingHour  string
	WANumber     string
	Email        string
	DesiredModel string
	Usages       string
	Status       string

	BookingID string
	QRCodeURL string
}

func buildBookingEmailBody(b Booking) (string, error) {
	tmpl, err := template.
		New("base.html").
		Funcs(template.FuncMap{
			"safeURL": func(s string) template.URL {
				return template.URL(s)
			},
		}).
		ParseFS(
			templates,
			"templates/base.html",
			"templates/booking.html",
		)
	if err != nil {
		return "", err
	}

	png, _ := qrcode.Encode(b.ID.String(), qrcode.Low, 128)
	qrCodeURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	data := bookingEmailData{
		Title:        "New Booking Notification",
		CurrentYear:  time.Now().Format("2006"),
		BrandName:    b.BrandName,
		ContactName:  b.ContactName,
		ShootDate:    b.ShootDate.Format("02 Jan 2006"),
		BookingHour:  b.BookingHour,
		WANumber:     b.WANumber,
		Email:        b.Email,
		DesiredModel: b.DesiredModel,
		Usages:       b.Usages,
		Status:       b.Status,
		BookingID:    b.ID.String(),
		QRCodeURL:    qrCodeURL,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

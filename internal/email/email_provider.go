package email

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/reignagency/reign/internal/usecase"
)

func NewEmailProvider(smtpHost, smtpUser, smtpPassword, smtpPort string, logger *slog.Logger) *EmailProvider {
	if smtpHost == "" || smtpUser == "" || smtpPassword == "" || smtpPort == "" {
		panic("email: SMTP host, user, and password must be provided")
	}

	smtpPortInt, err := strconv.Atoi(smtpPort)
	if err != nil {
		panic("email: invalid SMTP port: " + err.Error())
	}

	client, err := mail.NewClient(
		smtpHost,
		mail.WithPort(smtpPortInt),
		mail.WithUsername(smtpUser),
		mail.WithPassword(smtpPassword),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
	)
	if err != nil {
		panic("email: failed to create SMTP client: " + err.Error())
	}

	provider := &EmailProvider{
		c:      make(chan *mail.Msg, 100),
		client: client,
		logger: logger,
	}

	// Deliver off the caller's goroutine.
	go provider.sendEmailWorker()

	return provider
}

type EmailProvider struct {
	c      chan *mail.Msg
	client *mail.Client
	logger *slog.Logger
}

func (e *EmailProvider) SendEmail(ctx context.Context, email usecase.Email) error {
	msg := mail.NewMsg()
	msg.From(email.From)
	msg.To(email.To...)
	msg.Cc(email.CC...)
	msg.Bcc(email.BCC...)
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.Body)
	for _, file := range email.Attachments {
		if err := msg.AttachReader(
			file.Name,
			bytes.NewReader(file.Content),
			mail.WithFileContentType(mail.ContentType(file.ContentType)),
		); err != nil {
			e.logger.WarnContext(ctx, "email_attach_file",
				slog.String("name", file.Name), slog.String("err", err.Error()))
		}
	}

	e.c <- msg

	return nil
}

func (e *EmailProvider) sendEmailWorker() {
	for msg := range e.c {
		if err := e.client.DialAndSend(msg); err != nil {
			e.logger.Error("email_send", slog.String("err", err.Error()))
		}
	}
}

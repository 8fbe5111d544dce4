package services

import (
	"context"
	"fmt"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/sendgrid"
)

// Mailer notifies a user about account events. Fire-and-forget from the
// caller's perspective: failures are reported but never block the operation
// that triggered the notification.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, newPassword string) error
}

type sendgridMailer struct {
	log    *logger.Logger
	client sendgrid.Client
}

func NewSendgridMailer(baseLog *logger.Logger, client sendgrid.Client) Mailer {
	return &sendgridMailer{log: baseLog.With("service", "MailerService"), client: client}
}

func (m *sendgridMailer) SendPasswordReset(ctx context.Context, toEmail, newPassword string) error {
	_, err := m.client.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: toEmail}},
		Subject: "Your LRMS password has been reset",
		Text: fmt.Sprintf(
			"Your password has been reset by an administrator.\n\nNew password: %s\n\nPlease log in and change it immediately.",
			newPassword,
		),
	})
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	m.log.Info("Password reset email sent", "to", toEmail)
	return nil
}

// consoleMailer is the local-dev fallback when no SendGrid key is
// configured: it just logs the notification.
type consoleMailer struct {
	log *logger.Logger
}

func NewConsoleMailer(baseLog *logger.Logger) Mailer {
	return &consoleMailer{log: baseLog.With("service", "ConsoleMailer")}
}

func (m *consoleMailer) SendPasswordReset(_ context.Context, toEmail, newPassword string) error {
	m.log.Info("Password reset notification (console fallback)", "to", toEmail, "new_password", newPassword)
	return nil
}

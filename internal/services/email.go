package services

import (
	"context"
	"fmt"
	"log/slog"

	"weddingrsvp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	notifyTo string
	logger   *slog.Logger
}

// NewEmailService returns a ResponseNotifier that mails every new response to notifyTo
// using the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, notifyTo string, logger *slog.Logger) domain.ResponseNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, notifyTo: notifyTo, logger: logger}
}

// ResponseReceived sends the "response_received" email.
func (s *emailService) ResponseReceived(ctx context.Context, data *domain.ResponseReceivedEmailData) error {
	if data == nil {
		return fmt.Errorf("response received email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("response_received", data)
	if err != nil {
		return fmt.Errorf("failed to render response_received template: %w", err)
	}
	if err := s.mailer.Send(ctx, s.notifyTo, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send response received email: %w", err)
	}
	s.logger.InfoContext(ctx, "response notification sent", "to", s.notifyTo, "guest", data.FullName)
	return nil
}

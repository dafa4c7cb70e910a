package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// EmailService sends transactional emails to form owners
type EmailService interface {
	SendResponseNotification(ctx context.Context, toEmail, formTitle, responseID string) error
}

// NoopEmailService is used when no email provider is configured
type NoopEmailService struct {
	log logrus.FieldLogger
}

// NewNoopEmailService creates the fallback email service
func NewNoopEmailService(log logrus.FieldLogger) *NoopEmailService {
	return &NoopEmailService{log: log}
}

func (s *NoopEmailService) SendResponseNotification(ctx context.Context, toEmail, formTitle, responseID string) error {
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"to": toEmail, "form": formTitle}).Debug("noop response notification")
	}
	return nil
}

// ResendEmailService sends emails via the Resend REST API
type ResendEmailService struct {
	from   string
	client *resend.Client
}

// NewResendEmailService creates a Resend-backed email service
func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendResponseNotification(ctx context.Context, toEmail, formTitle, responseID string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("New response to %q", formTitle),
		Text:    fmt.Sprintf("Your form %q received a new response (%s).", formTitle, responseID),
		Html:    fmt.Sprintf("<p>Your form <strong>%s</strong> received a new response.</p><p>Response id: %s</p>", formTitle, responseID),
	}

	options := &resend.SendEmailOptions{IdempotencyKey: "response/" + responseID}
	_, err := s.client.Emails.SendWithOptions(ctx, params, options)
	return err
}

package notification

import (
	"context"
	"fmt"

	"healthapp-backend/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// EmailSender delivers a single message. Implementations can be swapped
// (SendGrid, SMTP, logging stub) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// Message represents an email to be delivered.
type Message struct {
	To           string
	ToName       string
	Subject      string
	Body         string
	TemplateType string
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *logrus.Logger
}

// NewSendGridSender creates a SendGrid sender, or nil when no API key is set.
func NewSendGridSender(cfg config.MailConfig, log *logrus.Logger) *SendGridSender {
	if cfg.SendGridAPIKey == "" {
		return nil
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "Health App"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.FromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if s.client == nil {
		return fmt.Errorf("notification: sendgrid client not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notification: sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification: sendgrid returned status %d", resp.StatusCode)
	}

	s.log.Infof("Email sent to %s (%s)", msg.To, msg.TemplateType)
	return nil
}

// LogSender logs messages instead of sending them. Used in dev and tests,
// and as the fallback when SendGrid is not configured.
type LogSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Infof("Would send email to %s: %s (%s)", msg.To, msg.Subject, msg.TemplateType)
	return nil
}

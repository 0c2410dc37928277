package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"evorgs/internal/config"
)

// Mailer delivers a single email. Implementations must not retry;
// the caller treats delivery as fire-and-forget.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.FromName, m.cfg.FromAddress, to, subject, body)

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	return smtp.SendMail(addr, auth, m.cfg.FromAddress, []string{to}, []byte(msg))
}

// DevMailer logs instead of sending. Used in tests and local runs.
type DevMailer struct {
	logger *zap.Logger
}

func NewDevMailer(logger *zap.Logger) *DevMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DevMailer{logger: logger}
}

func (m *DevMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("dev email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

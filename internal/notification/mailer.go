package notification

import (
	"context"
	"crypto/tls"
	"fmt"

	"go-teamdesk/internal/shared/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers an e-mail copy of a notification.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer returns a no-op mailer when SMTP is not configured.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if !cfg.Enabled() {
		return noopMailer{}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &smtpMailer{dialer: d, from: cfg.From, logger: logger.Named("notification.mailer")}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	m.logger.Debug("notification mail sent", zap.String("to", to))
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string) error { return nil }

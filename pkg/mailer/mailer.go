// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	"print-shop/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New returns an SMTP mailer, or a mailer that only logs when SMTP_HOST is empty.
func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	log = log.With(zap.String("component", "mailer"))
	if config.Host == "" {
		return &logMailer{log: log}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
		log:    log,
	}
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail has no context support, so the dial runs aside and ctx bounds the wait
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
		m.log.Info("Mail sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail to %s: %w", to, ctx.Err())
	}
}

type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.log.Debug("SMTP disabled, mail skipped", zap.String("to", to), zap.String("subject", subject))
	return nil
}

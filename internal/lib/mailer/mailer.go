// Package mailer delivers the account e-mails (verification, password reset).
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/config"
	"github.com/wneessen/go-mail"
)

// SMTP sends HTML messages through the configured relay.
type SMTP struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

func New(cfg config.Mail, logger *slog.Logger) (*SMTP, error) {
	const op = "lib.mailer.New"

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SMTP{client: client, from: cfg.From, logger: logger}, nil
}

func (s *SMTP) Send(ctx context.Context, to, subject, html string) error {
	const op = "lib.mailer.Send"

	msg, err := newMessage(s.from, to, subject, html)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("Mail sent", slog.String("subject", subject))

	return nil
}

func newMessage(from, to, subject, html string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)
	return msg, nil
}

// Log writes messages to the logger instead of sending them. It is used when
// mail delivery is disabled so links can be picked up from the output.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(_ context.Context, to, subject, html string) error {
	if _, err := newMessage("no-reply@localhost", to, subject, html); err != nil {
		return fmt.Errorf("lib.mailer.Log.Send: %w", err)
	}

	l.logger.Info("Mail delivery disabled, message logged",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", html),
	)
	return nil
}

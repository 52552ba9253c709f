package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

const (
	implicitTLSPort = 465
	defaultTimeout  = 15 * time.Second
)

// ErrNotConfigured is returned when no SMTP account is configured.
var ErrNotConfigured = errors.New("smtp account is not configured")

type transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Settings describes the SMTP account used for outgoing mail.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Sender delivers composed messages over SMTP.
type Sender struct {
	client transport
	from   string
	logger *slog.Logger
}

// NewSender dials nothing until Send is called. An empty username yields a
// sender that rejects every message.
func NewSender(s Settings, logger *slog.Logger) (*Sender, error) {
	if s.Username == "" {
		return &Sender{logger: logger}, nil
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}

	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
		mail.WithTimeout(s.Timeout),
	}
	if s.Port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Sender{client: client, from: s.Username, logger: logger}, nil
}

// From returns the envelope sender address.
func (s *Sender) From() string {
	return s.from
}

// Send delivers msg.
func (s *Sender) Send(ctx context.Context, msg *mail.Msg) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	s.logger.Info("mail sent",
		slog.Any("to", msg.GetToString()),
		slog.String("message_id", msg.GetMessageID()),
	)
	return nil
}

package mail

import (
	"context"
	"errors"
	"net"
	"net/smtp"
	"strconv"
)

var (
	ErrSMTPHostPortRequired = errors.New("smtp host and port are required")
	// ErrNoRecipients is returned when To/Cc/Bcc are all empty.
	ErrNoRecipients = errors.New("no recipients provided")
	// ErrNoSender is returned when both Message.From and the configured default From are empty.
	ErrNoSender = errors.New("no sender provided")
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP relays messages to a mail server with net/smtp.
type SMTP struct {
	addr        string
	defaultFrom string
	auth        smtp.Auth
	sendMail    sendMailFunc
	boundary    func() string
}

// SMTPConfig holds the relay address and optional PLAIN credentials.
// From is used when a Message has no sender of its own.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTP returns a relay client. Authentication is skipped unless both
// username and password are set.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port <= 0 {
		return nil, ErrSMTPHostPortRequired
	}

	client := &SMTP{
		addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		defaultFrom: cfg.From,
		sendMail:    smtp.SendMail,
		boundary:    multipartBoundary,
	}
	if cfg.Username != "" && cfg.Password != "" {
		client.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return client, nil
}

// Send renders msg and hands it to the relay. The context is only checked
// before dialing; net/smtp has no cancellation.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	recipients := msg.recipients()
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	from := senderOf(msg, s.defaultFrom)
	if from == "" {
		return ErrNoSender
	}

	raw, err := buildRaw(msg, from, s.boundary)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.sendMail(s.addr, s.auth, addressOf(from), addressesOf(recipients), raw)
}

// Close is a no-op; every Send dials its own connection.
func (s *SMTP) Close() error {
	return nil
}

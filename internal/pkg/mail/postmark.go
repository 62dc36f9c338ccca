package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

var (
	// ErrPostmarkTokenRequired is returned when the server token is missing.
	ErrPostmarkTokenRequired = errors.New("postmark server token is required")
	// ErrPostmarkRejected is returned when Postmark answers with a non-zero error code.
	ErrPostmarkRejected = errors.New("postmark rejected message")
)

type postmarkSender interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkConfig configures the Postmark implementation.
type PostmarkConfig struct {
	// ServerToken authorizes message sending.
	ServerToken string
	// AccountToken is optional; only account-level APIs need it.
	AccountToken string
	// From is the default sender when Message.From is empty.
	From string
}

// Postmark is a Mail implementation backed by the Postmark HTTP API.
type Postmark struct {
	client      postmarkSender
	defaultFrom string
}

// NewPostmark constructs a Postmark mail sender.
func NewPostmark(cfg PostmarkConfig) (*Postmark, error) {
	if cfg.ServerToken == "" {
		return nil, ErrPostmarkTokenRequired
	}

	return &Postmark{
		client:      postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		defaultFrom: cfg.From,
	}, nil
}

// Send delivers a message through Postmark.
func (p *Postmark) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(msg.recipients()) == 0 {
		return ErrNoRecipients
	}

	from := senderOf(msg, p.defaultFrom)
	if from == "" {
		return ErrNoSender
	}

	files, err := loadAttachments(msg.Attachments)
	if err != nil {
		return err
	}

	atts := make([]postmark.Attachment, 0, len(files))
	for _, f := range files {
		atts = append(atts, postmark.Attachment{
			Name:        f.name,
			Content:     base64.StdEncoding.EncodeToString(f.data),
			ContentType: f.contentType,
		})
	}

	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:        formatAddress(from),
		To:          strings.Join(formatAddresses(msg.To), ","),
		Cc:          strings.Join(formatAddresses(msg.Cc), ","),
		Bcc:         strings.Join(formatAddresses(msg.Bcc), ","),
		Subject:     msg.Subject,
		TextBody:    msg.TextBody,
		HTMLBody:    msg.HTMLBody,
		Attachments: atts,
	})
	if err != nil {
		return fmt.Errorf("postmark send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("%w: code %d: %s", ErrPostmarkRejected, resp.ErrorCode, resp.Message)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (p *Postmark) Close() error {
	return nil
}

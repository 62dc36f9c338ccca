package email

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"github.com/shandysiswandi/mailinglist/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

// Mail sends mailing-list emails through a mail.Mail driver.
type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

// Send delivers opts and echoes them back on success. Transport settings in
// opts are informational; the driver was configured at startup.
func (m *Mail) Send(ctx context.Context, opts entity.EmailOptions) either.Either[error, entity.EmailOptions] {
	ctx, span := m.ins.Tracer("mailinglist.outbound.email").Start(ctx, "Send")
	defer span.End()

	if err := m.client.Send(ctx, toMessage(opts)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "failed to send email", "to", opts.To, "error", err)
		return either.Left[error, entity.EmailOptions](&entity.MailServiceError{Err: err})
	}

	return either.Right[error](opts)
}

func toMessage(opts entity.EmailOptions) mail.Message {
	atts := make([]mail.Attachment, 0, len(opts.Attachments))
	for _, a := range opts.Attachments {
		atts = append(atts, mail.Attachment{Path: a.Filename, ContentType: a.ContentType})
	}

	var to []string
	if opts.To != "" {
		to = []string{opts.To}
	}

	return mail.Message{
		From:        opts.From,
		To:          to,
		Subject:     opts.Subject,
		TextBody:    opts.Text,
		HTMLBody:    opts.HTML,
		Attachments: atts,
	}
}

package usecase

import (
	"context"
	"html"
	"slices"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
)

// SendEmail sends the welcome email built from a base template.
type SendEmail struct {
	options entity.EmailOptions
	mailer  EmailService
	ins     instrument.Instrumentation
}

func NewSendEmail(options entity.EmailOptions, mailer EmailService, ins instrument.Instrumentation) *SendEmail {
	return &SendEmail{options: options, mailer: mailer, ins: ins}
}

// Perform validates data, personalizes the template for that subscriber and
// hands it to the email service. The service result is returned unchanged.
func (u *SendEmail) Perform(ctx context.Context, data entity.UserData) (either.Either[error, entity.EmailOptions], error) {
	ctx, span := startSpan(ctx, u.ins, "SendEmail")
	defer span.End()

	userOrErr := entity.NewUser(data)
	if userOrErr.IsLeft() {
		return either.Left[error, entity.EmailOptions](userOrErr.Left()), nil
	}

	user := userOrErr.Right()
	name := user.Name().Value()
	email := user.Email().Value()

	greetings := "E ai <b>" + html.EscapeString(name) + "</b>, beleza?"
	customizedHTML := greetings + "<br> <br>" + u.options.HTML

	result := u.mailer.Send(ctx, entity.EmailOptions{
		Host:        u.options.Host,
		Port:        u.options.Port,
		Username:    u.options.Username,
		Password:    u.options.Password,
		From:        u.options.From,
		To:          name + "<" + email + ">",
		Subject:     u.options.Subject,
		Text:        u.options.Text,
		HTML:        customizedHTML,
		Attachments: slices.Clone(u.options.Attachments),
	})
	if result.IsLeft() {
		span.RecordError(result.Left())
	}

	return result, nil
}

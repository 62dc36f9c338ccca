package usecase

import (
	"context"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UserRepository persists mailing-list subscribers.
//
// Implementations decide whether Add is idempotent; nothing here enforces
// unique emails.
type UserRepository interface {
	Add(ctx context.Context, user entity.UserData) error
	Exists(ctx context.Context, user entity.UserData) (bool, error)
	// FindUserByEmail returns nil and no error when nobody matches.
	FindUserByEmail(ctx context.Context, email string) (*entity.UserData, error)
	// FindAllUsers returns subscribers in insertion order.
	FindAllUsers(ctx context.Context) ([]entity.UserData, error)
}

// EmailService delivers one email. Transport failures come back as a Left
// holding *entity.MailServiceError.
type EmailService interface {
	Send(ctx context.Context, opts entity.EmailOptions) either.Either[error, entity.EmailOptions]
}

type Dependency struct {
	RepoDB       UserRepository
	RepoMail     EmailService
	EmailOptions entity.EmailOptions
	Instrument   instrument.Instrumentation
}

// New wires the registration flow: persist the subscriber, then send the
// welcome email.
func New(dep Dependency) *RegisterAndSendEmail {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return NewRegisterAndSendEmail(
		NewRegisterUserOnMailingList(dep.RepoDB, ins),
		NewSendEmail(dep.EmailOptions, dep.RepoMail, ins),
		ins,
	)
}

func startSpan(ctx context.Context, ins instrument.Instrumentation, name string) (context.Context, trace.Span) {
	return ins.Tracer("mailinglist.usecase").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

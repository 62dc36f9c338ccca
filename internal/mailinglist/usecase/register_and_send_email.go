package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
)

type userRegisterer interface {
	Perform(ctx context.Context, data entity.UserData) error
}

type emailSender interface {
	Perform(ctx context.Context, data entity.UserData) (either.Either[error, entity.EmailOptions], error)
}

// RegisterAndSendEmail validates a subscriber, registers it and sends the
// welcome email, stopping at the first failure.
//
// A registered subscriber is not removed when the email fails afterwards.
type RegisterAndSendEmail struct {
	register  userRegisterer
	sendEmail emailSender
	ins       instrument.Instrumentation
}

func NewRegisterAndSendEmail(register userRegisterer, sendEmail emailSender, ins instrument.Instrumentation) *RegisterAndSendEmail {
	return &RegisterAndSendEmail{register: register, sendEmail: sendEmail, ins: ins}
}

// Perform returns a Left for invalid input or a mail failure, and an error for
// faults of its collaborators.
func (u *RegisterAndSendEmail) Perform(ctx context.Context, in entity.UserData) (_ either.Either[error, entity.UserData], err error) {
	ctx, span := startSpan(ctx, u.ins, "RegisterAndSendEmail")
	defer func() { endSpan(span, err) }()

	userOrErr := entity.NewUser(in)
	if userOrErr.IsLeft() {
		return either.Left[error, entity.UserData](userOrErr.Left()), nil
	}

	data := userOrErr.Right().Data()

	if err := u.register.Perform(ctx, data); err != nil {
		return either.Either[error, entity.UserData]{}, err
	}

	result, err := u.sendEmail.Perform(ctx, data)
	if err != nil {
		return either.Either[error, entity.UserData]{}, err
	}
	if result.IsLeft() {
		slog.WarnContext(ctx, "subscriber registered but welcome email failed", "email", data.Email, "error", result.Left())
		return either.Left[error, entity.UserData](result.Left()), nil
	}

	return either.Right[error](data), nil
}

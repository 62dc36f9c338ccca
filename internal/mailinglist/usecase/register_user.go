package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
)

// RegisterUserOnMailingList stores an already validated subscriber.
type RegisterUserOnMailingList struct {
	repo UserRepository
	ins  instrument.Instrumentation
}

func NewRegisterUserOnMailingList(repo UserRepository, ins instrument.Instrumentation) *RegisterUserOnMailingList {
	return &RegisterUserOnMailingList{repo: repo, ins: ins}
}

// Perform adds data to the repository without validating it again. A
// repository failure is returned as is: it is a fault, not a domain outcome.
func (u *RegisterUserOnMailingList) Perform(ctx context.Context, data entity.UserData) (err error) {
	ctx, span := startSpan(ctx, u.ins, "RegisterUserOnMailingList")
	defer func() { endSpan(span, err) }()

	if err := u.repo.Add(ctx, data); err != nil {
		slog.ErrorContext(ctx, "failed to repo add user", "email", data.Email, "error", err)
		return fmt.Errorf("register user on mailing list: %w", err)
	}

	return nil
}

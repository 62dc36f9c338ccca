package inbound_test

import (
	"context"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/stretchr/testify/mock"
)

type mockUsecase struct {
	mock.Mock
}

func (m *mockUsecase) Perform(ctx context.Context, in entity.UserData) (either.Either[error, entity.UserData], error) {
	args := m.Called(ctx, in)
	return args.Get(0).(either.Either[error, entity.UserData]), args.Error(1)
}

type panickingUsecase struct{}

func (panickingUsecase) Perform(context.Context, entity.UserData) (either.Either[error, entity.UserData], error) {
	panic("boom")
}

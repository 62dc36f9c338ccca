package usecase_test

import (
	"context"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/stretchr/testify/mock"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, opts entity.EmailOptions) either.Either[error, entity.EmailOptions] {
	args := m.Called(ctx, opts)
	return args.Get(0).(either.Either[error, entity.EmailOptions])
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Add(ctx context.Context, user entity.UserData) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Exists(ctx context.Context, user entity.UserData) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (*entity.UserData, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.UserData)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindAllUsers(ctx context.Context) ([]entity.UserData, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.UserData)
	return users, args.Error(1)
}

func echoSend(_ context.Context, opts entity.EmailOptions) either.Either[error, entity.EmailOptions] {
	return either.Right[error](opts)
}

func baseOptions() entity.EmailOptions {
	return entity.EmailOptions{
		Host:     "test",
		Port:     867,
		Username: "test",
		Password: "",
		From:     "Test from_email@mail.com",
		To:       "any_name<any_email@mai.com>",
		Subject:  "Test e-mail",
		Text:     "Hello world attachment test",
		HTML:     "<b>Hello world attachment test</b>",
		Attachments: []entity.Attachment{
			{Filename: "../resources/text.txt", ContentType: "text/plain"},
		},
	}
}

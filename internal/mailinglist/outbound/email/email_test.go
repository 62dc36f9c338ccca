package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/outbound/email"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"github.com/shandysiswandi/mailinglist/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMail struct {
	mock.Mock
}

func (m *mockMail) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMail) Close() error {
	return m.Called().Error(0)
}

func options() entity.EmailOptions {
	return entity.EmailOptions{
		Host:     "test",
		Port:     867,
		Username: "test",
		From:     "Test from_email@mail.com",
		To:       "any_name<any_email@mail.com>",
		Subject:  "Test e-mail",
		Text:     "Hello world attachment test",
		HTML:     "<b>Hello world attachment test</b>",
		Attachments: []entity.Attachment{
			{Filename: "../resources/text.txt", ContentType: "text/plain"},
		},
	}
}

func TestMail_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("maps options and echoes them", func(t *testing.T) {
		client := new(mockMail)
		client.On("Send", mock.Anything, mail.Message{
			From:     "Test from_email@mail.com",
			To:       []string{"any_name<any_email@mail.com>"},
			Subject:  "Test e-mail",
			TextBody: "Hello world attachment test",
			HTMLBody: "<b>Hello world attachment test</b>",
			Attachments: []mail.Attachment{
				{Path: "../resources/text.txt", ContentType: "text/plain"},
			},
		}).Return(nil).Once()

		got := email.New(client, instrument.NewNoop()).Send(ctx, options())

		require.True(t, got.IsRight())
		assert.Equal(t, options(), got.Right())
		client.AssertExpectations(t)
	})

	t.Run("transport error becomes MailServiceError", func(t *testing.T) {
		errDial := errors.New("dial tcp: connection refused")
		client := new(mockMail)
		client.On("Send", mock.Anything, mock.Anything).Return(errDial).Once()

		got := email.New(client, instrument.NewNoop()).Send(ctx, options())

		require.True(t, got.IsLeft())
		var errMail *entity.MailServiceError
		require.ErrorAs(t, got.Left(), &errMail)
		assert.Equal(t, "Mail service error.", errMail.Error())
		assert.ErrorIs(t, got.Left(), errDial)
	})

	t.Run("empty recipient is left to the driver", func(t *testing.T) {
		client := new(mockMail)
		client.On("Send", mock.Anything, mock.MatchedBy(func(msg mail.Message) bool {
			return len(msg.To) == 0
		})).Return(mail.ErrNoRecipients).Once()

		opts := options()
		opts.To = ""
		got := email.New(client, instrument.NewNoop()).Send(ctx, opts)

		require.True(t, got.IsLeft())
		assert.ErrorIs(t, got.Left(), mail.ErrNoRecipients)
	})
}

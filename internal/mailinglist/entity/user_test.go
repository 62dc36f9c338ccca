package entity_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		got := entity.NewUser(entity.UserData{Name: "any_name", Email: "invalid_email"})

		require.True(t, got.IsLeft())
		var errEmail *entity.InvalidEmailError
		require.ErrorAs(t, got.Left(), &errEmail)
		assert.Equal(t, "Invalid email: invalid_email.", errEmail.Error())
	})

	t.Run("name too short", func(t *testing.T) {
		got := entity.NewUser(entity.UserData{Name: "O     ", Email: "any@email.com"})

		require.True(t, got.IsLeft())
		var errName *entity.InvalidNameError
		require.ErrorAs(t, got.Left(), &errName)
		assert.Equal(t, "Invalid name: O     .", errName.Error())
	})

	t.Run("name too long", func(t *testing.T) {
		raw := strings.Repeat("O", 257)
		got := entity.NewUser(entity.UserData{Name: raw, Email: "any@email.com"})

		require.True(t, got.IsLeft())
		assert.Equal(t, "Invalid name: "+raw+".", got.Left().Error())
	})

	t.Run("name error wins when both fields are invalid", func(t *testing.T) {
		got := entity.NewUser(entity.UserData{Name: "a", Email: "invalid_email"})

		require.True(t, got.IsLeft())
		var errName *entity.InvalidNameError
		assert.ErrorAs(t, got.Left(), &errName)
		var errEmail *entity.InvalidEmailError
		assert.False(t, errors.As(got.Left(), &errEmail))
	})

	t.Run("valid user round-trips to user data", func(t *testing.T) {
		in := entity.UserData{Name: "Any_Name", Email: "Any@Mail.com"}
		got := entity.NewUser(in)

		require.True(t, got.IsRight())
		user := got.Right()
		assert.Equal(t, "Any_Name", user.Name().Value())
		assert.Equal(t, "Any@Mail.com", user.Email().Value())
		assert.Equal(t, in, user.Data())
	})

	t.Run("name is trimmed in the projection", func(t *testing.T) {
		got := entity.NewUser(entity.UserData{Name: "  any_name ", Email: "any@mail.com"})

		require.True(t, got.IsRight())
		assert.Equal(t, entity.UserData{Name: "any_name", Email: "any@mail.com"}, got.Right().Data())
	})
}

func TestErrorJSON(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid name",
			err:  &entity.InvalidNameError{Value: "a"},
			want: `{"name":"InvalidNameError","message":"Invalid name: a."}`,
		},
		{
			name: "invalid email",
			err:  &entity.InvalidEmailError{Value: "x"},
			want: `{"name":"InvalidEmailError","message":"Invalid email: x."}`,
		},
		{
			name: "mail service",
			err:  &entity.MailServiceError{Err: errors.New("dial tcp: refused")},
			want: `{"name":"MailServiceError","message":"Mail service error."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.err)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestMailServiceErrorUnwrap(t *testing.T) {
	cause := errors.New("smtp: 550 mailbox unavailable")
	err := error(&entity.MailServiceError{Err: cause})

	assert.ErrorIs(t, err, cause)
}

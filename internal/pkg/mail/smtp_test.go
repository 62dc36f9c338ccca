package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{Host: "", Port: 25})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 2525, Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:2525", s.addr)
	assert.NotNil(t, s.auth)

	s, err = NewSMTP(SMTPConfig{Host: "localhost", Port: 2525})
	require.NoError(t, err)
	assert.Nil(t, s.auth)
}

func TestSMTP_Send(t *testing.T) {
	type sent struct {
		addr string
		from string
		to   []string
		msg  []byte
	}

	newSMTP := func(t *testing.T, sendErr error) (*SMTP, *sent) {
		t.Helper()
		s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 2525, From: "Team <team@mail.com>"})
		require.NoError(t, err)

		got := &sent{}
		s.boundary = fixedBoundary()
		s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			got.addr, got.from, got.to, got.msg = addr, from, to, msg
			return sendErr
		}
		return s, got
	}

	t.Run("sends with default sender", func(t *testing.T) {
		s, got := newSMTP(t, nil)

		err := s.Send(context.Background(), Message{To: []string{"any_name<any@mail.com>"}, Bcc: []string{"b@mail.com"}, TextBody: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "localhost:2525", got.addr)
		assert.Equal(t, "team@mail.com", got.from)
		assert.Equal(t, []string{"any@mail.com", "b@mail.com"}, got.to)
		assert.Contains(t, string(got.msg), "From: \"Team\" <team@mail.com>\r\n")
		assert.Contains(t, string(got.msg), "To: \"any_name\" <any@mail.com>\r\n")
	})

	t.Run("comma in the display name", func(t *testing.T) {
		s, got := newSMTP(t, nil)

		err := s.Send(context.Background(), Message{To: []string{"Smith, John<any@mail.com>"}, TextBody: "hi"})

		require.NoError(t, err)
		assert.Equal(t, []string{"any@mail.com"}, got.to)
		assert.Contains(t, string(got.msg), "To: \"Smith, John\" <any@mail.com>\r\n")
	})

	t.Run("no recipients", func(t *testing.T) {
		s, _ := newSMTP(t, nil)
		assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipients)
	})

	t.Run("no sender", func(t *testing.T) {
		s, _ := newSMTP(t, nil)
		s.defaultFrom = ""
		assert.ErrorIs(t, s.Send(context.Background(), Message{To: []string{"a@b.com"}}), ErrNoSender)
	})

	t.Run("canceled context", func(t *testing.T) {
		s, got := newSMTP(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@b.com"}}), context.Canceled)
		assert.Empty(t, got.addr)
	})

	t.Run("transport error", func(t *testing.T) {
		errDial := errors.New("dial tcp: refused")
		s, _ := newSMTP(t, errDial)
		assert.ErrorIs(t, s.Send(context.Background(), Message{To: []string{"a@b.com"}}), errDial)
	})

	assert.NoError(t, (&SMTP{}).Close())
}

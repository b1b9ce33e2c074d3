package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
)

func TestSMTPMailer_BuildsMessage(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.petcare.test", Username: "bot", Password: "pw", From: "noreply@petcare.test"})
	m.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		require.NotNil(t, a)
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), domain.Email{To: " jane@petcare.test ", Subject: "Adoption approved\n", Body: "Hello\nJane"})
	require.NoError(t, err)
	require.Equal(t, "smtp.petcare.test:587", gotAddr)
	require.Equal(t, "noreply@petcare.test", gotFrom)
	require.Equal(t, []string{"jane@petcare.test"}, gotTo)
	msg := string(gotMsg)
	require.Contains(t, msg, "Subject: Adoption approved\r\n")
	require.True(t, strings.HasSuffix(msg, "\r\n\r\nHello\r\nJane"))
}

func TestSMTPMailer_Errors(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.petcare.test", Port: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }

	require.ErrorIs(t, m.Send(context.Background(), domain.Email{Subject: "x"}), domain.ErrMissingRecipient)
	err := m.Send(context.Background(), domain.Email{To: "a@b.c", Subject: "x"})
	require.ErrorContains(t, err, "relay down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, m.Send(ctx, domain.Email{To: "a@b.c", Subject: "x"}), context.Canceled)
}

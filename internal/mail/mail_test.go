package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIME(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	raw, err := buildMIME("Recruitment <no-reply@iitp.ac.in>", Message{
		To:      "asha@example.edu",
		Subject: "Password reset",
		Body:    "line one\nline two",
	}, now)
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "From: Recruitment <no-reply@iitp.ac.in>\r\n")
	assert.Contains(t, s, "To: asha@example.edu\r\n")
	assert.Contains(t, s, "Subject: Password reset\r\n")
	assert.Contains(t, s, "Date: Sun, 01 Mar 2026 10:00:00 +0000\r\n")
	assert.True(t, strings.HasSuffix(s, "\r\n\r\nline one\r\nline two"))

	_, err = buildMIME("x@y.io", Message{To: "not-an-address"}, now)
	assert.Error(t, err)
	_, err = buildMIME("x@y.io", Message{To: "a@b.io", Subject: "evil\r\nBcc: c@d.io"}, now)
	assert.Error(t, err)
}

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "user", "pass", "Recruitment <no-reply@example.com>")

	var gotAddr, gotFrom string
	var gotTo []string
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), Message{To: "asha@example.edu", Subject: "Hi", Body: "x"}))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{"asha@example.edu"}, gotTo)

	t.Run("relay failure is wrapped", func(t *testing.T) {
		m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("535 auth failed")
		}
		err := m.Send(context.Background(), Message{To: "asha@example.edu", Subject: "Hi"})
		assert.ErrorContains(t, err, "535 auth failed")
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
			<-block
			return nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := m.Send(ctx, Message{To: "asha@example.edu", Subject: "Hi"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	m, err := New(ctx, &config.Config{MailDriver: "log"})
	require.NoError(t, err)
	assert.NoError(t, m.Send(ctx, Message{To: "asha@example.edu", Subject: "s", Body: "b"}))

	_, err = New(ctx, &config.Config{MailDriver: "pigeon"})
	assert.Error(t, err)

	_, err = New(ctx, &config.Config{
		MailDriver:           "gmail",
		GmailCredentialsFile: t.TempDir() + "/missing.json",
	})
	assert.ErrorContains(t, err, "gmail credentials")
}

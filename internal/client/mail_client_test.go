package client

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func TestMailClientSendHTML(t *testing.T) {
	client, err := NewMailClient(MailConfig{
		Host:     "smtp.example.com",
		Username: "user",
		Password: "pass",
		From:     "no-reply@adopour.app",
	})
	require.NoError(t, err)

	var sent sentMail
	client.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = sentMail{addr: addr, from: from, to: to, msg: string(msg)}
		return nil
	}

	require.NoError(t, client.SendHTML("alice@example.com", "Confirm your email", "<p>hi</p>"))
	assert.Equal(t, "smtp.example.com:587", sent.addr)
	assert.Equal(t, "no-reply@adopour.app", sent.from)
	assert.Equal(t, []string{"alice@example.com"}, sent.to)
	assert.Contains(t, sent.msg, "To: alice@example.com\r\n")
	assert.Contains(t, sent.msg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(sent.msg, "\r\n\r\n<p>hi</p>"))
}

func TestMailClientRejectsHeaderInjection(t *testing.T) {
	client, err := NewMailClient(MailConfig{Host: "localhost", Port: "25", From: "a@b.c"})
	require.NoError(t, err)
	client.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("must not be called")
	}

	assert.Error(t, client.SendHTML("x@y.z\r\nBcc: everyone@y.z", "s", "c"))
}

func TestNewMailClientRequiresHost(t *testing.T) {
	_, err := NewMailClient(MailConfig{From: "a@b.c"})
	assert.Error(t, err)
}

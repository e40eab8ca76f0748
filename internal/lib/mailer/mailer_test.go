package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := newMessage("WealthTracker <no-reply@example.com>", "user@example.com", "Verify", "<p>hi</p>")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Verify")
	assert.Contains(t, out, "<user@example.com>")
	assert.Contains(t, out, "text/html")

	_, err = newMessage("no-reply@example.com", "not an address", "s", "b")
	require.ErrorContains(t, err, "invalid recipient")
}

func TestLog_Send(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, l.Send(context.Background(), "user@example.com", "Reset", "<a href='x?token=abc'>reset</a>"))
	assert.True(t, strings.Contains(buf.String(), "token=abc"), buf.String())

	require.Error(t, l.Send(context.Background(), "", "Reset", "b"))
}

func TestNew(t *testing.T) {
	m, err := New(config.Mail{Host: "smtp.example.com", Port: 587, User: "u", Pass: "p", From: "a@b.c"}, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", m.from)

	_, err = New(config.Mail{Host: "", Port: 587}, slog.Default())
	require.Error(t, err)
}

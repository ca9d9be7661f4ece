package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	applog "storefront/internal/log"
)

func TestNewPicksSender(t *testing.T) {
	assert.IsType(t, LogSender{}, New(Config{}))
	assert.IsType(t, LogSender{}, New(Config{Host: "smtp.test"}))
	assert.IsType(t, &SMTPSender{}, New(Config{Host: "smtp.test", Port: "587", Username: "u", Password: "p"}))
}

func TestLogSenderRecordsMessage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	applog.Set(zap.New(core))
	t.Cleanup(func() { applog.Set(nil) })

	require.NoError(t, LogSender{}.Send(context.Background(), "owner@shop.test", "Hi", "Body"))
	entries := logs.FilterMessage("contact.email.dev_fallback").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "owner@shop.test", entries[0].ContextMap()["to"])
}

func TestComposeHeaders(t *testing.T) {
	msg := string(compose("shop@shop.test", "owner@shop.test", "[Contact] Zoë <z@x.test>", "line1\nline2"))
	head, body, ok := strings.Cut(msg, "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, head, "From: shop@shop.test\r\n")
	assert.Contains(t, head, "To: owner@shop.test\r\n")
	assert.Contains(t, head, "Subject: =?utf-8?q?")
	assert.Equal(t, "line1\r\nline2", body)
}

func TestSMTPSenderDialFailure(t *testing.T) {
	s := &SMTPSender{cfg: Config{Host: "127.0.0.1", Port: "1", Username: "u", Password: "p"}, Timeout: 0}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.Send(ctx, "a@b.test", "s", "b"))
}

package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/config"
)

func TestNewPoller_Polling(t *testing.T) {
	p, err := NewPoller(config.Telegram{Mode: config.ModePolling, PollTimeout: 5 * time.Second})
	require.NoError(t, err)

	lp, ok := p.(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, lp.Timeout)
	assert.Contains(t, lp.AllowedUpdates, "poll_answer")
}

func TestNewPoller_Webhook(t *testing.T) {
	p, err := NewPoller(config.Telegram{
		Mode:        config.ModeWebhook,
		WebhookURL:  "https://example.org/hook",
		SecretToken: "secret",
		ListenAddr:  ":8443",
	})
	require.NoError(t, err)

	wh, ok := p.(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, ":8443", wh.Listen)
	assert.Equal(t, "secret", wh.SecretToken)
	assert.Equal(t, "https://example.org/hook", wh.Endpoint.PublicURL)
}

func TestNewPoller_Errors(t *testing.T) {
	_, err := NewPoller(config.Telegram{Mode: config.ModeWebhook})
	assert.Error(t, err)

	_, err = NewPoller(config.Telegram{Mode: "smoke-signals"})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

package bot

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/auth"
)

// fakeContext переопределяет только те методы tele.Context, которые нужны middleware.
type fakeContext struct {
	tele.Context
	user *tele.User
	chat *tele.Chat
	text string
}

func (c *fakeContext) Sender() *tele.User { return c.user }
func (c *fakeContext) Chat() *tele.Chat   { return c.chat }
func (c *fakeContext) Text() string       { return c.text }

func newContext(userID int64) *fakeContext {
	return &fakeContext{
		user: &tele.User{ID: userID},
		chat: &tele.Chat{ID: userID},
		text: "/reload",
	}
}

func TestRecover(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := Recover(log)(func(tele.Context) error {
		panic("boom")
	})
	assert.EqualError(t, h(newContext(1)), "boom")

	sentinel := errors.New("sentinel")
	h = Recover(log)(func(tele.Context) error {
		panic(sentinel)
	})
	assert.ErrorIs(t, h(newContext(1)), sentinel)

	h = Recover(log)(func(tele.Context) error { return nil })
	assert.NoError(t, h(newContext(1)))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := Logger(log)(func(tele.Context) error { return nil })
	require.NoError(t, h(newContext(42)))
	assert.Contains(t, buf.String(), "update handled")
	assert.Contains(t, buf.String(), "user_id=42")

	h = Logger(log)(func(tele.Context) error { return errors.New("failed") })
	assert.Error(t, h(newContext(42)))
	assert.Contains(t, buf.String(), "update failed")
}

func TestAdminOnly(t *testing.T) {
	var denied, passed int

	deny := func(tele.Context) error {
		denied++
		return nil
	}
	next := func(tele.Context) error {
		passed++
		return nil
	}

	h := AdminOnly(auth.NewAdmins(1), deny)(next)
	require.NoError(t, h(newContext(1)))
	require.NoError(t, h(newContext(2)))
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, denied)

	// Без настроенных администраторов команда доступна всем.
	h = AdminOnly(auth.NewAdmins(), deny)(next)
	require.NoError(t, h(newContext(2)))
	assert.Equal(t, 2, passed)
}

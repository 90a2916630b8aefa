package slogcustom

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	color.NoColor = true

	var buf bytes.Buffer
	return slog.New(NewCustomHandler(&buf, level)), &buf
}

func TestCustomHandler_Level(t *testing.T) {
	log, buf := newTestLogger(slog.LevelInfo)

	log.Debug("hidden")
	log.Info("shown", "questions", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "INFO: shown questions=3")
}

func TestCustomHandler_AttrsAndGroups(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)

	log.With("component", "bot").WithGroup("poll").Warn("send failed", "chat_id", 42)

	assert.Contains(t, buf.String(), "WARN: send failed")
	assert.Contains(t, buf.String(), "component=bot")
	assert.Contains(t, buf.String(), "poll.chat_id=42")
}

func TestCustomHandler_GroupValue(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)

	log.Error("report", slog.Group("parse", "dropped", 1, "defaulted", 2))

	assert.Contains(t, buf.String(), "parse.dropped=1")
	assert.Contains(t, buf.String(), "parse.defaulted=2")
}

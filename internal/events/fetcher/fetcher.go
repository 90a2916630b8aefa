package fetcher

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/config"
)

// AllowedUpdates — типы обновлений, которые запрашиваются у Bot API.
var AllowedUpdates = []string{"message", "poll_answer"}

// ErrUnknownMode возвращается для неизвестного режима получения обновлений.
var ErrUnknownMode = errors.New("unknown update mode")

// NewPoller создаёт источник обновлений для режима cfg.Mode:
// long polling или вебхук на cfg.ListenAddr.
func NewPoller(cfg config.Telegram) (tele.Poller, error) {
	switch cfg.Mode {
	case config.ModePolling, "":
		return &tele.LongPoller{
			Timeout:        cfg.PollTimeout,
			AllowedUpdates: AllowedUpdates,
		}, nil
	case config.ModeWebhook:
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("webhook url is required in %s mode", config.ModeWebhook)
		}

		return &tele.Webhook{
			Listen:         cfg.ListenAddr,
			SecretToken:    cfg.SecretToken,
			AllowedUpdates: AllowedUpdates,
			Endpoint:       &tele.WebhookEndpoint{PublicURL: cfg.WebhookURL},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}

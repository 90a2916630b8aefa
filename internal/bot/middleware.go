package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/auth"
)

// Logger возвращает middleware, которое пишет в log каждое обработанное обновление.
func Logger(log *slog.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			attrs := []any{
				slog.Duration("took", time.Since(start)),
			}
			if u := c.Sender(); u != nil {
				attrs = append(attrs, slog.Int64("user_id", u.ID))
			}
			if chat := c.Chat(); chat != nil {
				attrs = append(attrs, slog.Int64("chat_id", chat.ID))
			}
			if text := c.Text(); text != "" {
				attrs = append(attrs, slog.Int("text_len", len(text)))
			}

			if err != nil {
				log.Error("update failed", append(attrs, slog.String("error", err.Error()))...)
			} else {
				log.Debug("update handled", attrs...)
			}

			return err
		}
	}
}

// Recover возвращает middleware, которое перехватывает панику в обработчике
// и превращает её в ошибку.
func Recover(log *slog.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("unknown panic: %v", x)
					}

					log.Error("recovered from panic", slog.String("error", err.Error()))
				}
			}()

			return next(c)
		}
	}
}

// AdminOnly пропускает к обработчику только администраторов.
// Остальным вызывается deny.
func AdminOnly(admins *auth.Admins, deny tele.HandlerFunc) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			var id int64
			if u := c.Sender(); u != nil {
				id = u.ID
			}

			if !admins.Allowed(id) {
				return deny(c)
			}

			return next(c)
		}
	}
}

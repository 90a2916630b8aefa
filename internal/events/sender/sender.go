package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/letsssgooo/mcqPollBot/internal/client"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

// Sender реализует отправку сообщений через Telegram Bot API.
type Sender struct {
	client client.Client
	log    *slog.Logger
}

// NewSender создает новый объект структуры Sender.
func NewSender(client client.Client, log *slog.Logger) *Sender {
	if log == nil {
		log = slog.Default()
	}

	return &Sender{client: client, log: log}
}

// Message отправляет текстовое сообщение.
func (s *Sender) Message(chatID int64, text string, opts *client.SendOptions) (*client.Message, error) {
	return s.client.SendMessage(chatID, text, opts)
}

// Document отправляет файл как документ.
func (s *Sender) Document(chatID int64, fileName string, data []byte) error {
	return s.client.SendDocument(chatID, fileName, data)
}

// Poll отправляет вопрос record в чат chatID как неанонимную викторину
// с одним правильным ответом. Слишком длинные поля обрезаются.
func (s *Sender) Poll(chatID int64, record mcq.QuestionRecord) (*client.Message, error) {
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("record is not sendable: %w", err)
	}

	return s.client.SendPoll(chatID, BuildPoll(record))
}

// Polls отправляет записи по порядку. Ошибка отправки одной записи
// логируется и учитывается в Result.Failed, остальные отправляются дальше.
// Отмена ctx прекращает отправку, неотправленные записи не считаются ошибками.
func (s *Sender) Polls(ctx context.Context, chatID int64, records []mcq.QuestionRecord) Result {
	var res Result

	for i, record := range records {
		if ctx.Err() != nil {
			s.log.Warn("poll dispatch cancelled",
				slog.Int64("chat_id", chatID),
				slog.Int("sent", len(res.Sent)),
				slog.Int("left", len(records)-i),
			)
			break
		}

		msg, err := s.Poll(chatID, record)
		if err != nil {
			res.Failed++
			s.log.Error("failed to send poll",
				slog.Int64("chat_id", chatID),
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}

		res.Sent = append(res.Sent, SentPoll{PollID: msg.PollID, Record: record})
	}

	return res
}

// BuildPoll строит параметры опроса из записи.
func BuildPoll(record mcq.QuestionRecord) *client.Poll {
	options := make([]string, len(record.Options))
	for i, opt := range record.Options {
		options[i] = truncateRunes(opt, MaxOptionLen)
	}

	return &client.Poll{
		Question:        truncateRunes(record.Prompt, MaxQuestionLen),
		Options:         options,
		CorrectOption:   record.CorrectIndex,
		Explanation:     truncateRunes(record.Explanation, MaxExplanationLen),
		Anonymous:       false,
		MultipleAnswers: false,
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}

	return string(runes[:limit-3]) + "..."
}

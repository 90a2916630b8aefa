package sender

import (
	"context"

	"github.com/letsssgooo/mcqPollBot/internal/client"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

// Ограничения Bot API на длину полей опроса (в символах).
const (
	MaxQuestionLen    = 300
	MaxOptionLen      = 100
	MaxExplanationLen = 200
)

// SentPoll связывает отправленный опрос с вопросом, из которого он построен.
type SentPoll struct {
	PollID string
	Record mcq.QuestionRecord
}

// Result — итог пакетной отправки опросов.
type Result struct {
	Sent   []SentPoll
	Failed int
}

// Dispatcher определяет основной интерфейс для отправки сообщений и опросов.
type Dispatcher interface {
	// Message отправляет текстовое сообщение.
	Message(chatID int64, text string, opts *client.SendOptions) (*client.Message, error)

	// Document отправляет файл как документ.
	Document(chatID int64, fileName string, data []byte) error

	// Poll отправляет один вопрос как опрос-викторину.
	Poll(chatID int64, record mcq.QuestionRecord) (*client.Message, error)

	// Polls отправляет вопросы по порядку, не останавливаясь на ошибках.
	Polls(ctx context.Context, chatID int64, records []mcq.QuestionRecord) Result
}

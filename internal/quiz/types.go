package quiz

import (
	"errors"
	"strings"
	"time"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

var (
	// ErrUnknownPoll возвращается для ответа на опрос, который бот не отправлял
	// или уже забыл после перезапуска.
	ErrUnknownPoll = errors.New("unknown poll")

	// ErrEmptyAnswer возвращается, если в ответе нет выбранных вариантов.
	ErrEmptyAnswer = errors.New("empty poll answer")
)

// Participant представляет участника, отвечающего на опросы.
type Participant struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// DisplayName возвращает имя для вывода в таблице лидеров.
func (p Participant) DisplayName() string {
	if p.Username != "" {
		return "@" + p.Username
	}

	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}

	return "anonymous"
}

// AnswerResult — итог регистрации ответа на опрос.
type AnswerResult struct {
	ChatID  int64
	Record  mcq.QuestionRecord
	Chosen  int
	Correct bool
	// Counted ложно для повторного ответа того же участника на тот же опрос.
	Counted bool
}

// Stats — накопленная статистика участника.
type Stats struct {
	Participant  Participant
	Answered     int
	Correct      int
	LastAnswerAt time.Time
}

// LeaderboardEntry представляет запись в таблице лидеров.
type LeaderboardEntry struct {
	Rank int
	Stats
}

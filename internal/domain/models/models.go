package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

// Модели, общие для хранилищ. Обработчики создают экземпляры моделей,
// заполняют их данными и передают в хранилище.

// ErrNotFound возвращается хранилищем, если набора с таким ID нет.
var ErrNotFound = errors.New("question set not found")

// QuestionSet определяет модель загруженного пользователем набора вопросов.
type QuestionSet struct {
	ID        uuid.UUID
	OwnerID   int64
	ChatID    int64
	Name      string
	Questions []mcq.QuestionRecord
	CreatedAt time.Time
}

// NewQuestionSet создаёт набор с новым ID.
func NewQuestionSet(ownerID, chatID int64, name string, questions []mcq.QuestionRecord) *QuestionSet {
	return &QuestionSet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		ChatID:    chatID,
		Name:      name,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
}

// Clone возвращает глубокую копию набора.
func (s *QuestionSet) Clone() *QuestionSet {
	clone := *s
	clone.Questions = make([]mcq.QuestionRecord, len(s.Questions))
	for i, q := range s.Questions {
		clone.Questions[i] = q.Clone()
	}

	return &clone
}

// Validate проверяет, что набор можно сохранить или отправить.
func (s *QuestionSet) Validate() error {
	if s.ID == uuid.Nil {
		return errors.New("question set id is not set")
	}

	if len(s.Questions) == 0 {
		return errors.New("question set is empty")
	}

	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return nil
}

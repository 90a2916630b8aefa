package mcq

import (
	"errors"
	"fmt"
	"strings"
)

// Границы количества вариантов ответа в одном вопросе.
const (
	MinOptions = 2
	MaxOptions = 4
)

// QuestionRecord представляет проверенный вопрос, готовый к отправке опросом.
type QuestionRecord struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// ErrInvalidRecord возвращается Validate для записи, нарушающей инварианты.
var ErrInvalidRecord = errors.New("invalid question record")

// Validate проверяет инварианты вопроса.
// Используется при загрузке вопросов из хранилища, парсер такие записи не создает.
func (r QuestionRecord) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("%w: missing prompt", ErrInvalidRecord)
	}

	if len(r.Options) < MinOptions || len(r.Options) > MaxOptions {
		return fmt.Errorf(
			"%w: amount of options must be in [%d, %d], got %d",
			ErrInvalidRecord, MinOptions, MaxOptions, len(r.Options),
		)
	}

	for i, option := range r.Options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("%w: option %s is empty", ErrInvalidRecord, IndexToLetter(i))
		}
	}

	if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options) {
		return fmt.Errorf("%w: index of correct answer %d is out of range", ErrInvalidRecord, r.CorrectIndex)
	}

	return nil
}

// Clone возвращает копию записи, не разделяющую слайс вариантов с оригиналом.
func (r QuestionRecord) Clone() QuestionRecord {
	r.Options = append([]string(nil), r.Options...)
	return r
}

// CorrectOption возвращает текст правильного варианта.
func (r QuestionRecord) CorrectOption() string {
	if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options) {
		return ""
	}

	return r.Options[r.CorrectIndex]
}

// AnswerLetters — допустимые буквы вариантов ответа.
var AnswerLetters = []string{"A", "B", "C", "D"}

// LetterToIndex преобразует букву в индекс (A=0, B=1, ...) без учета регистра.
func LetterToIndex(letter string) (int, bool) {
	letter = strings.TrimSpace(letter)
	for i, l := range AnswerLetters {
		if strings.EqualFold(l, letter) {
			return i, true
		}
	}

	return -1, false
}

// IndexToLetter преобразует индекс в букву (0=A, 1=B, ...).
func IndexToLetter(idx int) string {
	if idx >= 0 && idx < len(AnswerLetters) {
		return AnswerLetters[idx]
	}

	return ""
}

// Report содержит результат разбора вместе с диагностикой.
type Report struct {
	Records []QuestionRecord
	// Blocks — количество найденных блоков, включая отброшенные.
	Blocks int
	// Dropped — блоки без вопроса или с недостаточным числом вариантов.
	Dropped int
	// Defaulted — блоки, у которых ответ не распознан и заменен на первый вариант.
	Defaulted int
}

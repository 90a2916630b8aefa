package quiz

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

// Bank хранит набор вопросов по умолчанию, загруженный из файла.
// Безопасен для конкурентного использования.
type Bank struct {
	path   string
	parser *mcq.Parser

	mu        sync.RWMutex
	questions []mcq.QuestionRecord
}

// NewBank создаёт пустой банк вопросов для файла path.
// Для заполнения нужно вызвать Reload.
func NewBank(path string, parser *mcq.Parser) *Bank {
	if parser == nil {
		parser = mcq.NewParser()
	}

	return &Bank{path: path, parser: parser}
}

// Path возвращает путь к файлу вопросов.
func (b *Bank) Path() string {
	return b.path
}

// Reload перечитывает файл и заменяет набор вопросов.
// При ошибке чтения прежний набор сохраняется.
func (b *Bank) Reload() (mcq.Report, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return mcq.Report{}, fmt.Errorf("failed to read questions file %s: %w", b.path, err)
	}

	report := b.parser.ParseReport(string(data))

	b.mu.Lock()
	b.questions = report.Records
	b.mu.Unlock()

	return report, nil
}

// Random возвращает случайный вопрос. Второе значение ложно, если банк пуст.
func (b *Bank) Random() (mcq.QuestionRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.questions) == 0 {
		return mcq.QuestionRecord{}, false
	}

	return b.questions[rand.IntN(len(b.questions))].Clone(), true
}

// Questions возвращает копию всех вопросов в исходном порядке.
func (b *Bank) Questions() []mcq.QuestionRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]mcq.QuestionRecord, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Clone()
	}

	return out
}

// Len возвращает количество вопросов.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.questions)
}

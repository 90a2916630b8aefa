package quiz

import (
	"sort"
	"sync"
	"time"

	"github.com/letsssgooo/mcqPollBot/internal/events/sender"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

type trackedPoll struct {
	chatID   int64
	record   mcq.QuestionRecord
	answered map[int64]struct{}
}

// Tracker запоминает отправленные опросы и подсчитывает ответы участников.
// Данные живут только в памяти процесса.
type Tracker struct {
	mu    sync.Mutex
	polls map[string]*trackedPoll // ключ - pollID
	stats map[int64]*Stats        // ключ - telegramID
	now   func() time.Time
}

// NewTracker создаёт пустой Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		polls: make(map[string]*trackedPoll),
		stats: make(map[int64]*Stats),
		now:   time.Now,
	}
}

// Track запоминает опросы, отправленные в чат chatID.
func (t *Tracker) Track(chatID int64, sent ...sender.SentPoll) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range sent {
		if s.PollID == "" {
			continue
		}

		t.polls[s.PollID] = &trackedPoll{
			chatID:   chatID,
			record:   s.Record.Clone(),
			answered: make(map[int64]struct{}),
		}
	}
}

// Answer регистрирует ответ участника на опрос pollID.
// Учитывается только первый ответ участника на каждый опрос.
func (t *Tracker) Answer(pollID string, participant Participant, optionIDs []int) (AnswerResult, error) {
	if len(optionIDs) == 0 {
		return AnswerResult{}, ErrEmptyAnswer
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	poll, ok := t.polls[pollID]
	if !ok {
		return AnswerResult{}, ErrUnknownPoll
	}

	chosen := optionIDs[0]
	result := AnswerResult{
		ChatID:  poll.chatID,
		Record:  poll.record.Clone(),
		Chosen:  chosen,
		Correct: chosen == poll.record.CorrectIndex,
	}

	if _, ok = poll.answered[participant.TelegramID]; ok {
		return result, nil
	}
	poll.answered[participant.TelegramID] = struct{}{}
	result.Counted = true

	stats, ok := t.stats[participant.TelegramID]
	if !ok {
		stats = &Stats{}
		t.stats[participant.TelegramID] = stats
	}

	stats.Participant = participant
	stats.Answered++
	if result.Correct {
		stats.Correct++
	}
	stats.LastAnswerAt = t.now()

	return result, nil
}

// Stats возвращает статистику участника userID.
func (t *Tracker) Stats(userID int64) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.stats[userID]
	if !ok {
		return Stats{}, false
	}

	return *stats, true
}

// Leaderboard возвращает не более limit лучших участников.
// Порядок: больше правильных ответов, затем меньше ответов всего, затем меньший ID.
// limit <= 0 означает всех участников.
func (t *Tracker) Leaderboard(limit int) []LeaderboardEntry {
	t.mu.Lock()
	entries := make([]LeaderboardEntry, 0, len(t.stats))
	for _, stats := range t.stats {
		entries = append(entries, LeaderboardEntry{Stats: *stats})
	}
	t.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Correct != entries[j].Correct {
			return entries[i].Correct > entries[j].Correct
		}

		if entries[i].Answered != entries[j].Answered {
			return entries[i].Answered < entries[j].Answered
		}

		return entries[i].Participant.TelegramID < entries[j].Participant.TelegramID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

// Polls возвращает количество запомненных опросов.
func (t *Tracker) Polls() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.polls)
}

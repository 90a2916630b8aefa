package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/letsssgooo/mcqPollBot/internal/domain/models"
)

// MemoryStorage реализует Storage в памяти.
type MemoryStorage struct {
	mu   sync.RWMutex
	sets map[uuid.UUID]*models.QuestionSet
}

// NewMemoryStorage создаёт новый MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{sets: make(map[uuid.UUID]*models.QuestionSet)}
}

// SaveSet сохраняет копию набора.
func (s *MemoryStorage) SaveSet(_ context.Context, set *models.QuestionSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets[set.ID] = set.Clone()

	return nil
}

// GetSet возвращает копию набора по ID.
func (s *MemoryStorage) GetSet(_ context.Context, id uuid.UUID) (*models.QuestionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[id]
	if !ok {
		return nil, ErrNotFound
	}

	return set.Clone(), nil
}

// ListSets возвращает копии наборов пользователя ownerID.
func (s *MemoryStorage) ListSets(_ context.Context, ownerID int64) ([]*models.QuestionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sets []*models.QuestionSet
	for _, set := range s.sets {
		if set.OwnerID == ownerID {
			sets = append(sets, set.Clone())
		}
	}

	sort.Slice(sets, func(i, j int) bool {
		if !sets[i].CreatedAt.Equal(sets[j].CreatedAt) {
			return sets[i].CreatedAt.Before(sets[j].CreatedAt)
		}

		return sets[i].ID.String() < sets[j].ID.String()
	})

	return sets, nil
}

// DeleteSet удаляет набор.
func (s *MemoryStorage) DeleteSet(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[id]; !ok {
		return ErrNotFound
	}

	delete(s.sets, id)

	return nil
}

// Ping всегда успешен.
func (s *MemoryStorage) Ping(context.Context) error {
	return nil
}

// Close ничего не делает.
func (s *MemoryStorage) Close() error {
	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/letsssgooo/mcqPollBot/internal/config"
	"github.com/letsssgooo/mcqPollBot/internal/domain/models"
	"github.com/letsssgooo/mcqPollBot/internal/storage/postgres"
)

// ErrNotFound возвращается, если набора с таким ID нет.
var ErrNotFound = models.ErrNotFound

// Storage определяет интерфейс для хранения наборов вопросов.
type Storage interface {
	// SaveSet сохраняет набор. Набор с тем же ID перезаписывается.
	SaveSet(ctx context.Context, set *models.QuestionSet) error

	// GetSet возвращает набор по ID.
	GetSet(ctx context.Context, id uuid.UUID) (*models.QuestionSet, error)

	// ListSets возвращает наборы пользователя, от старых к новым.
	ListSets(ctx context.Context, ownerID int64) ([]*models.QuestionSet, error)

	// DeleteSet удаляет набор.
	DeleteSet(ctx context.Context, id uuid.UUID) error

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error

	// Close освобождает ресурсы.
	Close() error
}

// New создаёт хранилище по cfg.Type. Для postgres схема создаётся сразу.
func New(ctx context.Context, cfg config.Storage) (Storage, error) {
	switch cfg.Type {
	case config.StorageMemory, "":
		return NewMemoryStorage(), nil
	case config.StoragePostgres:
		pg, err := postgres.NewStorage(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}

		if err = pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}

		return pg, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

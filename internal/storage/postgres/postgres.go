package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/letsssgooo/mcqPollBot/internal/domain/models"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

const schema = `
CREATE TABLE IF NOT EXISTS question_sets (
	id         UUID PRIMARY KEY,
	owner_id   BIGINT NOT NULL,
	chat_id    BIGINT NOT NULL,
	name       TEXT NOT NULL,
	questions  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS question_sets_owner_idx ON question_sets (owner_id, created_at);
`

// Storage хранит наборы вопросов в PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage подключается к базе dsn.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dsn: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// Migrate создаёт таблицы, если их нет.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	return nil
}

func (s *Storage) SaveSet(ctx context.Context, set *models.QuestionSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	query := `
	INSERT INTO question_sets (id, owner_id, chat_id, name, questions, created_at)
	VALUES ($1::uuid, $2, $3, $4, $5::jsonb, $6)
	ON CONFLICT (id) DO UPDATE
	SET owner_id = EXCLUDED.owner_id, chat_id = EXCLUDED.chat_id, name = EXCLUDED.name,
		questions = EXCLUDED.questions, created_at = EXCLUDED.created_at
	`

	_, err = s.pool.Exec(ctx, query,
		set.ID.String(), set.OwnerID, set.ChatID, set.Name, string(questions), set.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save set %s: %w", set.ID, err)
	}

	return nil
}

func (s *Storage) GetSet(ctx context.Context, id uuid.UUID) (*models.QuestionSet, error) {
	query := `
	SELECT id::text, owner_id, chat_id, name, questions::text, created_at
	FROM question_sets WHERE id = $1::uuid
	`

	set, err := scanSet(s.pool.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get set %s: %w", id, err)
	}

	return set, nil
}

func (s *Storage) ListSets(ctx context.Context, ownerID int64) ([]*models.QuestionSet, error) {
	query := `
	SELECT id::text, owner_id, chat_id, name, questions::text, created_at
	FROM question_sets WHERE owner_id = $1
	ORDER BY created_at, id
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	defer rows.Close()

	var sets []*models.QuestionSet
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		sets = append(sets, set)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}

	return sets, nil
}

func (s *Storage) DeleteSet(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM question_sets WHERE id = $1::uuid`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete set %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func scanSet(row pgx.Row) (*models.QuestionSet, error) {
	var (
		id        string
		questions string
		createdAt time.Time
		set       models.QuestionSet
	)

	if err := row.Scan(&id, &set.OwnerID, &set.ChatID, &set.Name, &questions, &createdAt); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid set id %q: %w", id, err)
	}
	set.ID = parsedID
	set.CreatedAt = createdAt.UTC()

	var records []mcq.QuestionRecord
	if err = json.Unmarshal([]byte(questions), &records); err != nil {
		return nil, fmt.Errorf("failed to decode questions of set %s: %w", id, err)
	}
	set.Questions = records

	if err = set.Validate(); err != nil {
		return nil, fmt.Errorf("stored set %s is invalid: %w", id, err)
	}

	return &set, nil
}

package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirepg/hirepg/types"
)

// Schema:
//
//	CREATE TABLE hirepg_checkpoints (
//	    thread_id  TEXT PRIMARY KEY,
//	    version    BIGINT NOT NULL,
//	    messages   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);

// querier is a common interface for pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using PostgreSQL with pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL checkpoint store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) getQuerier(ctx context.Context) querier {
	return s.pool
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, threadID string) (*Checkpoint, error) {
	query := `
		SELECT thread_id, version, messages, updated_at
		FROM hirepg_checkpoints
		WHERE thread_id = $1
	`

	var cp Checkpoint
	var messagesJSON []byte

	err := s.getQuerier(ctx).QueryRow(ctx, query, threadID).Scan(
		&cp.ThreadID,
		&cp.Version,
		&messagesJSON,
		&cp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrThreadNotFound, threadID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	if err := json.Unmarshal(messagesJSON, &cp.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}

	return &cp, nil
}

// Put implements Store. The compare-and-swap is expressed directly in SQL:
// the UPDATE matches only when the stored version is cp.Version-1, and an
// INSERT is attempted only for version 1.
func (s *PostgresStore) Put(ctx context.Context, cp *Checkpoint) error {
	messagesJSON, err := json.Marshal(cp.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	if cp.Version == 1 {
		query := `
			INSERT INTO hirepg_checkpoints (thread_id, version, messages, updated_at)
			VALUES ($1, 1, $2, NOW())
			ON CONFLICT (thread_id) DO NOTHING
		`
		tag, err := s.getQuerier(ctx).Exec(ctx, query, cp.ThreadID, messagesJSON)
		if err != nil {
			return fmt.Errorf("failed to insert checkpoint: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}
		return nil
	}

	query := `
		UPDATE hirepg_checkpoints
		SET version = $2, messages = $3, updated_at = NOW()
		WHERE thread_id = $1 AND version = $2 - 1
	`
	tag, err := s.getQuerier(ctx).Exec(ctx, query, cp.ThreadID, cp.Version, messagesJSON)
	if err != nil {
		return fmt.Errorf("failed to update checkpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// Append implements Store. Appending bumps the version atomically; a missing
// thread is created at version 1.
func (s *PostgresStore) Append(ctx context.Context, threadID string, msgs ...*types.Message) error {
	msgsJSON, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	query := `
		INSERT INTO hirepg_checkpoints (thread_id, version, messages, updated_at)
		VALUES ($1, 1, $2, NOW())
		ON CONFLICT (thread_id) DO UPDATE
		SET version = hirepg_checkpoints.version + 1,
		    messages = hirepg_checkpoints.messages || EXCLUDED.messages,
		    updated_at = NOW()
	`
	if _, err := s.getQuerier(ctx).Exec(ctx, query, threadID, msgsJSON); err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}
	return nil
}

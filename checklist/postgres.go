package checklist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema:
//
//	CREATE TABLE hirepg_checklists (
//	    candidate_id TEXT PRIMARY KEY,
//	    steps        JSONB NOT NULL,
//	    notes        JSONB NOT NULL DEFAULT '[]',
//	    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
// The checklist is one small JSONB document per candidate. Step marking is a
// read-modify-write; lane isolation in the supervisor guarantees a single
// writer per candidate, so no row-level CAS is needed here.

// PostgresStore implements Store using PostgreSQL with pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL checklist store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create implements Store.
func (s *PostgresStore) Create(ctx context.Context, c *Checklist) error {
	stepsJSON, err := json.Marshal(c.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}
	notesJSON, err := json.Marshal(c.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	query := `
		INSERT INTO hirepg_checklists (candidate_id, steps, notes, updated_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := s.pool.Exec(ctx, query, c.CandidateID, stepsJSON, notesJSON); err != nil {
		return fmt.Errorf("failed to create checklist: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context, candidateID string) (*Checklist, error) {
	query := `
		SELECT steps, notes
		FROM hirepg_checklists
		WHERE candidate_id = $1
	`

	var stepsJSON, notesJSON []byte
	err := s.pool.QueryRow(ctx, query, candidateID).Scan(&stepsJSON, &notesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}

	c := &Checklist{CandidateID: candidateID}
	if err := json.Unmarshal(stepsJSON, &c.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	if err := json.Unmarshal(notesJSON, &c.Notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
	}
	return c, nil
}

// MarkDone implements Store. Marking an already-done step is a no-op.
func (s *PostgresStore) MarkDone(ctx context.Context, candidateID, stepLabel string) error {
	c, err := s.Load(ctx, candidateID)
	if err != nil {
		return err
	}
	i := c.Find(stepLabel)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStepNotFound, stepLabel)
	}
	if c.Steps[i].Done {
		return nil
	}
	c.Steps[i].Done = true
	return s.save(ctx, c)
}

// AddNote implements Store.
func (s *PostgresStore) AddNote(ctx context.Context, candidateID, text string) error {
	c, err := s.Load(ctx, candidateID)
	if err != nil {
		return err
	}
	c.Notes = append(c.Notes, Note{Text: text, CreatedAt: time.Now()})
	return s.save(ctx, c)
}

// IsPhaseComplete implements Store.
func (s *PostgresStore) IsPhaseComplete(ctx context.Context, candidateID string, phaseSteps []string) (bool, error) {
	c, err := s.Load(ctx, candidateID)
	if err != nil {
		return false, err
	}
	for _, label := range phaseSteps {
		if !c.IsDone(label) {
			return false, nil
		}
	}
	return true, nil
}

func (s *PostgresStore) save(ctx context.Context, c *Checklist) error {
	stepsJSON, err := json.Marshal(c.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}
	notesJSON, err := json.Marshal(c.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	query := `
		UPDATE hirepg_checklists
		SET steps = $2, notes = $3, updated_at = NOW()
		WHERE candidate_id = $1
	`
	tag, err := s.pool.Exec(ctx, query, c.CandidateID, stepsJSON, notesJSON)
	if err != nil {
		return fmt.Errorf("failed to save checklist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: candidate %s", ErrNotFound, c.CandidateID)
	}
	return nil
}

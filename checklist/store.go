package checklist

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no checklist exists for a candidate.
	ErrNotFound = errors.New("checklist not found")

	// ErrStepNotFound is returned when marking a step that the checklist
	// does not contain.
	ErrStepNotFound = errors.New("checklist step not found")
)

// Store is the durable per-candidate checklist store.
type Store interface {
	// Create persists a new checklist for a candidate. Creating over an
	// existing checklist is an error; checklists live for the whole
	// candidate lifecycle.
	Create(ctx context.Context, c *Checklist) error

	// Load returns the candidate's checklist.
	Load(ctx context.Context, candidateID string) (*Checklist, error)

	// MarkDone marks the named step complete. Marking an already-done step
	// is a no-op success, not an error.
	MarkDone(ctx context.Context, candidateID, stepLabel string) error

	// AddNote appends a free-text note to the checklist.
	AddNote(ctx context.Context, candidateID, text string) error

	// IsPhaseComplete reports whether every one of phaseSteps is done.
	// It is a pure read used by the state machine to gate transitions.
	IsPhaseComplete(ctx context.Context, candidateID string, phaseSteps []string) (bool, error)
}

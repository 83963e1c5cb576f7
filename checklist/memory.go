package checklist

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation for tests and examples.
type MemoryStore struct {
	mu         sync.Mutex
	checklists map[string]*Checklist
}

// NewMemoryStore creates an empty in-memory checklist store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{checklists: make(map[string]*Checklist)}
}

// Create implements Store.
func (s *MemoryStore) Create(ctx context.Context, c *Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklists[c.CandidateID]; ok {
		return fmt.Errorf("checklist already exists for candidate %s", c.CandidateID)
	}
	s.checklists[c.CandidateID] = c.Clone()
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, candidateID string) (*Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checklists[candidateID]
	if !ok {
		return nil, fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
	}
	return c.Clone(), nil
}

// MarkDone implements Store. Marking an already-done step is a no-op.
func (s *MemoryStore) MarkDone(ctx context.Context, candidateID, stepLabel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checklists[candidateID]
	if !ok {
		return fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
	}
	i := c.Find(stepLabel)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStepNotFound, stepLabel)
	}
	c.Steps[i].Done = true
	return nil
}

// AddNote implements Store.
func (s *MemoryStore) AddNote(ctx context.Context, candidateID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checklists[candidateID]
	if !ok {
		return fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
	}
	c.Notes = append(c.Notes, Note{Text: text, CreatedAt: time.Now()})
	return nil
}

// IsPhaseComplete implements Store.
func (s *MemoryStore) IsPhaseComplete(ctx context.Context, candidateID string, phaseSteps []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checklists[candidateID]
	if !ok {
		return false, fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
	}
	for _, label := range phaseSteps {
		if !c.IsDone(label) {
			return false, nil
		}
	}
	return true, nil
}

package checkpoint

import (
	"context"
	"sync"
	"time"

	"github.com/hirepg/hirepg/types"
)

// MemoryStore is an in-memory Store implementation. Each test can construct
// an isolated instance; there are no process-wide singletons.
type MemoryStore struct {
	mu      sync.Mutex
	threads map[string]*Checkpoint
}

// NewMemoryStore creates an empty in-memory checkpoint store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string]*Checkpoint)}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, threadID string) (*Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp, ok := s.threads[threadID]
	if !ok {
		return nil, ErrThreadNotFound
	}
	return &Checkpoint{
		ThreadID:  cp.ThreadID,
		Version:   cp.Version,
		UpdatedAt: cp.UpdatedAt,
		Messages:  cp.Messages.Clone(),
	}, nil
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, cp *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.threads[cp.ThreadID]
	if !ok {
		if cp.Version != 1 {
			return ErrConflict
		}
	} else if current.Version != cp.Version-1 {
		return ErrConflict
	}

	s.threads[cp.ThreadID] = &Checkpoint{
		ThreadID:  cp.ThreadID,
		Version:   cp.Version,
		UpdatedAt: time.Now(),
		Messages:  cp.Messages.Clone(),
	}
	return nil
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, threadID string, msgs ...*types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.threads[threadID]
	if !ok {
		s.threads[threadID] = &Checkpoint{
			ThreadID:  threadID,
			Version:   1,
			UpdatedAt: time.Now(),
			Messages:  append(types.ConversationHistory{}, msgs...),
		}
		return nil
	}

	current.Messages = append(current.Messages.Clone(), msgs...)
	current.Version++
	current.UpdatedAt = time.Now()
	return nil
}

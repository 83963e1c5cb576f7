package checkpoint

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hirepg/hirepg/types"
)

func seedThread(t *testing.T, store Store, threadID string, msgs ...*types.Message) {
	t.Helper()
	err := store.Put(context.Background(), &Checkpoint{
		ThreadID: threadID,
		Version:  1,
		Messages: msgs,
	})
	if err != nil {
		t.Fatalf("failed to seed thread: %v", err)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("expected ErrThreadNotFound, got %v", err)
	}
}

func TestMemoryStorePutVersionChain(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	msg := types.NewSystemMessage("thread-1", "rules")
	seedThread(t, store, "thread-1", msg)

	// Version 2 on top of 1 succeeds.
	err := store.Put(ctx, &Checkpoint{
		ThreadID: "thread-1",
		Version:  2,
		Messages: types.ConversationHistory{msg, types.NewUserMessage("thread-1", "hi")},
	})
	if err != nil {
		t.Fatalf("Put version 2 returned error: %v", err)
	}

	cp, err := store.Get(ctx, "thread-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if cp.Version != 2 {
		t.Errorf("expected version 2, got %d", cp.Version)
	}
	if len(cp.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(cp.Messages))
	}
}

func TestMemoryStorePutConflicts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seedThread(t, store, "thread-1", types.NewSystemMessage("thread-1", "rules"))

	tests := []struct {
		name    string
		version int64
	}{
		{"stale version", 1},
		{"skipped version", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Put(ctx, &Checkpoint{ThreadID: "thread-1", Version: tt.version})
			if !errors.Is(err, ErrConflict) {
				t.Errorf("Put version %d: expected ErrConflict, got %v", tt.version, err)
			}
		})
	}

	// Creating an unknown thread at a version other than 1 conflicts too.
	err := store.Put(ctx, &Checkpoint{ThreadID: "new-thread", Version: 3})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for new thread at version 3, got %v", err)
	}
}

func TestMemoryStoreAppend(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Append to a missing thread creates version 1.
	err := store.Append(ctx, "thread-1", types.NewSystemMessage("thread-1", "rules"))
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	err = store.Append(ctx, "thread-1",
		types.NewUserMessage("thread-1", "hello"),
		types.NewAgentMessage("thread-1", "hi"),
	)
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	cp, err := store.Get(ctx, "thread-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if cp.Version != 2 {
		t.Errorf("expected version 2 after two appends, got %d", cp.Version)
	}
	if len(cp.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(cp.Messages))
	}
}

func TestRewriterReplace(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	system := types.NewSystemMessage("thread-1", "rules")
	seedThread(t, store, "thread-1", system)

	newHistory := types.ConversationHistory{
		system,
		types.NewSummaryMessage("thread-1", "condensed"),
	}

	r := NewRewriter(store)
	if err := r.Replace(ctx, "thread-1", newHistory); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}

	cp, err := store.Get(ctx, "thread-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if cp.Version != 2 {
		t.Errorf("expected version 2 after replace, got %d", cp.Version)
	}
	if len(cp.Messages) != 2 || !cp.Messages[1].IsSummary {
		t.Errorf("replace did not install the new history")
	}
}

func TestRewriterReplaceMissingThread(t *testing.T) {
	r := NewRewriter(NewMemoryStore())

	err := r.Replace(context.Background(), "missing", nil)
	if !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("expected ErrThreadNotFound, got %v", err)
	}
}

// conflictingStore forces a fixed number of Put conflicts before delegating.
type conflictingStore struct {
	Store
	mu        sync.Mutex
	conflicts int
}

func (s *conflictingStore) Put(ctx context.Context, cp *Checkpoint) error {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return ErrConflict
	}
	s.mu.Unlock()
	return s.Store.Put(ctx, cp)
}

func TestRewriterRetriesOnConflict(t *testing.T) {
	inner := NewMemoryStore()
	seedThread(t, inner, "thread-1", types.NewSystemMessage("thread-1", "rules"))

	store := &conflictingStore{Store: inner, conflicts: 2}
	r := NewRewriter(store).WithRetries(3, time.Millisecond)

	err := r.Replace(context.Background(), "thread-1", types.ConversationHistory{
		types.NewSystemMessage("thread-1", "rules"),
	})
	if err != nil {
		t.Fatalf("Replace should succeed after retries, got %v", err)
	}
}

func TestRewriterExhaustsRetries(t *testing.T) {
	inner := NewMemoryStore()
	seedThread(t, inner, "thread-1", types.NewSystemMessage("thread-1", "rules"))

	store := &conflictingStore{Store: inner, conflicts: 100}
	r := NewRewriter(store).WithRetries(2, time.Millisecond)

	err := r.Replace(context.Background(), "thread-1", nil)
	if !errors.Is(err, ErrConcurrencyExhausted) {
		t.Errorf("expected ErrConcurrencyExhausted, got %v", err)
	}
}

func TestRewriterRespectsContextCancellation(t *testing.T) {
	inner := NewMemoryStore()
	seedThread(t, inner, "thread-1", types.NewSystemMessage("thread-1", "rules"))

	store := &conflictingStore{Store: inner, conflicts: 100}
	r := NewRewriter(store).WithRetries(10, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Replace(ctx, "thread-1", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirepg/hirepg/types"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 50 * time.Millisecond
)

// Rewriter persists a compacted history back into the conversation store.
//
// Replace is a structural replace, not an append, and is the only code path
// permitted to shrink a thread's message count. It commits with a
// compare-and-swap on the checkpoint version and retries with backoff on
// conflict, capped at a small retry count.
type Rewriter struct {
	store          Store
	maxRetries     int
	initialBackoff time.Duration
}

// NewRewriter creates a Rewriter over the given store with default retry
// behavior.
func NewRewriter(store Store) *Rewriter {
	return &Rewriter{
		store:          store,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
	}
}

// WithRetries overrides the conflict retry budget. A non-positive count
// disables retries (a single attempt is still made).
func (r *Rewriter) WithRetries(n int, backoff time.Duration) *Rewriter {
	r.maxRetries = n
	r.initialBackoff = backoff
	return r
}

// Replace swaps the thread's history for newHistory at version current+1.
//
// On ErrConflict the current checkpoint is re-fetched and the swap retried
// with doubling backoff; once retries are exhausted it fails with
// ErrConcurrencyExhausted and the whole turn may be retried later.
func (r *Rewriter) Replace(ctx context.Context, threadID string, newHistory types.ConversationHistory) error {
	backoff := r.initialBackoff

	for attempt := 0; ; attempt++ {
		current, err := r.store.Get(ctx, threadID)
		if err != nil {
			return fmt.Errorf("rewriter: fetch checkpoint: %w", err)
		}

		next := &Checkpoint{
			ThreadID:  threadID,
			Version:   current.Version + 1,
			UpdatedAt: time.Now(),
			Messages:  newHistory,
		}

		err = r.store.Put(ctx, next)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return fmt.Errorf("rewriter: commit checkpoint: %w", err)
		}
		if attempt >= r.maxRetries {
			return fmt.Errorf("%w: %d conflicts on thread %s", ErrConcurrencyExhausted, attempt+1, threadID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

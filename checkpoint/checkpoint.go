// Package checkpoint persists versioned snapshots of conversation histories.
//
// A Checkpoint is the durable form of one thread's ConversationHistory. Its
// version strictly increases on every write, and writers commit with a
// compare-and-swap on the version so that concurrent conflicting writers can
// never both succeed from the same base. The Rewriter is the only code path
// permitted to shrink a thread's message count; everything else appends.
package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/hirepg/hirepg/types"
)

var (
	// ErrThreadNotFound is returned when no checkpoint exists for a thread.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrConflict is returned when a compare-and-swap on the checkpoint
	// version fails because another writer advanced it concurrently.
	ErrConflict = errors.New("checkpoint version conflict")

	// ErrConcurrencyExhausted is returned when conflict retries are used up.
	// The whole turn is safe to retry later.
	ErrConcurrencyExhausted = errors.New("checkpoint retries exhausted")
)

// Checkpoint is a versioned snapshot of one thread's conversation history.
type Checkpoint struct {
	ThreadID  string                    `json:"thread_id"`
	Version   int64                     `json:"version"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Messages  types.ConversationHistory `json:"messages"`
}

// Store is the durable conversation store, keyed by thread id.
//
// Put commits cp only if the stored version equals cp.Version-1 (or the
// thread does not exist yet and cp.Version == 1); otherwise it returns
// ErrConflict. Readers always see the latest committed version.
type Store interface {
	// Get returns the latest committed checkpoint for the thread.
	Get(ctx context.Context, threadID string) (*Checkpoint, error)

	// Put commits a new checkpoint with a compare-and-swap on version.
	Put(ctx context.Context, cp *Checkpoint) error

	// Append adds messages to the tail of the thread's history, creating
	// the thread at version 1 if it does not exist. This is the normal
	// append-only write path.
	Append(ctx context.Context, threadID string, msgs ...*types.Message) error
}

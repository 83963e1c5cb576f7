package hirepg

import (
	"errors"
	"fmt"

	"github.com/hirepg/hirepg/checkpoint"
	"github.com/hirepg/hirepg/workflow"
)

// Common errors
var (
	// ErrInvalidConfig is returned when the supervisor configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExternalTimeout is returned when an agent invocation exceeds the
	// turn timeout. The turn is aborted with no partial writes.
	ErrExternalTimeout = errors.New("external call timed out")

	// ErrCompactionFailed is returned when history compaction fails
	ErrCompactionFailed = errors.New("history compaction failed")

	// Re-exported sentinels so callers can match errors without importing
	// the subpackages.

	// ErrPrematureTransition is returned when a status advance is gated by
	// an incomplete checklist phase
	ErrPrematureTransition = workflow.ErrPrematureTransition

	// ErrInvalidTransition is returned for an unreachable status transition
	ErrInvalidTransition = workflow.ErrInvalidTransition

	// ErrCandidateNotFound is returned when a candidate does not exist
	ErrCandidateNotFound = workflow.ErrCandidateNotFound

	// ErrConcurrencyExhausted is returned when a checkpoint rewrite loses
	// every compare-and-swap retry
	ErrConcurrencyExhausted = checkpoint.ErrConcurrencyExhausted
)

// PipelineError represents an error with additional context
type PipelineError struct {
	Op          string         // Operation that failed
	Err         error          // Underlying error
	CandidateID string         // Candidate ID if applicable
	Context     map[string]any // Additional context
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.CandidateID != "" {
		return fmt.Sprintf("%s (candidate=%s): %v", e.Op, e.CandidateID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// WithContext adds additional context to the error
func (e *PipelineError) WithContext(key string, value any) *PipelineError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:  op,
		Err: err,
	}
}

// NewPipelineErrorWithCandidate creates a new PipelineError with candidate ID
func NewPipelineErrorWithCandidate(op string, candidateID string, err error) *PipelineError {
	return &PipelineError{
		Op:          op,
		Err:         err,
		CandidateID: candidateID,
	}
}

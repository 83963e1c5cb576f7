package workflow

import (
	"context"
	"errors"
)

var (
	// ErrCandidateNotFound is returned when a candidate does not exist.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrCandidateExists is returned when registering a duplicate candidate.
	ErrCandidateExists = errors.New("candidate already exists")
)

// Store is the durable candidate store.
type Store interface {
	// CreateCandidate registers a new candidate.
	CreateCandidate(ctx context.Context, c *Candidate) error

	// GetCandidate returns a candidate by id.
	GetCandidate(ctx context.Context, candidateID string) (*Candidate, error)

	// GetCandidateByEmail returns a candidate by email.
	GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error)

	// UpdateStatus persists a new candidate status.
	UpdateStatus(ctx context.Context, candidateID string, status CandidateStatus) error

	// AppendAudit appends a status transition audit record.
	AppendAudit(ctx context.Context, rec *AuditRecord) error

	// AuditTrail returns the candidate's audit records in order.
	AuditTrail(ctx context.Context, candidateID string) ([]*AuditRecord, error)

	// WriteCVResult persists a CV screening result.
	WriteCVResult(ctx context.Context, res *CVScreeningResult) error

	// WriteVoiceResult persists a voice screening result.
	WriteVoiceResult(ctx context.Context, res *VoiceScreeningResult) error

	// WriteScheduling persists an interview scheduling record.
	WriteScheduling(ctx context.Context, rec *InterviewScheduling) error

	// WriteDecision persists the final decision.
	WriteDecision(ctx context.Context, dec *FinalDecision) error
}

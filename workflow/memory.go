package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation for tests and examples.
type MemoryStore struct {
	mu           sync.Mutex
	candidates   map[string]*Candidate
	audits       map[string][]*AuditRecord
	cvResults    map[string][]*CVScreeningResult
	voiceResults map[string][]*VoiceScreeningResult
	schedulings  map[string][]*InterviewScheduling
	decisions    map[string]*FinalDecision
}

// NewMemoryStore creates an empty in-memory candidate store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		candidates:   make(map[string]*Candidate),
		audits:       make(map[string][]*AuditRecord),
		cvResults:    make(map[string][]*CVScreeningResult),
		voiceResults: make(map[string][]*VoiceScreeningResult),
		schedulings:  make(map[string][]*InterviewScheduling),
		decisions:    make(map[string]*FinalDecision),
	}
}

// CreateCandidate implements Store.
func (s *MemoryStore) CreateCandidate(ctx context.Context, c *Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[c.ID]; ok {
		return fmt.Errorf("%w: %s", ErrCandidateExists, c.ID)
	}
	for _, existing := range s.candidates {
		if existing.Email == c.Email {
			return fmt.Errorf("%w: email %s", ErrCandidateExists, c.Email)
		}
	}
	cp := *c
	s.candidates[c.ID] = &cp
	return nil
}

// GetCandidate implements Store.
func (s *MemoryStore) GetCandidate(ctx context.Context, candidateID string) (*Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[candidateID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	cp := *c
	return &cp, nil
}

// GetCandidateByEmail implements Store.
func (s *MemoryStore) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.candidates {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: email %s", ErrCandidateNotFound, email)
}

// UpdateStatus implements Store.
func (s *MemoryStore) UpdateStatus(ctx context.Context, candidateID string, status CandidateStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[candidateID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

// AppendAudit implements Store.
func (s *MemoryStore) AppendAudit(ctx context.Context, rec *AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.audits[rec.CandidateID] = append(s.audits[rec.CandidateID], &cp)
	return nil
}

// AuditTrail implements Store.
func (s *MemoryStore) AuditTrail(ctx context.Context, candidateID string) ([]*AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.audits[candidateID]
	out := make([]*AuditRecord, len(records))
	copy(out, records)
	return out, nil
}

// WriteCVResult implements Store.
func (s *MemoryStore) WriteCVResult(ctx context.Context, res *CVScreeningResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *res
	s.cvResults[res.CandidateID] = append(s.cvResults[res.CandidateID], &cp)
	return nil
}

// WriteVoiceResult implements Store.
func (s *MemoryStore) WriteVoiceResult(ctx context.Context, res *VoiceScreeningResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *res
	s.voiceResults[res.CandidateID] = append(s.voiceResults[res.CandidateID], &cp)
	return nil
}

// WriteScheduling implements Store.
func (s *MemoryStore) WriteScheduling(ctx context.Context, rec *InterviewScheduling) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.schedulings[rec.CandidateID] = append(s.schedulings[rec.CandidateID], &cp)
	return nil
}

// WriteDecision implements Store.
func (s *MemoryStore) WriteDecision(ctx context.Context, dec *FinalDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *dec
	s.decisions[dec.CandidateID] = &cp
	return nil
}

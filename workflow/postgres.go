package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema:
//
//	CREATE TABLE hirepg_candidates (
//	    id                  TEXT PRIMARY KEY,
//	    full_name           TEXT NOT NULL,
//	    email               TEXT NOT NULL UNIQUE,
//	    phone_number        TEXT,
//	    cv_file_path        TEXT,
//	    parsed_cv_file_path TEXT,
//	    status              TEXT NOT NULL,
//	    auth_code           TEXT,
//	    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE hirepg_audit_trail (
//	    id           TEXT PRIMARY KEY,
//	    candidate_id TEXT NOT NULL REFERENCES hirepg_candidates(id),
//	    from_status  TEXT NOT NULL,
//	    to_status    TEXT NOT NULL,
//	    event        TEXT NOT NULL,
//	    note         TEXT,
//	    at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE hirepg_cv_results (
//	    id                     TEXT PRIMARY KEY,
//	    candidate_id           TEXT NOT NULL REFERENCES hirepg_candidates(id),
//	    job_title              TEXT,
//	    skills_match_score     DOUBLE PRECISION NOT NULL,
//	    experience_match_score DOUBLE PRECISION NOT NULL,
//	    education_match_score  DOUBLE PRECISION NOT NULL,
//	    overall_fit_score      DOUBLE PRECISION NOT NULL,
//	    feedback               TEXT,
//	    created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE hirepg_voice_results (
//	    id                  TEXT PRIMARY KEY,
//	    candidate_id        TEXT NOT NULL REFERENCES hirepg_candidates(id),
//	    call_sid            TEXT,
//	    transcript          TEXT,
//	    sentiment_score     DOUBLE PRECISION NOT NULL,
//	    confidence_score    DOUBLE PRECISION NOT NULL,
//	    communication_score DOUBLE PRECISION NOT NULL,
//	    proficiency_score   DOUBLE PRECISION NOT NULL,
//	    summary             TEXT,
//	    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE hirepg_schedulings (
//	    id                TEXT PRIMARY KEY,
//	    candidate_id      TEXT NOT NULL REFERENCES hirepg_candidates(id),
//	    calendar_event_id TEXT,
//	    event_summary     TEXT,
//	    start_time        TIMESTAMPTZ NOT NULL,
//	    end_time          TIMESTAMPTZ NOT NULL,
//	    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE hirepg_decisions (
//	    id            TEXT PRIMARY KEY,
//	    candidate_id  TEXT NOT NULL UNIQUE REFERENCES hirepg_candidates(id),
//	    overall_score DOUBLE PRECISION NOT NULL,
//	    decision      TEXT NOT NULL,
//	    rationale     TEXT,
//	    human_notes   TEXT,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);

// PostgresStore implements Store using PostgreSQL with pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL candidate store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateCandidate implements Store.
func (s *PostgresStore) CreateCandidate(ctx context.Context, c *Candidate) error {
	query := `
		INSERT INTO hirepg_candidates
			(id, full_name, email, phone_number, cv_file_path, parsed_cv_file_path, status, auth_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT DO NOTHING
	`
	tag, err := s.pool.Exec(ctx, query,
		c.ID, c.FullName, c.Email, c.PhoneNumber, c.CVFilePath, c.ParsedCVPath,
		c.Status, c.AuthCode, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrCandidateExists, c.Email)
	}
	return nil
}

// GetCandidate implements Store.
func (s *PostgresStore) GetCandidate(ctx context.Context, candidateID string) (*Candidate, error) {
	query := `
		SELECT id, full_name, email, phone_number, cv_file_path, parsed_cv_file_path, status, auth_code, created_at, updated_at
		FROM hirepg_candidates
		WHERE id = $1
	`
	return s.scanCandidate(s.pool.QueryRow(ctx, query, candidateID), candidateID)
}

// GetCandidateByEmail implements Store.
func (s *PostgresStore) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	query := `
		SELECT id, full_name, email, phone_number, cv_file_path, parsed_cv_file_path, status, auth_code, created_at, updated_at
		FROM hirepg_candidates
		WHERE email = $1
	`
	return s.scanCandidate(s.pool.QueryRow(ctx, query, email), email)
}

func (s *PostgresStore) scanCandidate(row pgx.Row, key string) (*Candidate, error) {
	var c Candidate
	err := row.Scan(
		&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.CVFilePath, &c.ParsedCVPath,
		&c.Status, &c.AuthCode, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// UpdateStatus implements Store.
func (s *PostgresStore) UpdateStatus(ctx context.Context, candidateID string, status CandidateStatus) error {
	query := `
		UPDATE hirepg_candidates
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query, candidateID, status)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	return nil
}

// AppendAudit implements Store.
func (s *PostgresStore) AppendAudit(ctx context.Context, rec *AuditRecord) error {
	query := `
		INSERT INTO hirepg_audit_trail (id, candidate_id, from_status, to_status, event, note, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.pool.Exec(ctx, query,
		rec.ID, rec.CandidateID, rec.From, rec.To, rec.Event, rec.Note, rec.At,
	); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// AuditTrail implements Store.
func (s *PostgresStore) AuditTrail(ctx context.Context, candidateID string) ([]*AuditRecord, error) {
	query := `
		SELECT id, candidate_id, from_status, to_status, event, note, at
		FROM hirepg_audit_trail
		WHERE candidate_id = $1
		ORDER BY at ASC
	`
	rows, err := s.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail: %w", err)
	}
	defer rows.Close()

	var records []*AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.CandidateID, &rec.From, &rec.To, &rec.Event, &rec.Note, &rec.At); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// WriteCVResult implements Store.
func (s *PostgresStore) WriteCVResult(ctx context.Context, res *CVScreeningResult) error {
	query := `
		INSERT INTO hirepg_cv_results
			(id, candidate_id, job_title, skills_match_score, experience_match_score, education_match_score, overall_fit_score, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := s.pool.Exec(ctx, query,
		res.ID, res.CandidateID, res.JobTitle, res.SkillsMatchScore, res.ExperienceMatchScore,
		res.EducationMatchScore, res.OverallFitScore, res.Feedback, res.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to write cv result: %w", err)
	}
	return nil
}

// WriteVoiceResult implements Store.
func (s *PostgresStore) WriteVoiceResult(ctx context.Context, res *VoiceScreeningResult) error {
	query := `
		INSERT INTO hirepg_voice_results
			(id, candidate_id, call_sid, transcript, sentiment_score, confidence_score, communication_score, proficiency_score, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := s.pool.Exec(ctx, query,
		res.ID, res.CandidateID, res.CallSID, res.Transcript, res.SentimentScore,
		res.ConfidenceScore, res.CommunicationScore, res.ProficiencyScore, res.Summary, res.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to write voice result: %w", err)
	}
	return nil
}

// WriteScheduling implements Store.
func (s *PostgresStore) WriteScheduling(ctx context.Context, rec *InterviewScheduling) error {
	query := `
		INSERT INTO hirepg_schedulings
			(id, candidate_id, calendar_event_id, event_summary, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.pool.Exec(ctx, query,
		rec.ID, rec.CandidateID, rec.CalendarEventID, rec.EventSummary, rec.StartTime, rec.EndTime, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to write scheduling: %w", err)
	}
	return nil
}

// WriteDecision implements Store. At most one decision per candidate; a
// second write replaces the first.
func (s *PostgresStore) WriteDecision(ctx context.Context, dec *FinalDecision) error {
	query := `
		INSERT INTO hirepg_decisions (id, candidate_id, overall_score, decision, rationale, human_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (candidate_id) DO UPDATE
		SET overall_score = EXCLUDED.overall_score,
		    decision = EXCLUDED.decision,
		    rationale = EXCLUDED.rationale,
		    human_notes = EXCLUDED.human_notes,
		    created_at = EXCLUDED.created_at
	`
	if _, err := s.pool.Exec(ctx, query,
		dec.ID, dec.CandidateID, dec.OverallScore, dec.Decision, dec.Rationale, dec.HumanNotes, dec.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to write decision: %w", err)
	}
	return nil
}

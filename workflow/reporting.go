package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ReportingStore is a read-only query layer over the candidate tables for
// dashboards and batch exports. It runs on database/sql so reporting jobs
// can share a connection pool with other lib/pq tooling, independent of the
// pgx pool the write path uses.
type ReportingStore struct {
	db *sql.DB
}

// OpenReporting opens a reporting connection with the postgres driver.
func OpenReporting(dsn string) (*ReportingStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open reporting db: %w", err)
	}
	return &ReportingStore{db: db}, nil
}

// NewReportingStore wraps an existing database handle.
func NewReportingStore(db *sql.DB) *ReportingStore {
	return &ReportingStore{db: db}
}

// Close closes the underlying database handle.
func (r *ReportingStore) Close() error {
	return r.db.Close()
}

// StatusCounts returns the number of candidates in each status.
func (r *ReportingStore) StatusCounts(ctx context.Context) (map[CandidateStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM hirepg_candidates
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[CandidateStatus]int)
	for rows.Next() {
		var status CandidateStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CandidateSummary is one row of the pipeline overview.
type CandidateSummary struct {
	ID        string
	FullName  string
	Email     string
	Status    CandidateStatus
	UpdatedAt time.Time
}

// ListByStatus returns candidates currently in the given status, most
// recently updated first.
func (r *ReportingStore) ListByStatus(ctx context.Context, status CandidateStatus, limit int) ([]*CandidateSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, email, status, updated_at
		FROM hirepg_candidates
		WHERE status = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []*CandidateSummary
	for rows.Next() {
		var s CandidateSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.Status, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate summary: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// StalledCandidates returns non-terminal candidates whose status has not
// changed since the cutoff. These are the candidates the resume flow picks
// up.
func (r *ReportingStore) StalledCandidates(ctx context.Context, cutoff time.Time) ([]*CandidateSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, email, status, updated_at
		FROM hirepg_candidates
		WHERE status NOT IN ($1, $2, $3)
		  AND updated_at < $4
		ORDER BY updated_at ASC
	`, StatusCVRejected, StatusVoiceRejected, StatusDecisionMade, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stalled candidates: %w", err)
	}
	defer rows.Close()

	var out []*CandidateSummary
	for rows.Next() {
		var s CandidateSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.Status, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate summary: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// AverageScores returns the average CV fit score and voice proficiency score
// across all screened candidates.
func (r *ReportingStore) AverageScores(ctx context.Context) (cvFit, voiceProficiency float64, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT AVG(overall_fit_score) FROM hirepg_cv_results), 0),
			COALESCE((SELECT AVG(proficiency_score) FROM hirepg_voice_results), 0)
	`).Scan(&cvFit, &voiceProficiency)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query average scores: %w", err)
	}
	return cvFit, voiceProficiency, nil
}

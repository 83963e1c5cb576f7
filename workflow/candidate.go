package workflow

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Candidate is the persisted candidate record.
type Candidate struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	PhoneNumber  string          `json:"phone_number,omitempty"`
	CVFilePath   string          `json:"cv_file_path,omitempty"`
	ParsedCVPath string          `json:"parsed_cv_file_path,omitempty"`
	Status       CandidateStatus `json:"status"`
	AuthCode     string          `json:"auth_code,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewCandidate creates a candidate record in the initial applied status,
// with a generated id and voice-screening auth code.
func NewCandidate(fullName, email, phone, cvPath string) *Candidate {
	now := time.Now()
	return &Candidate{
		ID:          uuid.New().String(),
		FullName:    fullName,
		Email:       email,
		PhoneNumber: phone,
		CVFilePath:  cvPath,
		Status:      StatusApplied,
		AuthCode:    GenerateAuthCode(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GenerateAuthCode generates a 6-digit random authentication code used to
// verify a candidate on the voice screening call.
func GenerateAuthCode() string {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			n = big.NewInt(int64(i) % 10)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code)
}

// CVScreeningResult holds the scores produced by CV screening.
type CVScreeningResult struct {
	ID                   string    `json:"id"`
	CandidateID          string    `json:"candidate_id"`
	JobTitle             string    `json:"job_title,omitempty"`
	SkillsMatchScore     float64   `json:"skills_match_score"`
	ExperienceMatchScore float64   `json:"experience_match_score"`
	EducationMatchScore  float64   `json:"education_match_score"`
	OverallFitScore      float64   `json:"overall_fit_score"`
	Feedback             string    `json:"feedback,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// VoiceScreeningResult holds the judgment of a completed voice interview.
type VoiceScreeningResult struct {
	ID                 string    `json:"id"`
	CandidateID        string    `json:"candidate_id"`
	CallSID            string    `json:"call_sid,omitempty"`
	Transcript         string    `json:"transcript,omitempty"`
	SentimentScore     float64   `json:"sentiment_score"`
	ConfidenceScore    float64   `json:"confidence_score"`
	CommunicationScore float64   `json:"communication_score"`
	ProficiencyScore   float64   `json:"proficiency_score"`
	Summary            string    `json:"summary,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// InterviewScheduling records a scheduled on-site interview.
type InterviewScheduling struct {
	ID              string    `json:"id"`
	CandidateID     string    `json:"candidate_id"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	EventSummary    string    `json:"event_summary,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// FinalDecision records the final hiring decision for a candidate.
type FinalDecision struct {
	ID           string    `json:"id"`
	CandidateID  string    `json:"candidate_id"`
	OverallScore float64   `json:"overall_score"`
	Decision     string    `json:"decision"` // "hired", "rejected", "pending"
	Rationale    string    `json:"rationale,omitempty"`
	HumanNotes   string    `json:"human_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditRecord is one entry of the status transition audit trail.
type AuditRecord struct {
	ID          string          `json:"id"`
	CandidateID string          `json:"candidate_id"`
	From        CandidateStatus `json:"from"`
	To          CandidateStatus `json:"to"`
	Event       EventKind       `json:"event"`
	Note        string          `json:"note,omitempty"`
	At          time.Time       `json:"at"`
}

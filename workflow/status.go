// Package workflow drives each candidate through the screening pipeline.
//
// It combines a coarse per-candidate status enum with the fine-grained
// checklist: status is a function of checklist completion, never an
// independent source of truth. A milestone is reached only once every
// checklist substep mapped to it is done.
//
// Status transitions:
//
//	applied -> cv_screened                  (CV screening phase complete)
//	cv_screened -> cv_passed | cv_rejected  (screening outcome)
//	cv_passed -> voice_invitation_sent      (invitation email sent)
//	voice_invitation_sent -> voice_done     (voice interview completed)
//	voice_done -> voice_passed | voice_rejected (judging outcome)
//	voice_passed -> interview_scheduled     (calendar event created)
//	interview_scheduled -> decision_made    (final decision recorded)
//
// Terminal statuses (decision_made, cv_rejected, voice_rejected) cannot
// transition further.
package workflow

import (
	"database/sql/driver"
	"fmt"
)

// CandidateStatus represents the coarse milestone a candidate has reached.
type CandidateStatus string

const (
	// StatusApplied is the initial status when a candidate record is created.
	StatusApplied CandidateStatus = "applied"

	// StatusCVScreened indicates the CV has been evaluated.
	StatusCVScreened CandidateStatus = "cv_screened"

	// StatusCVPassed indicates the CV screening outcome was positive.
	StatusCVPassed CandidateStatus = "cv_passed"

	// StatusCVRejected indicates the CV screening outcome was negative.
	StatusCVRejected CandidateStatus = "cv_rejected"

	// StatusVoiceInvitationSent indicates the voice interview invitation
	// email has been sent.
	StatusVoiceInvitationSent CandidateStatus = "voice_invitation_sent"

	// StatusVoiceDone indicates the voice interview has been completed.
	StatusVoiceDone CandidateStatus = "voice_done"

	// StatusVoicePassed indicates the voice interview judging was positive.
	StatusVoicePassed CandidateStatus = "voice_passed"

	// StatusVoiceRejected indicates the voice interview judging was negative.
	StatusVoiceRejected CandidateStatus = "voice_rejected"

	// StatusInterviewScheduled indicates the on-site interview has been
	// scheduled.
	StatusInterviewScheduled CandidateStatus = "interview_scheduled"

	// StatusDecisionMade indicates the final hiring decision is recorded.
	StatusDecisionMade CandidateStatus = "decision_made"
)

// AllStatuses returns all possible candidate statuses in pipeline order.
func AllStatuses() []CandidateStatus {
	return []CandidateStatus{
		StatusApplied,
		StatusCVScreened,
		StatusCVPassed,
		StatusCVRejected,
		StatusVoiceInvitationSent,
		StatusVoiceDone,
		StatusVoicePassed,
		StatusVoiceRejected,
		StatusInterviewScheduled,
		StatusDecisionMade,
	}
}

// TerminalStatuses returns all statuses with no outgoing transitions.
func TerminalStatuses() []CandidateStatus {
	return []CandidateStatus{
		StatusCVRejected,
		StatusVoiceRejected,
		StatusDecisionMade,
	}
}

// IsValid returns true if the status is a known value. External callers must
// treat unknown strings as an error, never as a new implicit state.
func (s CandidateStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusCVScreened, StatusCVPassed, StatusCVRejected,
		StatusVoiceInvitationSent, StatusVoiceDone, StatusVoicePassed,
		StatusVoiceRejected, StatusInterviewScheduled, StatusDecisionMade:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status has no outgoing transitions.
func (s CandidateStatus) IsTerminal() bool {
	switch s {
	case StatusCVRejected, StatusVoiceRejected, StatusDecisionMade:
		return true
	default:
		return false
	}
}

// IsRejection returns true for the negative screening outcomes.
func (s CandidateStatus) IsRejection() bool {
	return s == StatusCVRejected || s == StatusVoiceRejected
}

// CanTransitionTo returns true if a transition from this status to the
// target status is valid.
func (s CandidateStatus) CanTransitionTo(target CandidateStatus) bool {
	if s.IsTerminal() || s == target {
		return false
	}

	switch s {
	case StatusApplied:
		return target == StatusCVScreened
	case StatusCVScreened:
		return target == StatusCVPassed || target == StatusCVRejected
	case StatusCVPassed:
		return target == StatusVoiceInvitationSent
	case StatusVoiceInvitationSent:
		return target == StatusVoiceDone
	case StatusVoiceDone:
		return target == StatusVoicePassed || target == StatusVoiceRejected
	case StatusVoicePassed:
		return target == StatusInterviewScheduled
	case StatusInterviewScheduled:
		return target == StatusDecisionMade
	}

	return false
}

// String returns the string representation of the status.
func (s CandidateStatus) String() string {
	return string(s)
}

// Value implements driver.Valuer for database serialization.
func (s CandidateStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan implements sql.Scanner for database deserialization.
func (s *CandidateStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		status := CandidateStatus(v)
		if !status.IsValid() {
			return fmt.Errorf("workflow: invalid status %q", v)
		}
		*s = status
		return nil
	case []byte:
		status := CandidateStatus(v)
		if !status.IsValid() {
			return fmt.Errorf("workflow: invalid status %q", v)
		}
		*s = status
		return nil
	default:
		return fmt.Errorf("workflow: cannot scan type %T into CandidateStatus", src)
	}
}

// Transition represents a status transition with validation.
type Transition struct {
	From CandidateStatus
	To   CandidateStatus
}

// Validate returns an error if the transition is invalid.
func (t Transition) Validate() error {
	if !t.From.IsValid() {
		return fmt.Errorf("workflow: invalid source status %q", t.From)
	}
	if !t.To.IsValid() {
		return fmt.Errorf("workflow: invalid target status %q", t.To)
	}
	if !t.From.CanTransitionTo(t.To) {
		return fmt.Errorf("workflow: invalid transition from %q to %q", t.From, t.To)
	}
	return nil
}

// ValidTransitions returns all valid status transitions.
func ValidTransitions() []Transition {
	return []Transition{
		{From: StatusApplied, To: StatusCVScreened},
		{From: StatusCVScreened, To: StatusCVPassed},
		{From: StatusCVScreened, To: StatusCVRejected},
		{From: StatusCVPassed, To: StatusVoiceInvitationSent},
		{From: StatusVoiceInvitationSent, To: StatusVoiceDone},
		{From: StatusVoiceDone, To: StatusVoicePassed},
		{From: StatusVoiceDone, To: StatusVoiceRejected},
		{From: StatusVoicePassed, To: StatusInterviewScheduled},
		{From: StatusInterviewScheduled, To: StatusDecisionMade},
	}
}

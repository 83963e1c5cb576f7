package workflow

import (
	"testing"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	invalid := []CandidateStatus{"", "unknown", "APPLIED", "cv-screened"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := map[CandidateStatus]bool{
		StatusCVRejected:    true,
		StatusVoiceRejected: true,
		StatusDecisionMade:  true,
	}

	for _, s := range AllStatuses() {
		if got := s.IsTerminal(); got != terminal[s] {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, terminal[s])
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from  CandidateStatus
		to    CandidateStatus
		valid bool
	}{
		{StatusApplied, StatusCVScreened, true},
		{StatusCVScreened, StatusCVPassed, true},
		{StatusCVScreened, StatusCVRejected, true},
		{StatusCVPassed, StatusVoiceInvitationSent, true},
		{StatusVoiceInvitationSent, StatusVoiceDone, true},
		{StatusVoiceDone, StatusVoicePassed, true},
		{StatusVoiceDone, StatusVoiceRejected, true},
		{StatusVoicePassed, StatusInterviewScheduled, true},
		{StatusInterviewScheduled, StatusDecisionMade, true},

		// No skipping milestones
		{StatusApplied, StatusCVPassed, false},
		{StatusApplied, StatusDecisionMade, false},
		{StatusCVPassed, StatusVoiceDone, false},
		{StatusVoiceInvitationSent, StatusVoicePassed, false},

		// No going backward
		{StatusCVPassed, StatusApplied, false},
		{StatusVoiceDone, StatusCVScreened, false},

		// No self transitions
		{StatusApplied, StatusApplied, false},
		{StatusDecisionMade, StatusDecisionMade, false},

		// Terminal statuses have no outgoing transitions
		{StatusCVRejected, StatusVoiceInvitationSent, false},
		{StatusVoiceRejected, StatusInterviewScheduled, false},
		{StatusDecisionMade, StatusApplied, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
				t.Errorf("CanTransitionTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.valid)
			}
		})
	}
}

func TestTerminalStatusesHaveNoOutgoing(t *testing.T) {
	for _, terminal := range TerminalStatuses() {
		for _, target := range AllStatuses() {
			if terminal.CanTransitionTo(target) {
				t.Errorf("terminal status %s allows transition to %s", terminal, target)
			}
		}
	}
}

func TestValidTransitionsAllValidate(t *testing.T) {
	for _, tr := range ValidTransitions() {
		if err := tr.Validate(); err != nil {
			t.Errorf("transition %s -> %s failed validation: %v", tr.From, tr.To, err)
		}
	}
}

func TestTransitionValidateRejectsUnknown(t *testing.T) {
	tests := []Transition{
		{From: "bogus", To: StatusCVScreened},
		{From: StatusApplied, To: "bogus"},
		{From: StatusApplied, To: StatusDecisionMade},
	}
	for _, tr := range tests {
		if err := tr.Validate(); err == nil {
			t.Errorf("expected validation error for %s -> %s", tr.From, tr.To)
		}
	}
}

func TestStatusScan(t *testing.T) {
	var s CandidateStatus
	if err := s.Scan("voice_done"); err != nil {
		t.Fatalf("Scan(string) returned error: %v", err)
	}
	if s != StatusVoiceDone {
		t.Errorf("expected voice_done, got %s", s)
	}

	if err := s.Scan([]byte("cv_passed")); err != nil {
		t.Fatalf("Scan([]byte) returned error: %v", err)
	}
	if s != StatusCVPassed {
		t.Errorf("expected cv_passed, got %s", s)
	}

	if err := s.Scan("not_a_status"); err == nil {
		t.Error("expected error for unknown status string")
	}
	if err := s.Scan(42); err == nil {
		t.Error("expected error for unsupported scan type")
	}
}

func TestPhaseStepsCoverAllStatuses(t *testing.T) {
	for _, s := range AllStatuses() {
		if len(PhaseSteps(s)) == 0 {
			t.Errorf("PhaseSteps(%s) is empty", s)
		}
	}
}

func TestActionForStepCoversDefaultSteps(t *testing.T) {
	seen := make(map[ActionKind]bool)
	for _, label := range DefaultSteps() {
		action, ok := ActionForStep(label)
		if !ok {
			t.Errorf("no action for step %q", label)
			continue
		}
		if seen[action] {
			t.Errorf("action %s routed from more than one step", action)
		}
		seen[action] = true
	}

	if _, ok := ActionForStep("Unknown step"); ok {
		t.Error("expected no action for unknown step label")
	}
}

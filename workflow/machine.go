package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hirepg/hirepg/checklist"
)

var (
	// ErrPrematureTransition is returned when a status advance is attempted
	// before every checklist substep of the target milestone is done. The
	// machine performs no write; the caller may retry after the missing
	// steps complete.
	ErrPrematureTransition = errors.New("premature transition")

	// ErrInvalidTransition is returned when the event's target milestone is
	// not reachable from the candidate's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownEvent is returned for an unrecognized event kind.
	ErrUnknownEvent = errors.New("unknown event kind")

	// ErrChecklistComplete is returned by Resume when every checklist step
	// is already done and there is nothing to route.
	ErrChecklistComplete = errors.New("checklist already complete")
)

// StateMachine advances candidates through the screening pipeline.
//
// Every transition is gated by the checklist: the machine accepts a proposed
// next status only if IsPhaseComplete holds for every checklist substep
// mapped to that milestone. On success it persists the new status and
// appends an audit record; on failure nothing is written.
type StateMachine struct {
	candidates Store
	checklists checklist.Store
}

// NewStateMachine creates a state machine over the given stores.
func NewStateMachine(candidates Store, checklists checklist.Store) *StateMachine {
	return &StateMachine{
		candidates: candidates,
		checklists: checklists,
	}
}

// Register creates a candidate record and its checklist together: all steps
// unchecked, status applied. They live and die together; neither is ever
// deleted while the candidate is active.
func (m *StateMachine) Register(ctx context.Context, fullName, email, phone, cvPath string) (*Candidate, error) {
	c := NewCandidate(fullName, email, phone, cvPath)

	if err := m.candidates.CreateCandidate(ctx, c); err != nil {
		return nil, err
	}
	if err := m.checklists.Create(ctx, checklist.New(c.ID, DefaultSteps()...)); err != nil {
		return nil, err
	}
	return c, nil
}

// Advance applies an event to the candidate's status.
//
// The event determines the milestone(s) to reach; each hop is validated
// against the transition graph and gated on checklist phase completion
// before anything is written. A gate failure returns ErrPrematureTransition
// with the status unchanged.
func (m *StateMachine) Advance(ctx context.Context, candidateID string, event Event) (CandidateStatus, error) {
	c, err := m.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", err
	}

	if event.Kind == EventResume {
		// Resume never writes; routing is exposed via Resume.
		return c.Status, nil
	}

	hops, err := m.hopsFor(c.Status, event)
	if err != nil {
		return c.Status, err
	}

	// Gate every hop before the first write, so a failed gate leaves no
	// partial state behind.
	for _, target := range hops {
		complete, err := m.checklists.IsPhaseComplete(ctx, candidateID, PhaseSteps(target))
		if err != nil {
			return c.Status, err
		}
		if !complete {
			return c.Status, fmt.Errorf("%w: candidate %s cannot reach %s, checklist phase incomplete",
				ErrPrematureTransition, candidateID, target)
		}
	}

	if err := m.writeResults(ctx, event); err != nil {
		return c.Status, err
	}

	from := c.Status
	for _, target := range hops {
		if err := m.candidates.UpdateStatus(ctx, candidateID, target); err != nil {
			return from, err
		}
		if err := m.candidates.AppendAudit(ctx, &AuditRecord{
			ID:          uuid.New().String(),
			CandidateID: candidateID,
			From:        from,
			To:          target,
			Event:       event.Kind,
			At:          time.Now(),
		}); err != nil {
			return target, err
		}
		from = target
	}

	return from, nil
}

// ResumeRoute names the single next unchecked step and the action that
// completes it.
type ResumeRoute struct {
	Step   string
	Action ActionKind
}

// Resume computes the route for a stuck candidate: the first unchecked
// checklist step, in order. It never skips an uncompleted step and never
// repeats a completed one, and performs no writes.
func (m *StateMachine) Resume(ctx context.Context, candidateID string) (*ResumeRoute, error) {
	cl, err := m.checklists.Load(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	step, pending := cl.NextUnchecked()
	if !pending {
		return nil, fmt.Errorf("%w: candidate %s", ErrChecklistComplete, candidateID)
	}

	action, ok := ActionForStep(step.Label)
	if !ok {
		return nil, fmt.Errorf("no action for checklist step %q", step.Label)
	}

	return &ResumeRoute{Step: step.Label, Action: action}, nil
}

// hopsFor maps an event to the sequence of statuses to move through,
// validating reachability from the current status.
func (m *StateMachine) hopsFor(current CandidateStatus, event Event) ([]CandidateStatus, error) {
	var hops []CandidateStatus

	switch event.Kind {
	case EventCVScreened:
		outcome := StatusCVRejected
		if event.cvPassed() {
			outcome = StatusCVPassed
		}
		switch current {
		case StatusApplied:
			hops = []CandidateStatus{StatusCVScreened, outcome}
		case StatusCVScreened:
			hops = []CandidateStatus{outcome}
		default:
			return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event.Kind, current)
		}
	case EventVoiceInvited:
		hops = []CandidateStatus{StatusVoiceInvitationSent}
	case EventVoiceDone:
		hops = []CandidateStatus{StatusVoiceDone}
	case EventVoiceJudged:
		if event.voicePassed() {
			hops = []CandidateStatus{StatusVoicePassed}
		} else {
			hops = []CandidateStatus{StatusVoiceRejected}
		}
	case EventInterviewScheduled:
		hops = []CandidateStatus{StatusInterviewScheduled}
	case EventDecision:
		hops = []CandidateStatus{StatusDecisionMade}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Kind)
	}

	// Validate the chain link by link.
	from := current
	for _, target := range hops {
		if !from.CanTransitionTo(target) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, target)
		}
		from = target
	}

	return hops, nil
}

// writeResults persists any result payload carried by the event.
func (m *StateMachine) writeResults(ctx context.Context, event Event) error {
	if event.CVResult != nil {
		if err := m.candidates.WriteCVResult(ctx, event.CVResult); err != nil {
			return err
		}
	}
	if event.VoiceResult != nil {
		if err := m.candidates.WriteVoiceResult(ctx, event.VoiceResult); err != nil {
			return err
		}
	}
	if event.Scheduling != nil {
		if err := m.candidates.WriteScheduling(ctx, event.Scheduling); err != nil {
			return err
		}
	}
	if event.Decision != nil {
		if err := m.candidates.WriteDecision(ctx, event.Decision); err != nil {
			return err
		}
	}
	return nil
}

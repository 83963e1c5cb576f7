package workflow

// EventKind identifies what happened in the pipeline and therefore which
// milestone(s) the state machine should try to reach.
type EventKind string

const (
	// EventCVScreened reports a finished CV screening. Routes to cv_passed
	// or cv_rejected depending on the screening outcome.
	EventCVScreened EventKind = "cv_screened_event"

	// EventVoiceInvited reports a sent voice interview invitation.
	EventVoiceInvited EventKind = "voice_invited_event"

	// EventVoiceDone reports a completed voice interview.
	EventVoiceDone EventKind = "voice_done_event"

	// EventVoiceJudged reports a judged voice interview. Routes to
	// voice_passed or voice_rejected depending on the judgment.
	EventVoiceJudged EventKind = "voice_judged_event"

	// EventInterviewScheduled reports a scheduled on-site interview.
	EventInterviewScheduled EventKind = "interview_scheduled_event"

	// EventDecision reports a recorded final decision.
	EventDecision EventKind = "decision_event"

	// EventResume asks the machine to compute the next unchecked step for
	// a stuck candidate and route to its action. It never writes.
	EventResume EventKind = "resume_event"
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	return string(k)
}

// DefaultPassThreshold is the minimum overall fit score required to pass a
// screening phase when the event does not carry an explicit outcome.
const DefaultPassThreshold = 7.0

// Event carries a pipeline occurrence into the state machine. Exactly the
// payload fields relevant to the Kind are set.
type Event struct {
	Kind EventKind

	// Passed is the screening/judging outcome for EventCVScreened and
	// EventVoiceJudged. When a result payload is attached, the outcome is
	// derived from its overall score against the pass threshold and
	// Passed is ignored.
	Passed bool

	// PassThreshold overrides DefaultPassThreshold for score-derived
	// outcomes when set to a positive value.
	PassThreshold float64

	CVResult    *CVScreeningResult
	VoiceResult *VoiceScreeningResult
	Scheduling  *InterviewScheduling
	Decision    *FinalDecision
}

// threshold returns the pass threshold in effect for this event.
func (e Event) threshold() float64 {
	if e.PassThreshold > 0 {
		return e.PassThreshold
	}
	return DefaultPassThreshold
}

// cvPassed derives the CV screening outcome.
func (e Event) cvPassed() bool {
	if e.CVResult != nil {
		return e.CVResult.OverallFitScore >= e.threshold()
	}
	return e.Passed
}

// voicePassed derives the voice judging outcome.
func (e Event) voicePassed() bool {
	if e.VoiceResult != nil {
		return e.VoiceResult.ProficiencyScore >= e.threshold()
	}
	return e.Passed
}

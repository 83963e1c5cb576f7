package workflow

// Canonical checklist step labels, in phase order. The checklist created for
// every new candidate contains exactly these steps, all unchecked.
const (
	StepCVUploaded         = "CV uploaded"
	StepCVParsed           = "CV parsed"
	StepCVScreened         = "CV screened"
	StepVoiceInviteSent    = "Voice invitation sent"
	StepVoiceCompleted     = "Voice interview completed"
	StepVoiceJudged        = "Voice interview judged"
	StepInterviewScheduled = "Interview scheduled"
	StepDecisionRecorded   = "Decision recorded"
)

// DefaultSteps returns the canonical step labels in phase order.
func DefaultSteps() []string {
	return []string{
		StepCVUploaded,
		StepCVParsed,
		StepCVScreened,
		StepVoiceInviteSent,
		StepVoiceCompleted,
		StepVoiceJudged,
		StepInterviewScheduled,
		StepDecisionRecorded,
	}
}

// PhaseSteps maps a milestone to the checklist substeps that must all be
// done before the status may advance to it. Pass/reject outcomes are
// boundaries of the phase they conclude, so they share its steps. The
// applied-phase intake steps gate the first advance: applied is the initial
// status and is never itself a transition target, so its steps fold into
// the CV screening gate.
func PhaseSteps(status CandidateStatus) []string {
	switch status {
	case StatusApplied:
		return []string{StepCVUploaded, StepCVParsed}
	case StatusCVScreened, StatusCVPassed, StatusCVRejected:
		return []string{StepCVUploaded, StepCVParsed, StepCVScreened}
	case StatusVoiceInvitationSent:
		return []string{StepVoiceInviteSent}
	case StatusVoiceDone:
		return []string{StepVoiceCompleted}
	case StatusVoicePassed, StatusVoiceRejected:
		return []string{StepVoiceJudged}
	case StatusInterviewScheduled:
		return []string{StepInterviewScheduled}
	case StatusDecisionMade:
		return []string{StepDecisionRecorded}
	default:
		return nil
	}
}

// ActionKind identifies a pipeline action that a checklist step routes to.
// Each kind has a fixed input/output contract; the supervisor dispatches
// them through a single typed table.
type ActionKind string

const (
	ActionIngestCV          ActionKind = "ingest_cv"
	ActionParseCV           ActionKind = "parse_cv"
	ActionScreenCV          ActionKind = "screen_cv"
	ActionSendVoiceInvite   ActionKind = "send_voice_invite"
	ActionRunVoiceInterview ActionKind = "run_voice_interview"
	ActionJudgeVoice        ActionKind = "judge_voice"
	ActionScheduleInterview ActionKind = "schedule_interview"
	ActionRecordDecision    ActionKind = "record_decision"
)

// String returns the string representation of the action kind.
func (k ActionKind) String() string {
	return string(k)
}

// ActionForStep routes a checklist step label to the action that completes
// it. The second return value is false for unknown labels.
func ActionForStep(label string) (ActionKind, bool) {
	switch label {
	case StepCVUploaded:
		return ActionIngestCV, true
	case StepCVParsed:
		return ActionParseCV, true
	case StepCVScreened:
		return ActionScreenCV, true
	case StepVoiceInviteSent:
		return ActionSendVoiceInvite, true
	case StepVoiceCompleted:
		return ActionRunVoiceInterview, true
	case StepVoiceJudged:
		return ActionJudgeVoice, true
	case StepInterviewScheduled:
		return ActionScheduleInterview, true
	case StepDecisionRecorded:
		return ActionRecordDecision, true
	default:
		return "", false
	}
}

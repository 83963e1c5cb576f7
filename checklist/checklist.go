// Package checklist maintains the fine-grained, human-auditable step log for
// each candidate's workflow.
//
// A checklist is an ordered list of atomic step flags plus free-text notes,
// persisted as one small document per candidate. It is the source of truth
// that gates coarse status transitions: a milestone may only be reached once
// every checklist substep mapped to it is done.
package checklist

import (
	"strings"
	"time"
)

// Step is one atomic, human-auditable workflow step.
type Step struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Note is a free-text annotation attached to the checklist.
type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Checklist is the ordered step sequence for one candidate.
type Checklist struct {
	CandidateID string `json:"candidate_id"`
	Steps       []Step `json:"steps"`
	Notes       []Note `json:"notes,omitempty"`
}

// New creates a checklist with all steps unchecked, in the given order.
func New(candidateID string, labels ...string) *Checklist {
	steps := make([]Step, len(labels))
	for i, label := range labels {
		steps[i] = Step{Label: label}
	}
	return &Checklist{CandidateID: candidateID, Steps: steps}
}

// Find returns the index of the step with the given label, or -1.
func (c *Checklist) Find(label string) int {
	for i, s := range c.Steps {
		if s.Label == label {
			return i
		}
	}
	return -1
}

// IsDone reports whether the named step exists and is done.
func (c *Checklist) IsDone(label string) bool {
	i := c.Find(label)
	return i >= 0 && c.Steps[i].Done
}

// NextUnchecked returns the first step that is not done, in checklist order.
// The second return value is false when every step is complete.
func (c *Checklist) NextUnchecked() (Step, bool) {
	for _, s := range c.Steps {
		if !s.Done {
			return s, true
		}
	}
	return Step{}, false
}

// AllDone reports whether every step is complete.
func (c *Checklist) AllDone() bool {
	_, pending := c.NextUnchecked()
	return !pending
}

// Markdown renders the checklist for display and audit, one line per step in
// phase order. It is never the source of truth.
func (c *Checklist) Markdown() string {
	var b strings.Builder
	for _, s := range c.Steps {
		if s.Done {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(s.Label)
		b.WriteByte('\n')
	}
	return b.String()
}

// Clone returns a deep copy of the checklist.
func (c *Checklist) Clone() *Checklist {
	out := &Checklist{
		CandidateID: c.CandidateID,
		Steps:       make([]Step, len(c.Steps)),
		Notes:       make([]Note, len(c.Notes)),
	}
	copy(out.Steps, c.Steps)
	copy(out.Notes, c.Notes)
	return out
}

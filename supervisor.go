package hirepg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hirepg/hirepg/checklist"
	"github.com/hirepg/hirepg/checkpoint"
	"github.com/hirepg/hirepg/compaction"
	"github.com/hirepg/hirepg/hooks"
	"github.com/hirepg/hirepg/types"
	"github.com/hirepg/hirepg/workflow"
)

// Supervisor is the orchestration core of the screening pipeline.
//
// It serializes all work for one candidate behind a per-candidate lane, runs
// conversation turns against the agent, applies checklist and status writes
// in a fixed order (checklist, then status, then checkpoint), and compacts
// the thread history at the end of a turn when it is over budget.
type Supervisor struct {
	cfg *internalConfig

	candidates  workflow.Store
	checklists  checklist.Store
	checkpoints checkpoint.Store
	rewriter    *checkpoint.Rewriter
	compactor   *compaction.Compactor
	machine     *workflow.StateMachine

	mu    sync.Mutex
	lanes map[string]*sync.Mutex
}

// New creates a Supervisor over the given stores.
func New(candidates workflow.Store, checklists checklist.Store, checkpoints checkpoint.Store, cfg Config, opts ...Option) (*Supervisor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if candidates == nil || checklists == nil || checkpoints == nil {
		return nil, fmt.Errorf("%w: all three stores are required", ErrInvalidConfig)
	}

	c := newInternalConfig(cfg)
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.invoker == nil {
		if c.client == nil {
			return nil, fmt.Errorf("%w: Client is required without a custom invoker", ErrInvalidConfig)
		}
		c.invoker = NewAnthropicInvoker(c.client, c.model, 4096)
	}
	if c.summarizer == nil {
		if c.client == nil {
			return nil, fmt.Errorf("%w: Client is required without a custom summarizer", ErrInvalidConfig)
		}
		c.summarizer = compaction.NewAnthropicSummarizer(c.client, c.summarizerModel, 1024)
	}

	return &Supervisor{
		cfg:         c,
		candidates:  candidates,
		checklists:  checklists,
		checkpoints: checkpoints,
		rewriter:    checkpoint.NewRewriter(checkpoints).WithRetries(c.rewriteRetries, 50*time.Millisecond),
		compactor:   compaction.NewCompactor(c.summarizer, c.logger),
		machine:     workflow.NewStateMachine(candidates, checklists),
		lanes:       make(map[string]*sync.Mutex),
	}, nil
}

// lane returns the mutex serializing all writes for one candidate. Lanes are
// created on first use and never removed; different candidates never contend.
func (s *Supervisor) lane(candidateID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lanes[candidateID]
	if !ok {
		l = &sync.Mutex{}
		s.lanes[candidateID] = l
	}
	return l
}

// Register creates a candidate and its checklist in the applied status.
func (s *Supervisor) Register(ctx context.Context, fullName, email, phone, cvPath string) (*workflow.Candidate, error) {
	c, err := s.machine.Register(ctx, fullName, email, phone, cvPath)
	if err != nil {
		return nil, NewPipelineError("Register", err)
	}
	return c, nil
}

// RunTurn runs one conversation turn on the candidate's thread.
//
// The user message is appended to the thread, the agent produces a reply
// under the turn timeout, and the new history is committed as the next
// checkpoint version. A timed-out invocation aborts the turn with
// ErrExternalTimeout and writes nothing. Compaction, when triggered, runs
// within the same turn so the committed checkpoint is already compacted;
// a failed compaction is logged and the oversized history is committed
// as-is.
func (s *Supervisor) RunTurn(ctx context.Context, threadID, candidateID, userMessage string) (string, error) {
	l := s.lane(candidateID)
	l.Lock()
	defer l.Unlock()

	history, err := s.loadOrInitThread(ctx, threadID)
	if err != nil {
		return "", NewPipelineErrorWithCandidate("RunTurn", candidateID, err)
	}

	if err := s.cfg.hooks.TriggerBeforeTurn(ctx, threadID, candidateID, history); err != nil {
		return "", NewPipelineErrorWithCandidate("RunTurn", candidateID, err)
	}

	history = history.Append(types.NewUserMessage(threadID, userMessage))

	invokeCtx, cancel := context.WithTimeout(ctx, s.cfg.turnTimeout)
	defer cancel()

	reply, err := s.cfg.invoker.Invoke(invokeCtx, history)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || invokeCtx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("%w: %v", ErrExternalTimeout, err)
		}
		return "", NewPipelineErrorWithCandidate("RunTurn", candidateID, err).
			WithContext("thread_id", threadID)
	}

	history = history.Append(types.NewAgentMessage(threadID, reply))

	// The summarizer is an external call like the invoker; it runs under
	// its own deadline so a stalled summarizer cannot hold the lane.
	compactCtx, cancelCompact := context.WithTimeout(ctx, s.cfg.turnTimeout)
	final, compacted, cerr := s.compactor.MaybeCompact(compactCtx, history, s.cfg.tokenLimit, s.cfg.compactionRatio)
	cancelCompact()
	if cerr != nil {
		// Soft failure: commit the oversized history and retry compaction
		// on the next turn.
		if errors.Is(cerr, context.DeadlineExceeded) || compactCtx.Err() == context.DeadlineExceeded {
			cerr = fmt.Errorf("%w: %v", ErrExternalTimeout, cerr)
		}
		if s.cfg.logger != nil {
			s.cfg.logger.Warn("compaction failed, keeping full history",
				"thread_id", threadID, "error", cerr)
		}
		final = history
	}

	if err := s.rewriter.Replace(ctx, threadID, final); err != nil {
		return "", NewPipelineErrorWithCandidate("RunTurn", candidateID, err).
			WithContext("thread_id", threadID)
	}

	if compacted {
		counter := s.compactor.Counter()
		result := &compaction.Result{
			Compacted:          true,
			OriginalTokens:     counter.Count(history),
			CompactedTokens:    counter.Count(final),
			MessagesSummarized: len(history) - len(final) + 1,
		}
		if err := s.cfg.hooks.TriggerAfterCompaction(ctx, threadID, result); err != nil {
			return "", NewPipelineErrorWithCandidate("RunTurn", candidateID, err)
		}
	}

	if err := s.cfg.hooks.TriggerAfterTurn(ctx, threadID, candidateID, final); err != nil {
		return "", NewPipelineErrorWithCandidate("RunTurn", candidateID, err)
	}

	return reply, nil
}

// loadOrInitThread returns the thread history, creating the version-1
// checkpoint with the pinned system message for a new thread.
func (s *Supervisor) loadOrInitThread(ctx context.Context, threadID string) (types.ConversationHistory, error) {
	cp, err := s.checkpoints.Get(ctx, threadID)
	if err == nil {
		return cp.Messages.Clone(), nil
	}
	if !errors.Is(err, checkpoint.ErrThreadNotFound) {
		return nil, err
	}

	history := types.ConversationHistory{types.NewSystemMessage(threadID, s.cfg.systemPrompt)}
	first := &checkpoint.Checkpoint{
		ThreadID:  threadID,
		Version:   1,
		UpdatedAt: time.Now(),
		Messages:  history,
	}
	if err := s.checkpoints.Put(ctx, first); err != nil {
		if errors.Is(err, checkpoint.ErrConflict) {
			// Lost the creation race; the thread exists now.
			cp, err := s.checkpoints.Get(ctx, threadID)
			if err != nil {
				return nil, err
			}
			return cp.Messages.Clone(), nil
		}
		return nil, err
	}
	return history.Clone(), nil
}

// CompleteStep marks a checklist step done and fires the step-done hooks.
// Marking an already-done step is a no-op.
func (s *Supervisor) CompleteStep(ctx context.Context, candidateID, stepLabel string) error {
	l := s.lane(candidateID)
	l.Lock()
	defer l.Unlock()

	if err := s.checklists.MarkDone(ctx, candidateID, stepLabel); err != nil {
		return NewPipelineErrorWithCandidate("CompleteStep", candidateID, err).
			WithContext("step", stepLabel)
	}
	return s.cfg.hooks.TriggerStepDone(ctx, candidateID, stepLabel)
}

// AddNote appends a free-form note to the candidate's checklist.
func (s *Supervisor) AddNote(ctx context.Context, candidateID, text string) error {
	l := s.lane(candidateID)
	l.Lock()
	defer l.Unlock()

	if err := s.checklists.AddNote(ctx, candidateID, text); err != nil {
		return NewPipelineErrorWithCandidate("AddNote", candidateID, err)
	}
	return nil
}

// Advance applies a pipeline event to the candidate's status, gated on the
// checklist. Transition hooks fire only after the status write succeeds.
func (s *Supervisor) Advance(ctx context.Context, candidateID string, event workflow.Event) (workflow.CandidateStatus, error) {
	l := s.lane(candidateID)
	l.Lock()
	defer l.Unlock()

	if event.PassThreshold == 0 {
		event.PassThreshold = s.cfg.passThreshold
	}

	c, err := s.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", NewPipelineErrorWithCandidate("Advance", candidateID, err)
	}
	from := c.Status

	to, err := s.machine.Advance(ctx, candidateID, event)
	if err != nil {
		return to, NewPipelineErrorWithCandidate("Advance", candidateID, err).
			WithContext("event", string(event.Kind))
	}

	if to != from {
		if err := s.cfg.hooks.TriggerTransition(ctx, candidateID, from, to, event.Kind); err != nil {
			return to, NewPipelineErrorWithCandidate("Advance", candidateID, err)
		}
	}
	return to, nil
}

// Resume routes a stuck candidate to the first unchecked checklist step.
func (s *Supervisor) Resume(ctx context.Context, candidateID string) (*workflow.ResumeRoute, error) {
	route, err := s.machine.Resume(ctx, candidateID)
	if err != nil {
		return nil, NewPipelineErrorWithCandidate("Resume", candidateID, err)
	}
	return route, nil
}

// Candidate returns the candidate record.
func (s *Supervisor) Candidate(ctx context.Context, candidateID string) (*workflow.Candidate, error) {
	return s.candidates.GetCandidate(ctx, candidateID)
}

// Checklist returns the candidate's checklist.
func (s *Supervisor) Checklist(ctx context.Context, candidateID string) (*checklist.Checklist, error) {
	return s.checklists.Load(ctx, candidateID)
}

// AuditTrail returns the candidate's status transition history.
func (s *Supervisor) AuditTrail(ctx context.Context, candidateID string) ([]*workflow.AuditRecord, error) {
	return s.candidates.AuditTrail(ctx, candidateID)
}

// History returns the current thread history.
func (s *Supervisor) History(ctx context.Context, threadID string) (types.ConversationHistory, error) {
	cp, err := s.checkpoints.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return cp.Messages.Clone(), nil
}

// Hooks returns the supervisor's hook registry for registration.
func (s *Supervisor) Hooks() *hooks.Registry {
	return s.cfg.hooks
}

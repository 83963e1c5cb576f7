package hooks

import (
	"context"
	"sync"

	"github.com/hirepg/hirepg/compaction"
	"github.com/hirepg/hirepg/types"
	"github.com/hirepg/hirepg/workflow"
)

// BeforeTurnHook is called before a supervisor turn starts processing
type BeforeTurnHook func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error

// AfterTurnHook is called after a supervisor turn has committed its writes
type AfterTurnHook func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error

// TransitionHook is called after a candidate status transition is persisted
type TransitionHook func(ctx context.Context, candidateID string, from, to workflow.CandidateStatus, event workflow.EventKind) error

// StepDoneHook is called after a checklist step is marked done
type StepDoneHook func(ctx context.Context, candidateID, stepLabel string) error

// AfterCompactionHook is called after a history compaction pass
type AfterCompactionHook func(ctx context.Context, threadID string, result *compaction.Result) error

// Registry holds all registered hooks
type Registry struct {
	mu              sync.RWMutex
	beforeTurn      []BeforeTurnHook
	afterTurn       []AfterTurnHook
	transition      []TransitionHook
	stepDone        []StepDoneHook
	afterCompaction []AfterCompactionHook
}

// NewRegistry creates a new hook registry
func NewRegistry() *Registry {
	return &Registry{
		beforeTurn:      []BeforeTurnHook{},
		afterTurn:       []AfterTurnHook{},
		transition:      []TransitionHook{},
		stepDone:        []StepDoneHook{},
		afterCompaction: []AfterCompactionHook{},
	}
}

// OnBeforeTurn registers a hook to be called before a turn starts
func (r *Registry) OnBeforeTurn(hook BeforeTurnHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeTurn = append(r.beforeTurn, hook)
}

// OnAfterTurn registers a hook to be called after a turn commits
func (r *Registry) OnAfterTurn(hook AfterTurnHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterTurn = append(r.afterTurn, hook)
}

// OnTransition registers a hook to be called after a status transition
func (r *Registry) OnTransition(hook TransitionHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transition = append(r.transition, hook)
}

// OnStepDone registers a hook to be called after a checklist step completes
func (r *Registry) OnStepDone(hook StepDoneHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stepDone = append(r.stepDone, hook)
}

// OnAfterCompaction registers a hook to be called after compaction
func (r *Registry) OnAfterCompaction(hook AfterCompactionHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterCompaction = append(r.afterCompaction, hook)
}

// TriggerBeforeTurn calls all registered before-turn hooks
func (r *Registry) TriggerBeforeTurn(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
	r.mu.RLock()
	hooks := make([]BeforeTurnHook, len(r.beforeTurn))
	copy(hooks, r.beforeTurn)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, threadID, candidateID, history); err != nil {
			return err
		}
	}
	return nil
}

// TriggerAfterTurn calls all registered after-turn hooks
func (r *Registry) TriggerAfterTurn(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
	r.mu.RLock()
	hooks := make([]AfterTurnHook, len(r.afterTurn))
	copy(hooks, r.afterTurn)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, threadID, candidateID, history); err != nil {
			return err
		}
	}
	return nil
}

// TriggerTransition calls all registered transition hooks
func (r *Registry) TriggerTransition(ctx context.Context, candidateID string, from, to workflow.CandidateStatus, event workflow.EventKind) error {
	r.mu.RLock()
	hooks := make([]TransitionHook, len(r.transition))
	copy(hooks, r.transition)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, candidateID, from, to, event); err != nil {
			return err
		}
	}
	return nil
}

// TriggerStepDone calls all registered step-done hooks
func (r *Registry) TriggerStepDone(ctx context.Context, candidateID, stepLabel string) error {
	r.mu.RLock()
	hooks := make([]StepDoneHook, len(r.stepDone))
	copy(hooks, r.stepDone)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, candidateID, stepLabel); err != nil {
			return err
		}
	}
	return nil
}

// TriggerAfterCompaction calls all registered after-compaction hooks
func (r *Registry) TriggerAfterCompaction(ctx context.Context, threadID string, result *compaction.Result) error {
	r.mu.RLock()
	hooks := make([]AfterCompactionHook, len(r.afterCompaction))
	copy(hooks, r.afterCompaction)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, threadID, result); err != nil {
			return err
		}
	}
	return nil
}

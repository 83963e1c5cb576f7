package hooks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hirepg/hirepg/compaction"
	"github.com/hirepg/hirepg/types"
	"github.com/hirepg/hirepg/workflow"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
}

func TestOnBeforeTurn(t *testing.T) {
	r := NewRegistry()
	called := false

	r.OnBeforeTurn(func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
		called = true
		return nil
	})

	err := r.TriggerBeforeTurn(context.Background(), "thread-1", "cand-1", nil)
	if err != nil {
		t.Errorf("TriggerBeforeTurn returned error: %v", err)
	}
	if !called {
		t.Error("hook was not called")
	}
}

func TestOnTransition(t *testing.T) {
	r := NewRegistry()
	var capturedFrom, capturedTo workflow.CandidateStatus
	var capturedEvent workflow.EventKind

	r.OnTransition(func(ctx context.Context, candidateID string, from, to workflow.CandidateStatus, event workflow.EventKind) error {
		capturedFrom = from
		capturedTo = to
		capturedEvent = event
		return nil
	})

	err := r.TriggerTransition(context.Background(), "cand-1",
		workflow.StatusApplied, workflow.StatusCVScreened, workflow.EventCVScreened)
	if err != nil {
		t.Errorf("TriggerTransition returned error: %v", err)
	}
	if capturedFrom != workflow.StatusApplied {
		t.Errorf("expected from applied, got %s", capturedFrom)
	}
	if capturedTo != workflow.StatusCVScreened {
		t.Errorf("expected to cv_screened, got %s", capturedTo)
	}
	if capturedEvent != workflow.EventCVScreened {
		t.Errorf("expected event cv_screened_event, got %s", capturedEvent)
	}
}

func TestOnStepDone(t *testing.T) {
	r := NewRegistry()
	var capturedStep string

	r.OnStepDone(func(ctx context.Context, candidateID, stepLabel string) error {
		capturedStep = stepLabel
		return nil
	})

	err := r.TriggerStepDone(context.Background(), "cand-1", "CV parsed")
	if err != nil {
		t.Errorf("TriggerStepDone returned error: %v", err)
	}
	if capturedStep != "CV parsed" {
		t.Errorf("expected step 'CV parsed', got '%s'", capturedStep)
	}
}

func TestOnAfterCompaction(t *testing.T) {
	r := NewRegistry()
	var capturedResult *compaction.Result

	r.OnAfterCompaction(func(ctx context.Context, threadID string, result *compaction.Result) error {
		capturedResult = result
		return nil
	})

	testResult := &compaction.Result{
		Compacted:       true,
		OriginalTokens:  1000,
		CompactedTokens: 500,
	}

	err := r.TriggerAfterCompaction(context.Background(), "thread-1", testResult)
	if err != nil {
		t.Errorf("TriggerAfterCompaction returned error: %v", err)
	}
	if capturedResult != testResult {
		t.Error("result was not passed to hook")
	}
}

func TestHookError(t *testing.T) {
	r := NewRegistry()
	expectedErr := errors.New("hook error")

	r.OnBeforeTurn(func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
		return expectedErr
	})

	err := r.TriggerBeforeTurn(context.Background(), "thread-1", "cand-1", nil)
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestMultipleHooks(t *testing.T) {
	r := NewRegistry()
	callOrder := []int{}

	for i := 1; i <= 3; i++ {
		n := i
		r.OnBeforeTurn(func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
			callOrder = append(callOrder, n)
			return nil
		})
	}

	err := r.TriggerBeforeTurn(context.Background(), "thread-1", "cand-1", nil)
	if err != nil {
		t.Errorf("TriggerBeforeTurn returned error: %v", err)
	}

	if len(callOrder) != 3 {
		t.Fatalf("expected 3 hooks to be called, got %d", len(callOrder))
	}

	// Verify hooks are called in registration order
	for i, v := range callOrder {
		if v != i+1 {
			t.Errorf("expected call order %d at index %d, got %d", i+1, i, v)
		}
	}
}

func TestHookStopsOnError(t *testing.T) {
	r := NewRegistry()
	called := []int{}
	expectedErr := errors.New("stop here")

	r.OnStepDone(func(ctx context.Context, candidateID, stepLabel string) error {
		called = append(called, 1)
		return nil
	})

	r.OnStepDone(func(ctx context.Context, candidateID, stepLabel string) error {
		called = append(called, 2)
		return expectedErr
	})

	r.OnStepDone(func(ctx context.Context, candidateID, stepLabel string) error {
		called = append(called, 3) // must NOT be called
		return nil
	})

	err := r.TriggerStepDone(context.Background(), "cand-1", "CV uploaded")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}

	if len(called) != 2 {
		t.Errorf("expected 2 hooks to be called before error, got %d", len(called))
	}
}

func TestConcurrentHookRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	numGoroutines := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			r.OnBeforeTurn(func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
				return nil
			})
		}()
	}
	wg.Wait()

	err := r.TriggerBeforeTurn(context.Background(), "thread-1", "cand-1", nil)
	if err != nil {
		t.Errorf("TriggerBeforeTurn returned error: %v", err)
	}
}

func TestConcurrentRegistrationAndTrigger(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		r.OnBeforeTurn(func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
			return nil
		})
	}

	wg.Add(200)
	for i := 0; i < 100; i++ {
		go func() {
			defer wg.Done()
			r.OnBeforeTurn(func(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			r.TriggerBeforeTurn(context.Background(), "thread-1", "cand-1", nil)
		}()
	}
	wg.Wait()
}

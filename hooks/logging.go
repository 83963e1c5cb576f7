package hooks

import (
	"context"
	"log"

	"github.com/hirepg/hirepg/compaction"
	"github.com/hirepg/hirepg/types"
	"github.com/hirepg/hirepg/workflow"
)

// LoggingHooks provides built-in logging hooks for observability
type LoggingHooks struct {
	logger *log.Logger
}

// NewLoggingHooks creates logging hooks with the provided logger
func NewLoggingHooks(logger *log.Logger) *LoggingHooks {
	return &LoggingHooks{logger: logger}
}

// DefaultLoggingHooks creates logging hooks with default logger
func DefaultLoggingHooks() *LoggingHooks {
	return &LoggingHooks{logger: log.Default()}
}

// BeforeTurn logs the start of a supervisor turn
func (h *LoggingHooks) BeforeTurn(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
	h.logger.Printf("[HirePG] Turn starting: thread=%s candidate=%s history=%d messages",
		threadID, candidateID, len(history))
	return nil
}

// AfterTurn logs the end of a supervisor turn
func (h *LoggingHooks) AfterTurn(ctx context.Context, threadID, candidateID string, history types.ConversationHistory) error {
	h.logger.Printf("[HirePG] Turn committed: thread=%s candidate=%s history=%d messages",
		threadID, candidateID, len(history))
	return nil
}

// Transition logs a persisted status transition
func (h *LoggingHooks) Transition(ctx context.Context, candidateID string, from, to workflow.CandidateStatus, event workflow.EventKind) error {
	h.logger.Printf("[HirePG] Candidate %s: %s -> %s (%s)", candidateID, from, to, event)
	return nil
}

// StepDone logs a completed checklist step
func (h *LoggingHooks) StepDone(ctx context.Context, candidateID, stepLabel string) error {
	h.logger.Printf("[HirePG] Candidate %s: step done: %s", candidateID, stepLabel)
	return nil
}

// AfterCompaction logs a compaction pass
func (h *LoggingHooks) AfterCompaction(ctx context.Context, threadID string, result *compaction.Result) error {
	if result == nil || !result.Compacted {
		return nil
	}
	reduction := float64(0)
	if result.OriginalTokens > 0 {
		reduction = float64(result.OriginalTokens-result.CompactedTokens) / float64(result.OriginalTokens) * 100
	}
	h.logger.Printf("[HirePG] Compaction on thread %s: %d -> %d tokens (%.1f%% reduction, %d messages summarized)",
		threadID, result.OriginalTokens, result.CompactedTokens, reduction, result.MessagesSummarized)
	return nil
}

// Register wires every logging hook into the registry.
func (h *LoggingHooks) Register(r *Registry) {
	r.OnBeforeTurn(h.BeforeTurn)
	r.OnAfterTurn(h.AfterTurn)
	r.OnTransition(h.Transition)
	r.OnStepDone(h.StepDone)
	r.OnAfterCompaction(h.AfterCompaction)
}

// MetricsHooks collects metrics for monitoring
type MetricsHooks struct {
	OnMetric func(name string, value float64, tags map[string]string)
}

// NewMetricsHooks creates metrics collection hooks
func NewMetricsHooks(onMetric func(string, float64, map[string]string)) *MetricsHooks {
	return &MetricsHooks{OnMetric: onMetric}
}

// Transition records transition counts per target status
func (h *MetricsHooks) Transition(ctx context.Context, candidateID string, from, to workflow.CandidateStatus, event workflow.EventKind) error {
	h.OnMetric("pipeline.transition", 1, map[string]string{
		"from": from.String(),
		"to":   to.String(),
	})
	return nil
}

// StepDone records checklist step completions
func (h *MetricsHooks) StepDone(ctx context.Context, candidateID, stepLabel string) error {
	h.OnMetric("pipeline.step.done", 1, map[string]string{"step": stepLabel})
	return nil
}

// AfterCompaction records compaction metrics
func (h *MetricsHooks) AfterCompaction(ctx context.Context, threadID string, result *compaction.Result) error {
	if result == nil || !result.Compacted {
		return nil
	}
	h.OnMetric("pipeline.compaction.original_tokens", float64(result.OriginalTokens), nil)
	h.OnMetric("pipeline.compaction.compacted_tokens", float64(result.CompactedTokens), nil)
	if result.OriginalTokens > 0 {
		h.OnMetric("pipeline.compaction.reduction_pct",
			float64(result.OriginalTokens-result.CompactedTokens)/float64(result.OriginalTokens)*100, nil)
	}
	return nil
}

// Register wires every metrics hook into the registry.
func (h *MetricsHooks) Register(r *Registry) {
	r.OnTransition(h.Transition)
	r.OnStepDone(h.StepDone)
	r.OnAfterCompaction(h.AfterCompaction)
}

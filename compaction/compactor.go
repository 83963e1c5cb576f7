package compaction

import (
	"context"
	"fmt"

	"github.com/hirepg/hirepg/types"
)

// Logger interface for compaction logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a no-op implementation of Logger.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

// Result describes what a compaction pass did to a history.
type Result struct {
	// Compacted indicates whether the history was restructured.
	Compacted bool

	// OriginalTokens is the estimated token count before compaction.
	OriginalTokens int

	// CompactedTokens is the estimated token count after compaction.
	CompactedTokens int

	// MessagesSummarized is the number of prefix messages replaced by the
	// summary message.
	MessagesSummarized int
}

// Compactor decides whether a history is over budget and, if so, replaces a
// prefix of old messages with a single summary message.
type Compactor struct {
	counter    *TokenCounter
	summarizer Summarizer
	logger     Logger
}

// NewCompactor creates a new Compactor using the given summarizer.
// If logger is nil, logging is disabled.
func NewCompactor(summarizer Summarizer, logger Logger) *Compactor {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Compactor{
		counter:    NewTokenCounter(),
		summarizer: summarizer,
		logger:     logger,
	}
}

// Counter returns the compactor's token counter.
func (c *Compactor) Counter() *TokenCounter {
	return c.counter
}

// MaybeCompact compacts the history if it exceeds tokenLimit.
//
// The leading system/instruction message (index 0) is preserved verbatim and
// excluded from the ratio split. Of the remaining messages, the first
// floor(n*ratio) form the to-summarize prefix; the rest are kept verbatim.
// The prefix is condensed into exactly one synthetic agent message.
//
// Returns the (possibly new) history and whether compaction happened. On
// summarizer failure the input history is returned unchanged together with
// an error wrapping ErrSummarizationFailed; the caller proceeds with the
// oversized history and retries on its next turn. One pass per turn: even
// when the verbatim suffix alone still exceeds tokenLimit, MaybeCompact does
// not recurse.
func (c *Compactor) MaybeCompact(ctx context.Context, history types.ConversationHistory, tokenLimit int, ratio float64) (types.ConversationHistory, bool, error) {
	if ratio <= 0 || ratio >= 1 {
		return history, false, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}
	if len(history) < 2 {
		return history, false, nil
	}

	originalTokens := c.counter.Count(history)
	if originalTokens <= tokenLimit {
		return history, false, nil
	}

	system := history[0]
	rest := history[1:]

	splitIndex := int(float64(len(rest)) * ratio)
	if splitIndex <= 0 {
		// History too short or ratio too low; never summarize zero messages.
		c.logger.Debug("compaction skipped, empty prefix",
			"thread_id", system.ThreadID,
			"messages", len(history),
		)
		return history, false, nil
	}

	prefix := rest[:splitIndex]
	suffix := rest[splitIndex:]

	summary, err := c.summarizer.Summarize(ctx, prefix)
	if err != nil {
		return history, false, fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}
	if summary == "" {
		return history, false, fmt.Errorf("%w: empty summary", ErrSummarizationFailed)
	}

	summaryMsg := types.NewSummaryMessage(system.ThreadID, summaryPreamble+summary)

	result := make(types.ConversationHistory, 0, len(suffix)+2)
	result = append(result, system, summaryMsg)
	result = append(result, suffix...)

	c.logger.Info("compaction complete",
		"thread_id", system.ThreadID,
		"original_tokens", originalTokens,
		"compacted_tokens", c.counter.Count(result),
		"messages_summarized", len(prefix),
	)

	return result, true, nil
}

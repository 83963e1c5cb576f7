package compaction

import "errors"

var (
	// ErrNoMessagesToCompact is returned when the to-summarize prefix is
	// empty and there is nothing to condense.
	ErrNoMessagesToCompact = errors.New("no messages to compact")

	// ErrSummarizationFailed is returned when the summarizer call failed or
	// produced an empty summary. The history is left unchanged; the caller
	// proceeds with the oversized history and retries next turn.
	ErrSummarizationFailed = errors.New("summarization failed")

	// ErrInvalidRatio is returned when the compaction ratio is outside (0, 1).
	ErrInvalidRatio = errors.New("compaction ratio must be between 0 and 1")
)

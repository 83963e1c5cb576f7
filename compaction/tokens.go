package compaction

import (
	"github.com/hirepg/hirepg/types"
)

// messageOverhead approximates the per-message framing cost on top of the
// role and content text.
const messageOverhead = 4

// TokenCounter estimates the token cost of a message sequence.
//
// The estimate is deterministic and monotonic: appending a message can never
// decrease the count. It never fails; unrecognized message shapes are costed
// by their serialized text length.
type TokenCounter struct{}

// NewTokenCounter creates a new token counter.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{}
}

// Count returns the estimated token cost of the history.
func (c *TokenCounter) Count(history types.ConversationHistory) int {
	total := 0
	for _, msg := range history {
		total += c.CountMessage(msg)
	}
	return total
}

// CountMessage returns the estimated token cost of a single message.
func (c *TokenCounter) CountMessage(msg *types.Message) int {
	if msg == nil {
		return 0
	}
	tokens := ApproximateTokens(string(msg.Role)) + ApproximateTokens(msg.Content)
	if msg.ToolName != "" {
		tokens += ApproximateTokens(msg.ToolName)
	}
	if msg.ToolCallID != "" {
		tokens += ApproximateTokens(msg.ToolCallID)
	}
	return tokens + messageOverhead
}

// ApproximateTokens provides fast estimation without an API call.
// Roughly 4 characters per token for English text, rounded up so that any
// non-empty string costs at least one token.
func ApproximateTokens(content string) int {
	if content == "" {
		return 0
	}
	return (len(content) + 3) / 4
}

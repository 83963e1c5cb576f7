package compaction

import (
	"fmt"
	"strings"

	"github.com/hirepg/hirepg/types"
)

// summaryPreamble tags the synthetic message so later turns (and humans
// reading the transcript) can tell it apart from a real agent reply.
const summaryPreamble = "[COMPACTED SUMMARY OF EARLIER CONVERSATION]\n\n"

// SummarizationSystemPrompt instructs the summarizer model.
const SummarizationSystemPrompt = `You are a conversation compactor for an HR screening assistant.
Summarize the conversation history you are given into a concise brief that
preserves everything needed to continue the screening workflow:

1. Which candidate is being processed and their identifiers
2. Screening steps already completed and their outcomes (scores, decisions)
3. Emails sent, calls made, interviews scheduled
4. Any pending steps, open questions, or errors encountered

Write plain prose. Do not invent information that is not in the history.`

// BuildSummarizationUserPrompt wraps the formatted conversation for the
// summarizer call.
func BuildSummarizationUserPrompt(conversationText string) string {
	return fmt.Sprintf("Conversation history to summarize:\n\n%s", conversationText)
}

// FormatMessagesAsText converts messages to a readable transcript for the
// summarizer. Tool calls and tool results are rendered inline; they are
// ordinary messages as far as compaction is concerned.
func FormatMessagesAsText(messages types.ConversationHistory) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleToolCall:
			parts = append(parts, fmt.Sprintf("tool_call(%s): %s", msg.ToolName, msg.Content))
		case types.RoleToolResult:
			parts = append(parts, fmt.Sprintf("tool_result(%s): %s", msg.ToolCallID, msg.Content))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
		}
	}
	return strings.Join(parts, "\n\n")
}

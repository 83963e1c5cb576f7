package types

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the message role
type Role string

const (
	// RoleSystem represents the leading system/instruction message
	RoleSystem Role = "system"

	// RoleUser represents a user message
	RoleUser Role = "user"

	// RoleAgent represents an agent (assistant) message
	RoleAgent Role = "agent"

	// RoleToolCall represents a tool invocation requested by the agent
	RoleToolCall Role = "tool_call"

	// RoleToolResult represents the result returned by a tool
	RoleToolResult Role = "tool_result"
)

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAgent, RoleToolCall, RoleToolResult:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Message represents a single conversation message.
// Messages are immutable once appended; only the compactor replaces them,
// and only through the checkpoint rewriter.
type Message struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
	Role     Role   `json:"role"`
	Content  string `json:"content"`

	// Tool metadata, set only for tool_call/tool_result messages
	ToolName   string `json:"tool_name,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`

	// IsSummary marks a synthetic message produced by compaction
	IsSummary bool `json:"is_summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ConversationHistory is the ordered message sequence for one thread.
// Append-only in normal operation; only the compactor performs a
// structural replace.
type ConversationHistory []*Message

// Clone returns a shallow copy of the history slice. The messages
// themselves are shared; they are immutable by contract.
func (h ConversationHistory) Clone() ConversationHistory {
	out := make(ConversationHistory, len(h))
	copy(out, h)
	return out
}

// Append returns a new history with msg added at the tail.
func (h ConversationHistory) Append(msg *Message) ConversationHistory {
	out := make(ConversationHistory, 0, len(h)+1)
	out = append(out, h...)
	return append(out, msg)
}

// NewMessage creates a new message for the given thread.
func NewMessage(threadID string, role Role, content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		ThreadID:  threadID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewSystemMessage creates the leading system/instruction message.
func NewSystemMessage(threadID, content string) *Message {
	return NewMessage(threadID, RoleSystem, content)
}

// NewUserMessage creates a new user message.
func NewUserMessage(threadID, content string) *Message {
	return NewMessage(threadID, RoleUser, content)
}

// NewAgentMessage creates a new agent message.
func NewAgentMessage(threadID, content string) *Message {
	return NewMessage(threadID, RoleAgent, content)
}

// NewToolCallMessage creates a message recording a tool invocation.
func NewToolCallMessage(threadID, toolName, callID, input string) *Message {
	msg := NewMessage(threadID, RoleToolCall, input)
	msg.ToolName = toolName
	msg.ToolCallID = callID
	return msg
}

// NewToolResultMessage creates a message recording a tool result.
func NewToolResultMessage(threadID, callID, output string) *Message {
	msg := NewMessage(threadID, RoleToolResult, output)
	msg.ToolCallID = callID
	return msg
}

// NewSummaryMessage creates the synthetic agent message produced by
// compaction.
func NewSummaryMessage(threadID, summary string) *Message {
	msg := NewMessage(threadID, RoleAgent, summary)
	msg.IsSummary = true
	return msg
}

package hirepg

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/hirepg/hirepg/types"
)

// AgentInvoker produces the agent's reply for one conversation turn. The
// supervisor calls it with the full thread history, system message first.
type AgentInvoker interface {
	Invoke(ctx context.Context, history types.ConversationHistory) (string, error)
}

// InvokerFunc adapts a plain function to the AgentInvoker interface.
type InvokerFunc func(ctx context.Context, history types.ConversationHistory) (string, error)

// Invoke implements AgentInvoker.
func (f InvokerFunc) Invoke(ctx context.Context, history types.ConversationHistory) (string, error) {
	return f(ctx, history)
}

// AnthropicInvoker runs agent turns against Claude's streaming API.
type AnthropicInvoker struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicInvoker creates an invoker backed by the given client.
func NewAnthropicInvoker(client *anthropic.Client, model string, maxTokens int) *AnthropicInvoker {
	return &AnthropicInvoker{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Invoke implements AgentInvoker. The leading system message becomes the API
// system prompt; tool roles are folded into the nearest API role.
func (a *AnthropicInvoker) Invoke(ctx context.Context, history types.ConversationHistory) (string, error) {
	var system []anthropic.TextBlockParam
	var params []anthropic.MessageParam

	for _, msg := range history {
		switch msg.Role {
		case types.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case types.RoleUser, types.RoleToolResult:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case types.RoleAgent, types.RoleToolCall:
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	stream := a.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System:    system,
		Messages:  params,
	})

	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			return "", fmt.Errorf("failed to accumulate stream: %w", err)
		}
	}
	if err := stream.Err(); err != nil {
		return "", err
	}

	var reply strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(text.Text)
		}
	}
	return reply.String(), nil
}

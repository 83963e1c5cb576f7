package compaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/hirepg/hirepg/types"
)

// Summarizer condenses a list of messages into one summary text.
type Summarizer interface {
	Summarize(ctx context.Context, messages types.ConversationHistory) (string, error)
}

// SummarizerFunc adapts a plain function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, messages types.ConversationHistory) (string, error)

// Summarize implements Summarizer.
func (f SummarizerFunc) Summarize(ctx context.Context, messages types.ConversationHistory) (string, error) {
	return f(ctx, messages)
}

// AnthropicSummarizer generates conversation summaries using Claude's
// streaming API.
type AnthropicSummarizer struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicSummarizer creates a summarizer backed by the given client.
func NewAnthropicSummarizer(client *anthropic.Client, model string, maxTokens int) *AnthropicSummarizer {
	return &AnthropicSummarizer{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Summarize implements Summarizer.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, messages types.ConversationHistory) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessagesToCompact
	}

	userPrompt := BuildSummarizationUserPrompt(FormatMessagesAsText(messages))

	stream := s.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: SummarizationSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
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

	var summary strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			summary.WriteString(text.Text)
		}
	}

	if summary.Len() == 0 {
		return "", fmt.Errorf("empty response from summarizer")
	}

	return summary.String(), nil
}

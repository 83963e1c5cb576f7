package compaction

import (
	"strings"
	"testing"

	"github.com/hirepg/hirepg/types"
)

func TestApproximateTokens(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"a", 1},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"abcdefgh", 2},
		{strings.Repeat("x", 400), 100},
	}

	for _, tt := range tests {
		if got := ApproximateTokens(tt.content); got != tt.want {
			t.Errorf("ApproximateTokens(%d chars) = %d, want %d", len(tt.content), got, tt.want)
		}
	}
}

func TestCountMessage(t *testing.T) {
	counter := NewTokenCounter()

	// role "user" = 1 token, content of 8 chars = 2 tokens, overhead = 4.
	msg := types.NewUserMessage("thread-1", "abcdefgh")
	if got := counter.CountMessage(msg); got != 7 {
		t.Errorf("CountMessage = %d, want 7", got)
	}

	if got := counter.CountMessage(nil); got != 0 {
		t.Errorf("CountMessage(nil) = %d, want 0", got)
	}
}

func TestCountMessageIncludesToolMetadata(t *testing.T) {
	counter := NewTokenCounter()

	plain := types.NewAgentMessage("thread-1", "content")
	tool := types.NewToolCallMessage("thread-1", "fetch_cv", "call-1", "content")

	if counter.CountMessage(tool) <= counter.CountMessage(plain) {
		t.Error("tool metadata should add to the message cost")
	}
}

func TestCountDeterministic(t *testing.T) {
	counter := NewTokenCounter()
	history := types.ConversationHistory{
		types.NewSystemMessage("thread-1", "rules"),
		types.NewUserMessage("thread-1", "hello there"),
		types.NewAgentMessage("thread-1", "hi"),
	}

	first := counter.Count(history)
	for i := 0; i < 5; i++ {
		if got := counter.Count(history); got != first {
			t.Fatalf("Count changed between calls: %d != %d", got, first)
		}
	}
}

func TestCountMonotonic(t *testing.T) {
	counter := NewTokenCounter()
	history := types.ConversationHistory{}

	prev := 0
	contents := []string{"", "a", "some message", strings.Repeat("long ", 50)}
	for _, content := range contents {
		history = history.Append(types.NewUserMessage("thread-1", content))
		got := counter.Count(history)
		if got < prev {
			t.Fatalf("appending a message decreased the count: %d -> %d", prev, got)
		}
		prev = got
	}
}

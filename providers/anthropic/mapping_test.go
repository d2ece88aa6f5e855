package anthropic

import (
	"testing"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

func TestMapMessagesSystemExtraction(t *testing.T) {
	msgs := []core.Message{
		{Role: core.RoleSystem, Content: "You are a helpful assistant."},
		{Role: core.RoleUser, Content: "Hello"},
		{Role: core.RoleAssistant, Content: "Hi there"},
	}

	system, result := mapMessages(msgs)

	if system != "You are a helpful assistant." {
		t.Errorf("system = %q, want %q", system, "You are a helpful assistant.")
	}

	// The system turn is excluded from the message list.
	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	if result[0].Role != "user" {
		t.Errorf("Role = %q, want %q", result[0].Role, "user")
	}
	if result[1].Role != "assistant" {
		t.Errorf("Role = %q, want %q", result[1].Role, "assistant")
	}
	if result[0].Content[0].Text != "Hello" {
		t.Errorf("Content = %q, want %q", result[0].Content[0].Text, "Hello")
	}
}

func TestMapMessagesMultipleSystem(t *testing.T) {
	msgs := []core.Message{
		{Role: core.RoleSystem, Content: "First instruction."},
		{Role: core.RoleSystem, Content: "Second instruction."},
		{Role: core.RoleUser, Content: "Hi"},
	}

	system, result := mapMessages(msgs)

	if system != "First instruction.\n\nSecond instruction." {
		t.Errorf("system = %q, want both instructions joined", system)
	}
	if len(result) != 1 {
		t.Errorf("len(result) = %d, want 1", len(result))
	}
}

func TestMapMessagesNoSystem(t *testing.T) {
	system, result := mapMessages([]core.Message{
		{Role: core.RoleUser, Content: "Hi"},
	})

	if system != "" {
		t.Errorf("system = %q, want empty", system)
	}
	if len(result) != 1 {
		t.Errorf("len(result) = %d, want 1", len(result))
	}
}

func TestBuildRequestDefaults(t *testing.T) {
	req := &core.ChatRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Hi"}},
	}

	result := buildRequest(req, true)

	if !result.Stream {
		t.Error("Stream = false, want true")
	}
	if result.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", result.MaxTokens)
	}
	if result.Temperature == nil || *result.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", result.Temperature)
	}
}

func TestMapResponseMultipleBlocks(t *testing.T) {
	resp := mapResponse(&anthropicResponse{
		ID:    "msg_123",
		Model: "claude-sonnet-4-20250514",
		Content: []anthropicContentBlock{
			{Type: "text", Text: "Hello"},
			{Type: "tool_use"},
			{Type: "text", Text: " world"},
		},
		Usage: &anthropicUsage{InputTokens: 5, OutputTokens: 7},
	})

	if resp.Output != "Hello world" {
		t.Errorf("Output = %q, want %q", resp.Output, "Hello world")
	}
	if resp.Usage == nil {
		t.Fatal("Usage is nil")
	}
	if resp.Usage.TotalTokens != 12 {
		t.Errorf("TotalTokens = %d, want 12", resp.Usage.TotalTokens)
	}
}

func TestMapResponseEmptyContent(t *testing.T) {
	resp := mapResponse(&anthropicResponse{ID: "msg_1", Model: "claude-sonnet-4-20250514"})

	if resp.Output != "" {
		t.Errorf("Output = %q, want empty", resp.Output)
	}
	if resp.Usage != nil {
		t.Errorf("Usage = %+v, want nil", resp.Usage)
	}
}

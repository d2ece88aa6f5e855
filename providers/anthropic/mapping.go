package anthropic

import (
	"strings"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// Fixed sampling applied when the request does not override it. Anthropic
// requires max_tokens, so a default is always sent.
const (
	defaultTemperature float32 = 0.2
	defaultMaxTokens           = 4096
)

// buildRequest creates an Anthropic API request from a core ChatRequest.
func buildRequest(req *core.ChatRequest, stream bool) *anthropicRequest {
	system, messages := mapMessages(req.Messages)

	maxTokens := defaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	return &anthropicRequest{
		Model:       string(req.Model),
		Messages:    messages,
		MaxTokens:   maxTokens,
		System:      system,
		Temperature: &temperature,
		Stream:      stream,
	}
}

// mapMessages converts core messages to Anthropic format. System messages
// are excluded from the turn list and concatenated into the dedicated system
// field, so callers stay backend-agnostic.
func mapMessages(msgs []core.Message) (system string, messages []anthropicMessage) {
	var systemParts []string

	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			systemParts = append(systemParts, msg.Content)

		case core.RoleUser, core.RoleAssistant:
			messages = append(messages, anthropicMessage{
				Role: string(msg.Role),
				Content: []anthropicContentBlock{
					{Type: "text", Text: msg.Content},
				},
			})
		}
	}

	if len(systemParts) > 0 {
		system = strings.Join(systemParts, "\n\n")
	}

	return system, messages
}

// mapResponse converts an Anthropic response to a core ChatResponse.
// An empty content list yields empty output rather than an error.
func mapResponse(resp *anthropicResponse) *core.ChatResponse {
	var output strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			output.WriteString(block.Text)
		}
	}

	return &core.ChatResponse{
		ID:     resp.ID,
		Model:  core.ModelID(resp.Model),
		Output: output.String(),
		Usage:  mapUsage(resp.Usage),
	}
}

// mapUsage normalizes Anthropic usage, preserving absence as nil.
func mapUsage(u *anthropicUsage) *core.TokenUsage {
	if u == nil {
		return nil
	}
	return &core.TokenUsage{
		PromptTokens:     u.InputTokens,
		CompletionTokens: u.OutputTokens,
		TotalTokens:      u.InputTokens + u.OutputTokens,
	}
}

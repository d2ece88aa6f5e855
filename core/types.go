package core

// Role represents a message participant role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
// Message order is chronological and must be preserved across the
// provider boundary.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ImageAttachment is a base64-encoded image supplied with a vision request.
// Attachments apply to the first user message of the conversation only.
type ImageAttachment struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelID is a string identifier for a model.
// Using string avoids coupling to provider-specific enums.
type ModelID string

// ChatRequest represents a request to a chat model.
// Temperature and MaxTokens are optional; adapters apply their fixed
// defaults when unset.
type ChatRequest struct {
	Model       ModelID   `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// ChatResponse represents a completed response from a chat model.
// Usage is nil when the backend reported no token accounting.
type ChatResponse struct {
	ID     string      `json:"id"`
	Model  ModelID     `json:"model"`
	Output string      `json:"output"`
	Usage  *TokenUsage `json:"usage,omitempty"`
}

// AssistantMessage returns the response content as an assistant Message.
func (r *ChatResponse) AssistantMessage() Message {
	return Message{Role: RoleAssistant, Content: r.Output}
}

// ChatChunk represents an incremental streaming response.
// Delta contains incremental assistant text and is never empty.
type ChatChunk struct {
	Delta string `json:"delta"`
}

// Feature represents a capability that a provider may support.
type Feature string

const (
	FeatureChat          Feature = "chat"
	FeatureChatStreaming Feature = "chat_streaming"
	FeatureVision        Feature = "vision"
)

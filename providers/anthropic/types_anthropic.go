package anthropic

// anthropicRequest represents a request to the Anthropic Messages API.
// System messages are extracted from the turn list into System.
type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float32           `json:"temperature,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

// anthropicMessage represents a message in the Anthropic format.
type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

// anthropicContentBlock represents a content block within a message.
type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// anthropicResponse represents a response from the Messages API.
type anthropicResponse struct {
	ID         string                  `json:"id"`
	Model      string                  `json:"model"`
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason"`
	Usage      *anthropicUsage         `json:"usage"`
}

// anthropicUsage represents token usage in an Anthropic response.
type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// anthropicStreamEvent represents one SSE event of a streaming response.
type anthropicStreamEvent struct {
	Type    string                `json:"type"`
	Index   int                   `json:"index"`
	Message *anthropicResponse    `json:"message"`
	Delta   *anthropicStreamDelta `json:"delta"`
	Usage   *anthropicUsage       `json:"usage"`
	Error   *anthropicStreamError `json:"error"`
}

// anthropicStreamDelta carries incremental content within a stream event.
type anthropicStreamDelta struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// anthropicStreamError carries an in-stream error payload.
type anthropicStreamError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// anthropicErrorResponse represents an HTTP error envelope.
type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

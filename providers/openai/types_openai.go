package openai

// openAIRequest represents a request to the OpenAI chat completions API.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature *float32        `json:"temperature,omitempty"`
	MaxTokens   *int            `json:"max_tokens,omitempty"`
	Stream      bool            `json:"stream"`
}

// openAIMessage represents a message in the OpenAI format.
// Content is a plain string for text messages or a []openAIContentPart for
// multimodal messages.
type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// openAIContentPart represents one part of a multimodal message.
type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

// openAIImageURL carries an image as an HTTPS or data URL.
type openAIImageURL struct {
	URL string `json:"url"`
}

// openAIResponse represents a response from the chat completions API.
type openAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   *openAIUsage   `json:"usage"`
}

// openAIChoice represents a single choice in an OpenAI response.
type openAIChoice struct {
	Index        int           `json:"index"`
	Message      openAIRespMsg `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// openAIRespMsg represents the assistant message in a response.
type openAIRespMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIUsage represents token usage in an OpenAI response.
type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// openAIStreamChunk represents one SSE data payload of a streaming response.
type openAIStreamChunk struct {
	ID      string               `json:"id"`
	Model   string               `json:"model"`
	Choices []openAIStreamChoice `json:"choices"`
	Usage   *openAIUsage         `json:"usage"`
}

// openAIStreamChoice represents a single choice in a stream chunk.
type openAIStreamChoice struct {
	Index        int               `json:"index"`
	Delta        openAIStreamDelta `json:"delta"`
	FinishReason string            `json:"finish_reason"`
}

// openAIStreamDelta carries the incremental assistant content.
type openAIStreamDelta struct {
	Content string `json:"content"`
}

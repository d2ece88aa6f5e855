package openai

import (
	"fmt"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// Fixed sampling applied when the request does not override it. The vision
// budget is larger so multi-file code output is not truncated.
const (
	defaultTemperature float32 = 0.2
	defaultMaxTokens           = 4096
	visionMaxTokens            = 8192
)

// buildRequest creates an OpenAI API request from a core ChatRequest.
// When images are present, the first user message is rewritten into a
// multimodal payload carrying all images plus its original text; later user
// turns are left untouched.
func buildRequest(req *core.ChatRequest, stream bool, images []core.ImageAttachment) *openAIRequest {
	messages := make([]openAIMessage, 0, len(req.Messages))

	imagesPending := len(images) > 0
	for _, msg := range req.Messages {
		if imagesPending && msg.Role == core.RoleUser {
			messages = append(messages, openAIMessage{
				Role:    string(core.RoleUser),
				Content: multimodalParts(msg.Content, images),
			})
			imagesPending = false
			continue
		}
		// OpenAI accepts the system role inline; no extraction needed.
		messages = append(messages, openAIMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	maxTokens := defaultMaxTokens
	if len(images) > 0 {
		maxTokens = visionMaxTokens
	}
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	return &openAIRequest{
		Model:       string(req.Model),
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Stream:      stream,
	}
}

// multimodalParts builds the content parts for a vision user message.
func multimodalParts(text string, images []core.ImageAttachment) []openAIContentPart {
	parts := make([]openAIContentPart, 0, len(images)+1)
	parts = append(parts, openAIContentPart{Type: "text", Text: text})
	for _, img := range images {
		parts = append(parts, openAIContentPart{
			Type: "image_url",
			ImageURL: &openAIImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", img.MediaType, img.Data),
			},
		})
	}
	return parts
}

// mapResponse converts an OpenAI response to a core ChatResponse.
// An empty choice list yields empty output rather than an error.
func mapResponse(resp *openAIResponse) *core.ChatResponse {
	out := &core.ChatResponse{
		ID:    resp.ID,
		Model: core.ModelID(resp.Model),
		Usage: mapUsage(resp.Usage),
	}

	if len(resp.Choices) > 0 {
		out.Output = resp.Choices[0].Message.Content
	}

	return out
}

// mapUsage normalizes OpenAI usage, preserving absence as nil.
func mapUsage(u *openAIUsage) *core.TokenUsage {
	if u == nil {
		return nil
	}
	return &core.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

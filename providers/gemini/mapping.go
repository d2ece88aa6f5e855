package gemini

import (
	"strings"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// Fixed sampling applied when the request does not override it. The vision
// budget is larger so multi-file code output is not truncated.
const (
	defaultTemperature float32 = 0.2
	defaultMaxTokens           = 4096
	visionMaxTokens            = 8192
)

// buildRequest creates a Gemini API request from a core ChatRequest.
// When images are present, the first user turn carries every image as an
// inlineData part alongside its original text.
func buildRequest(req *core.ChatRequest, images []core.ImageAttachment) *geminiRequest {
	system, contents := mapMessages(req.Messages, images)

	gemReq := &geminiRequest{
		Contents: contents,
	}

	if system != "" {
		gemReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: system}},
		}
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

	gemReq.GenerationConfig = &geminiGenConfig{
		Temperature:     &temperature,
		MaxOutputTokens: &maxTokens,
	}

	return gemReq
}

// mapMessages converts core messages to Gemini format. System messages are
// extracted into the dedicated systemInstruction string; images attach to
// the first user turn only.
func mapMessages(msgs []core.Message, images []core.ImageAttachment) (system string, contents []geminiContent) {
	var systemParts []string

	imagesPending := len(images) > 0
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			systemParts = append(systemParts, msg.Content)

		case core.RoleUser:
			parts := []geminiPart{{Text: msg.Content}}
			if imagesPending {
				for _, img := range images {
					parts = append(parts, geminiPart{
						InlineData: &geminiInlineData{
							MimeType: img.MediaType,
							Data:     img.Data,
						},
					})
				}
				imagesPending = false
			}
			contents = append(contents, geminiContent{Role: "user", Parts: parts})

		case core.RoleAssistant:
			contents = append(contents, geminiContent{
				Role:  "model",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		}
	}

	if len(systemParts) > 0 {
		system = strings.Join(systemParts, "\n\n")
	}

	return system, contents
}

// mapResponse converts a Gemini response to a core ChatResponse.
// An empty candidate list yields empty output rather than an error.
func mapResponse(resp *geminiResponse, model string) *core.ChatResponse {
	out := &core.ChatResponse{
		ID:    resp.ResponseID,
		Model: core.ModelID(model),
		Usage: mapUsage(resp.UsageMetadata),
	}

	if len(resp.Candidates) > 0 {
		var text strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
		out.Output = text.String()
	}

	return out
}

// mapUsage normalizes Gemini usage metadata, preserving absence as nil.
func mapUsage(u *geminiUsage) *core.TokenUsage {
	if u == nil {
		return nil
	}
	return &core.TokenUsage{
		PromptTokens:     u.PromptTokenCount,
		CompletionTokens: u.CandidatesTokenCount,
		TotalTokens:      u.TotalTokenCount,
	}
}

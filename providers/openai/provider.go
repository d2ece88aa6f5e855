// Package openai implements the provider contract for the OpenAI chat
// completions API.
package openai

import (
	"context"
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

// OpenAI is a provider implementation for the OpenAI API.
// OpenAI is safe for concurrent use.
type OpenAI struct {
	config Config
}

// New creates a new OpenAI provider with the given API key and options.
// Construction captures the credential; it performs no network I/O.
func New(apiKey string, opts ...Option) *OpenAI {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenAI{config: cfg}
}

// ID returns the provider identifier.
func (p *OpenAI) ID() string {
	return "openai"
}

// Supports reports whether the provider supports the given feature.
func (p *OpenAI) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureChatStreaming, core.FeatureVision:
		return true
	default:
		return false
	}
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *OpenAI) buildHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")
	return headers
}

// Chat sends a non-streaming chat request.
func (p *OpenAI) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// StreamChat sends a streaming chat request.
func (p *OpenAI) StreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	return p.doStreamChat(ctx, req, nil)
}

// StreamVisionChat sends a streaming chat request with image attachments
// folded into the first user message.
func (p *OpenAI) StreamVisionChat(ctx context.Context, req *core.ChatRequest, images []core.ImageAttachment) (*core.ChatStream, error) {
	return p.doStreamChat(ctx, req, images)
}

// Compile-time check that OpenAI implements Provider.
var _ providers.Provider = (*OpenAI)(nil)

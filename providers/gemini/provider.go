// Package gemini implements the provider contract for the Google Gemini
// generateContent API.
package gemini

import (
	"context"
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

// Gemini is a provider implementation for the Google Gemini API.
// Gemini is safe for concurrent use.
type Gemini struct {
	config Config
}

// New creates a new Gemini provider with the given API key and options.
// Construction captures the credential; it performs no network I/O.
func New(apiKey string, opts ...Option) *Gemini {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Gemini{config: cfg}
}

// ID returns the provider identifier.
func (p *Gemini) ID() string {
	return "gemini"
}

// Supports reports whether the provider supports the given feature.
func (p *Gemini) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureChatStreaming, core.FeatureVision:
		return true
	default:
		return false
	}
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *Gemini) buildHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("x-goog-api-key", p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")
	return headers
}

// Chat sends a non-streaming chat request.
func (p *Gemini) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// StreamChat sends a streaming chat request.
func (p *Gemini) StreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	return p.doStreamChat(ctx, req, nil)
}

// StreamVisionChat sends a streaming chat request with image attachments
// folded into the first user message.
func (p *Gemini) StreamVisionChat(ctx context.Context, req *core.ChatRequest, images []core.ImageAttachment) (*core.ChatStream, error) {
	return p.doStreamChat(ctx, req, images)
}

// Compile-time check that Gemini implements Provider.
var _ providers.Provider = (*Gemini)(nil)

// Package anthropic implements the provider contract for the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

// Anthropic is a provider implementation for the Anthropic API.
// Anthropic is safe for concurrent use.
type Anthropic struct {
	config Config
}

// New creates a new Anthropic provider with the given API key and options.
// Construction captures the credential; it performs no network I/O.
func New(apiKey string, opts ...Option) *Anthropic {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Version:    DefaultVersion,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Anthropic{config: cfg}
}

// ID returns the provider identifier.
func (p *Anthropic) ID() string {
	return "anthropic"
}

// Supports reports whether the provider supports the given feature.
func (p *Anthropic) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat, core.FeatureChatStreaming:
		return true
	default:
		return false
	}
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *Anthropic) buildHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("x-api-key", p.config.APIKey.Expose())
	headers.Set("anthropic-version", p.config.Version)
	headers.Set("Content-Type", "application/json")
	return headers
}

// Chat sends a non-streaming chat request.
func (p *Anthropic) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// StreamChat sends a streaming chat request.
func (p *Anthropic) StreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	return p.doStreamChat(ctx, req)
}

// StreamVisionChat fails fast: this adapter does not accept image input.
func (p *Anthropic) StreamVisionChat(ctx context.Context, req *core.ChatRequest, images []core.ImageAttachment) (*core.ChatStream, error) {
	return nil, newNotSupportedError("vision")
}

// Compile-time check that Anthropic implements Provider.
var _ providers.Provider = (*Anthropic)(nil)

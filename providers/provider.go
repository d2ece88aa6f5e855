// Package providers defines the backend capability contract and the registry
// of concrete adapter implementations.
package providers

import (
	"context"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// Provider is the interface that LLM backend adapters must implement.
// Providers are safe for concurrent calls and hold no per-request state.
type Provider interface {
	// ID returns the provider identifier (e.g., "openai", "anthropic").
	ID() string

	// Supports reports whether the provider supports the given feature.
	Supports(feature core.Feature) bool

	// Chat sends a non-streaming chat request. An upstream response with an
	// empty choice or candidate list yields an empty Output, not an error.
	Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error)

	// StreamChat sends a streaming chat request. The returned stream is
	// single-pass and ends when the upstream stream ends; cancelling ctx
	// closes the upstream connection.
	StreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error)

	// StreamVisionChat is StreamChat with the first user message rewritten
	// into a multimodal payload carrying all images plus its original text.
	// Providers without vision return a ProviderError wrapping
	// core.ErrNotSupported before any output is produced.
	StreamVisionChat(ctx context.Context, req *core.ChatRequest, images []core.ImageAttachment) (*core.ChatStream, error)
}

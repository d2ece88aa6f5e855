package openai

import (
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers/internal/normalize"
)

// normalizeError converts an HTTP error response to a ProviderError with the
// appropriate sentinel.
func normalizeError(status int, body []byte, requestID string) error {
	return normalize.OpenAIStyleProviderError("openai", status, body, requestID)
}

// newNetworkError creates a ProviderError for network-related failures.
func newNetworkError(err error) error {
	return normalize.NetworkError("openai", err)
}

// newDecodeError creates a ProviderError for JSON decode failures.
func newDecodeError(err error) error {
	return normalize.DecodeError("openai", err)
}

package anthropic

import (
	"encoding/json"
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers/internal/normalize"
)

// normalizeError converts an HTTP error response to a ProviderError with the
// appropriate sentinel.
func normalizeError(status int, body []byte, requestID string) error {
	var errResp anthropicErrorResponse
	_ = json.Unmarshal(body, &errResp)

	message := errResp.Error.Message
	code := errResp.Error.Type
	if code == "" {
		code = "unknown_error"
	}

	sentinel := normalize.SentinelForStatusWithOverrides(status, map[int]error{
		http.StatusNotFound: core.ErrNotFound,
	})

	return normalize.ProviderError("anthropic", status, requestID, code, message, sentinel)
}

// newNetworkError creates a ProviderError for network-related failures.
func newNetworkError(err error) error {
	return normalize.NetworkError("anthropic", err)
}

// newDecodeError creates a ProviderError for JSON decode failures.
func newDecodeError(err error) error {
	return normalize.DecodeError("anthropic", err)
}

// newNotSupportedError reports a capability this adapter lacks.
func newNotSupportedError(capability string) error {
	return normalize.NotSupportedError("anthropic", capability)
}

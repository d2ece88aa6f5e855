package gemini

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers/internal/normalize"
)

// normalizeError converts an HTTP error response to a ProviderError with the
// appropriate sentinel. Gemini does not return request IDs in error bodies.
func normalizeError(status int, body []byte) error {
	var errResp geminiErrorResponse
	_ = json.Unmarshal(body, &errResp)

	message := errResp.Error.Message
	code := errResp.Error.Status
	if code == "" {
		code = strconv.Itoa(status)
	}

	sentinel := normalize.SentinelForStatusWithOverrides(status, map[int]error{
		http.StatusNotFound: core.ErrNotFound,
	})

	return normalize.ProviderError("gemini", status, "", code, message, sentinel)
}

// newNetworkError creates a ProviderError for network-related failures.
func newNetworkError(err error) error {
	return normalize.NetworkError("gemini", err)
}

// newDecodeError creates a ProviderError for JSON decode failures.
func newDecodeError(err error) error {
	return normalize.DecodeError("gemini", err)
}

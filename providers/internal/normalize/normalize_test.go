package normalize

import (
	"errors"
	"net/http"
	"testing"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

func TestSentinelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, core.ErrBadRequest},
		{http.StatusUnauthorized, core.ErrUnauthorized},
		{http.StatusForbidden, core.ErrUnauthorized},
		{http.StatusTooManyRequests, core.ErrRateLimited},
		{http.StatusInternalServerError, core.ErrServer},
		{http.StatusBadGateway, core.ErrServer},
		{http.StatusTeapot, core.ErrServer},
	}

	for _, tt := range tests {
		if got := SentinelForStatus(tt.status); !errors.Is(got, tt.want) {
			t.Errorf("SentinelForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSentinelForStatusWithOverrides(t *testing.T) {
	got := SentinelForStatusWithOverrides(http.StatusNotFound, map[int]error{
		http.StatusNotFound: core.ErrNotFound,
	})
	if !errors.Is(got, core.ErrNotFound) {
		t.Errorf("override not applied: %v", got)
	}

	// Statuses without overrides fall through to the default mapping.
	got = SentinelForStatusWithOverrides(http.StatusUnauthorized, map[int]error{
		http.StatusNotFound: core.ErrNotFound,
	})
	if !errors.Is(got, core.ErrUnauthorized) {
		t.Errorf("default mapping lost: %v", got)
	}
}

func TestOpenAIStyleProviderError(t *testing.T) {
	body := []byte(`{"error":{"message":"Rate limit exceeded","type":"rate_limit_error","code":"rate_limit_exceeded"}}`)

	err := OpenAIStyleProviderError("openai", http.StatusTooManyRequests, body, "req-1")

	var provErr *core.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("not a *core.ProviderError")
	}
	if provErr.Message != "Rate limit exceeded" {
		t.Errorf("Message = %q", provErr.Message)
	}
	if provErr.Code != "rate_limit_exceeded" {
		t.Errorf("Code = %q, want the code field over the type", provErr.Code)
	}
	if provErr.RequestID != "req-1" {
		t.Errorf("RequestID = %q", provErr.RequestID)
	}
	if !errors.Is(err, core.ErrRateLimited) {
		t.Errorf("sentinel = %v, want ErrRateLimited", provErr.Err)
	}
}

func TestOpenAIStyleProviderErrorUnparseableBody(t *testing.T) {
	err := OpenAIStyleProviderError("openai", http.StatusInternalServerError, []byte("<html>gateway error</html>"), "")

	var provErr *core.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("not a *core.ProviderError")
	}
	if provErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("Message = %q, want status text fallback", provErr.Message)
	}
}

func TestNotSupportedError(t *testing.T) {
	err := NotSupportedError("anthropic", "vision")

	if !errors.Is(err, core.ErrNotSupported) {
		t.Fatalf("sentinel = %v, want ErrNotSupported", err)
	}

	var provErr *core.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("not a *core.ProviderError")
	}
	if provErr.Code != "capability_unsupported" {
		t.Errorf("Code = %q", provErr.Code)
	}
}

func TestNetworkAndDecodeErrors(t *testing.T) {
	if err := NetworkError("gemini", errors.New("dial refused")); !errors.Is(err, core.ErrNetwork) {
		t.Errorf("NetworkError sentinel = %v", err)
	}
	if err := DecodeError("gemini", errors.New("bad json")); !errors.Is(err, core.ErrDecode) {
		t.Errorf("DecodeError sentinel = %v", err)
	}
}

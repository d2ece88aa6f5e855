package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// sseEvent builds one named SSE event with a data payload.
func sseEvent(name, data string) string {
	return fmt.Sprintf("event: %s\ndata: %s\n\n", name, data)
}

func TestStreamChatSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		fmt.Fprint(w, sseEvent("message_start",
			`{"type":"message_start","message":{"id":"msg_123","model":"claude-sonnet-4-20250514","usage":{"input_tokens":25,"output_tokens":1}}}`))
		fmt.Fprint(w, sseEvent("content_block_delta",
			`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hello"}}`))
		fmt.Fprint(w, sseEvent("content_block_delta",
			`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":" world"}}`))
		fmt.Fprint(w, sseEvent("message_delta",
			`{"type":"message_delta","usage":{"output_tokens":8}}`))
		fmt.Fprint(w, sseEvent("message_stop", `{"type":"message_stop"}`))
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), &core.ChatRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Hi"}},
	})

	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	var out strings.Builder
	for chunk := range stream.Ch {
		out.WriteString(chunk.Delta)
	}

	if err, ok := <-stream.Err; ok && err != nil {
		t.Fatalf("stream error: %v", err)
	}

	final := <-stream.Final
	if final == nil {
		t.Fatal("Final response is nil")
	}

	if out.String() != "Hello world" {
		t.Errorf("output = %q, want %q", out.String(), "Hello world")
	}
	if final.ID != "msg_123" {
		t.Errorf("Final.ID = %q, want %q", final.ID, "msg_123")
	}

	// message_delta updated the output count.
	if final.Usage == nil {
		t.Fatal("Final.Usage is nil")
	}
	if final.Usage.PromptTokens != 25 || final.Usage.CompletionTokens != 8 {
		t.Errorf("Usage = %+v, want prompt 25 completion 8", final.Usage)
	}
	if final.Usage.TotalTokens != 33 {
		t.Errorf("TotalTokens = %d, want 33", final.Usage.TotalTokens)
	}
}

func TestStreamChatNoUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		fmt.Fprint(w, sseEvent("message_start",
			`{"type":"message_start","message":{"id":"msg_1","model":"claude-sonnet-4-20250514"}}`))
		fmt.Fprint(w, sseEvent("content_block_delta",
			`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hi"}}`))
		fmt.Fprint(w, sseEvent("message_stop", `{"type":"message_stop"}`))
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), &core.ChatRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Hi"}},
	})
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	for range stream.Ch {
	}

	final := <-stream.Final
	if final == nil {
		t.Fatal("Final response is nil")
	}
	if final.Usage != nil {
		t.Errorf("Final.Usage = %+v, want nil when the backend omits it", final.Usage)
	}
}

func TestStreamChatInStreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		fmt.Fprint(w, sseEvent("content_block_delta",
			`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"partial"}}`))
		fmt.Fprint(w, sseEvent("error",
			`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), &core.ChatRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Hi"}},
	})
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	var deltas []string
	for chunk := range stream.Ch {
		deltas = append(deltas, chunk.Delta)
	}

	streamErr, ok := <-stream.Err
	if !ok || streamErr == nil {
		t.Fatal("expected a stream error")
	}

	var provErr *core.ProviderError
	if !errors.As(streamErr, &provErr) {
		t.Fatal("stream error is not a *core.ProviderError")
	}
	if provErr.Code != "overloaded_error" {
		t.Errorf("Code = %q, want %q", provErr.Code, "overloaded_error")
	}

	// Text delivered before the failure still arrived.
	if len(deltas) != 1 || deltas[0] != "partial" {
		t.Errorf("deltas = %v, want [partial]", deltas)
	}

	// No final response after an error.
	if final, ok := <-stream.Final; ok && final != nil {
		t.Errorf("Final = %+v, want none", final)
	}
}

func TestStreamVisionChatNotSupported(t *testing.T) {
	p := New("test-key")

	_, err := p.StreamVisionChat(context.Background(), &core.ChatRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Describe"}},
	}, []core.ImageAttachment{{MediaType: "image/png", Data: "aWNvbg=="}})

	if !errors.Is(err, core.ErrNotSupported) {
		t.Fatalf("error = %v, want ErrNotSupported", err)
	}

	var provErr *core.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("error is not a *core.ProviderError")
	}
	if provErr.Provider != "anthropic" {
		t.Errorf("Provider = %q, want %q", provErr.Provider, "anthropic")
	}
}

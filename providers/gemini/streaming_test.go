package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// sseResponse builds an SSE body from data payloads.
func sseResponse(events ...string) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString("data: ")
		sb.WriteString(e)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func TestStreamChatSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:streamGenerateContent" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("alt") != "sse" {
			t.Errorf("alt = %q, want sse", r.URL.Query().Get("alt"))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, sseResponse(
			`{"responseId":"r1","candidates":[{"content":{"role":"model","parts":[{"text":"Hello"}]}}]}`,
			`{"responseId":"r1","candidates":[{"content":{"role":"model","parts":[{"text":" world"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":8,"candidatesTokenCount":2,"totalTokenCount":10}}`,
		))
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), &core.ChatRequest{
		Model:    "gemini-2.0-flash",
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
	if final.ID != "r1" {
		t.Errorf("Final.ID = %q, want %q", final.ID, "r1")
	}
	if final.Model != "gemini-2.0-flash" {
		t.Errorf("Final.Model = %q, want the requested model", final.Model)
	}
	if final.Usage == nil || final.Usage.TotalTokens != 10 {
		t.Errorf("Final.Usage = %+v, want total 10", final.Usage)
	}
}

func TestStreamChatNoUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, sseResponse(
			`{"responseId":"r2","candidates":[{"content":{"role":"model","parts":[{"text":"Hi"}]}}]}`,
		))
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), &core.ChatRequest{
		Model:    "gemini-2.0-flash",
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

func TestStreamChatHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key invalid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	p := New("bad-key", WithBaseURL(server.URL))
	_, err := p.StreamChat(context.Background(), &core.ChatRequest{
		Model:    "gemini-2.0-flash",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Hi"}},
	})

	if err == nil {
		t.Fatal("expected an error")
	}

	var provErr *core.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("error is not a *core.ProviderError")
	}
	if provErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", provErr.Status)
	}
}

func TestStreamVisionChatPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if *req.GenerationConfig.MaxOutputTokens != 8192 {
			t.Errorf("MaxOutputTokens = %d, want 8192", *req.GenerationConfig.MaxOutputTokens)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Fatalf("Contents = %+v, want one turn with text plus image", req.Contents)
		}
		img := req.Contents[0].Parts[1].InlineData
		if img == nil || img.MimeType != "image/png" || img.Data != "aWNvbg==" {
			t.Errorf("inline data = %+v", img)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, sseResponse(
			`{"responseId":"r3","candidates":[{"content":{"role":"model","parts":[{"text":"A diagram"}]}}]}`,
		))
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamVisionChat(context.Background(), &core.ChatRequest{
		Model:    "gemini-2.0-flash",
		Messages: []core.Message{{Role: core.RoleUser, Content: "Describe this"}},
	}, []core.ImageAttachment{{MediaType: "image/png", Data: "aWNvbg=="}})

	if err != nil {
		t.Fatalf("StreamVisionChat() error = %v", err)
	}

	var out strings.Builder
	for chunk := range stream.Ch {
		out.WriteString(chunk.Delta)
	}
	if out.String() != "A diagram" {
		t.Errorf("output = %q, want %q", out.String(), "A diagram")
	}
}

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookPublish(t *testing.T) {
	var got publishEnvelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL, WithClient(server.Client()))

	err := p.Publish(context.Background(), "room-1", "chat", map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if got.RoomID != "room-1" || got.Event != "chat" {
		t.Errorf("envelope = %+v", got)
	}
}

func TestWebhookPublishHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL, WithClient(server.Client()))

	err := p.Publish(context.Background(), "room-1", "done", nil)

	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("error = %v, want *PublishError", err)
	}
	if pubErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", pubErr.Status)
	}
}

func TestWebhookPublishTransportError(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p := NewWebhookPublisher(url)

	err := p.Publish(context.Background(), "room-1", "chat", nil)

	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("error = %v, want *PublishError", err)
	}
	if pubErr.Err == nil {
		t.Error("transport failure should carry an underlying error")
	}
}

func TestSharedClientLifecycle(t *testing.T) {
	CloseSharedClient()

	c1 := SharedClient()
	c2 := SharedClient()
	if c1 != c2 {
		t.Error("SharedClient() should return the same instance")
	}

	CloseSharedClient()
	CloseSharedClient() // idempotent

	c3 := SharedClient()
	if c3 == nil {
		t.Fatal("SharedClient() after close should rebuild")
	}
	if c3 == c1 {
		t.Error("rebuilt client should be a fresh instance")
	}
	CloseSharedClient()
}

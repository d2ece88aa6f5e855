package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// PublishError reports a failed realtime publish. The Coordinator swallows
// it after logging; it never reaches the user-facing response path.
type PublishError struct {
	Endpoint string
	Status   int
	Err      error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("publish to %s failed with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("publish to %s failed: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error for error chaining.
func (e *PublishError) Unwrap() error {
	return e.Err
}

// publishEnvelope is the wire shape POSTed to the realtime endpoint.
type publishEnvelope struct {
	RoomID  string `json:"room_id"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// WebhookPublisher delivers room events to a realtime relay over HTTP using
// the process-wide shared client.
type WebhookPublisher struct {
	endpoint string
	client   *http.Client
}

// WebhookOption configures a WebhookPublisher.
type WebhookOption func(*WebhookPublisher)

// WithClient overrides the HTTP client, primarily for tests.
func WithClient(client *http.Client) WebhookOption {
	return func(p *WebhookPublisher) {
		p.client = client
	}
}

// NewWebhookPublisher creates a publisher targeting the given endpoint.
func NewWebhookPublisher(endpoint string, opts ...WebhookOption) *WebhookPublisher {
	p := &WebhookPublisher{endpoint: endpoint}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish POSTs one room event. Transport and HTTP failures come back as a
// PublishError for the Coordinator to log and drop.
func (p *WebhookPublisher) Publish(ctx context.Context, roomID, event string, payload any) error {
	body, err := json.Marshal(publishEnvelope{RoomID: roomID, Event: event, Payload: payload})
	if err != nil {
		return &PublishError{Endpoint: p.endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return &PublishError{Endpoint: p.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.client
	if client == nil {
		client = SharedClient()
	}

	resp, err := client.Do(req)
	if err != nil {
		return &PublishError{Endpoint: p.endpoint, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return &PublishError{Endpoint: p.endpoint, Status: resp.StatusCode}
	}

	return nil
}

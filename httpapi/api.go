// Package httpapi is the inbound HTTP boundary: the chat endpoint with its
// JSON and SSE reply shapes, the shared-secret auth gate, and the
// collaborator contracts the handlers consume.
package httpapi

import (
	"github.com/adelab-inc/ds-bridge-ui-sub000/compose"
	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// Message length bounds for inbound chat requests.
const (
	minMessageLen = 1
	maxMessageLen = 10000
)

// Instance is one component instance in the client's current composition.
type Instance struct {
	ID        string         `json:"id"`
	Component string         `json:"component"`
	Props     map[string]any `json:"props,omitempty"`
}

// Composition is the client's current canvas state, sent so the model can
// target edits instead of regenerating from scratch.
type Composition struct {
	Instances []Instance `json:"instances"`
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message            string                 `json:"message"`
	RoomID             string                 `json:"room_id"`
	Stream             bool                   `json:"stream"`
	CurrentComposition *Composition           `json:"current_composition,omitempty"`
	SelectedInstanceID string                 `json:"selected_instance_id,omitempty"`
	Images             []core.ImageAttachment `json:"images,omitempty"`
}

// ChatReply is the non-streaming response body.
type ChatReply struct {
	Message core.Message            `json:"message"`
	Parsed  *compose.ParsedResponse `json:"parsed"`
	Usage   *core.TokenUsage        `json:"usage"`
}

// errorReply is the JSON error body for non-streaming failures.
type errorReply struct {
	Error string `json:"error"`
}

package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// ErrRoomNotFound is returned by RoomStore implementations for unknown rooms.
var ErrRoomNotFound = errors.New("room not found")

// ErrObjectNotFound is returned by ObjectStore implementations for unknown keys.
var ErrObjectNotFound = errors.New("object not found")

// StoredMessage is a persisted conversation message with a server-assigned
// identifier and timestamp.
type StoredMessage struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Role      core.Role `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePage is one page of room history. NextCursor is empty on the last
// page.
type MessagePage struct {
	Messages   []StoredMessage `json:"messages"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// RoomStore is the data-access collaborator: room-scoped message persistence
// with server-assigned timestamps. Persistence itself lives outside the
// core; the server only consumes this contract.
type RoomStore interface {
	// AppendMessage stores a message in the room and returns it with ID and
	// timestamp assigned.
	AppendMessage(ctx context.Context, roomID string, msg core.Message) (StoredMessage, error)

	// ListMessages returns room history in chronological order, paginated.
	// A zero limit means implementation default.
	ListMessages(ctx context.Context, roomID string, limit int, cursor string) (MessagePage, error)

	// DeleteRoom removes a room and all its messages.
	DeleteRoom(ctx context.Context, roomID string) error
}

// StoredObject is a stored binary object with its publicly resolvable URL.
type StoredObject struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// ObjectStore is the storage collaborator: upload with a generated key
// returning a publicly resolvable reference, and fetch by key.
type ObjectStore interface {
	Put(ctx context.Context, data []byte, contentType string) (StoredObject, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// Publisher is the fire-and-forget realtime collaborator. Failures are
// transport errors the fan-out coordinator swallows; they never propagate
// to the response path.
type Publisher interface {
	Publish(ctx context.Context, roomID, event string, payload any) error
}

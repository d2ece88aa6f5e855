package httpapi

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// defaultPageSize bounds ListMessages pages when the caller passes no limit.
const defaultPageSize = 50

// MemRoomStore is an in-memory RoomStore for local serving and tests.
// MemRoomStore is safe for concurrent use.
type MemRoomStore struct {
	mu    sync.RWMutex
	rooms map[string][]StoredMessage
}

// NewMemRoomStore creates an empty in-memory room store.
func NewMemRoomStore() *MemRoomStore {
	return &MemRoomStore{rooms: make(map[string][]StoredMessage)}
}

// AppendMessage stores a message, assigning ID and timestamp. Unknown rooms
// are created implicitly on first append.
func (s *MemRoomStore) AppendMessage(ctx context.Context, roomID string, msg core.Message) (StoredMessage, error) {
	stored := StoredMessage{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.rooms[roomID] = append(s.rooms[roomID], stored)
	s.mu.Unlock()

	return stored, nil
}

// ListMessages returns room history in chronological order. The cursor is
// the offset of the next unread message.
func (s *MemRoomStore) ListMessages(ctx context.Context, roomID string, limit int, cursor string) (MessagePage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return MessagePage{}, fmt.Errorf("invalid cursor %q", cursor)
		}
		offset = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.rooms[roomID]
	if !ok {
		// An unknown room reads as empty history, matching implicit
		// creation on append.
		return MessagePage{}, nil
	}

	if offset >= len(msgs) {
		return MessagePage{}, nil
	}

	end := offset + limit
	if end > len(msgs) {
		end = len(msgs)
	}

	page := MessagePage{Messages: append([]StoredMessage(nil), msgs[offset:end]...)}
	if end < len(msgs) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

// DeleteRoom removes a room and its messages.
func (s *MemRoomStore) DeleteRoom(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return ErrRoomNotFound
	}
	delete(s.rooms, roomID)
	return nil
}

// Compile-time check that MemRoomStore implements RoomStore.
var _ RoomStore = (*MemRoomStore)(nil)

// memObject is one stored blob.
type memObject struct {
	data        []byte
	contentType string
}

// MemObjectStore is an in-memory ObjectStore for local serving and tests.
// MemObjectStore is safe for concurrent use.
type MemObjectStore struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]memObject
}

// NewMemObjectStore creates an empty object store. baseURL prefixes the
// public references it hands out.
func NewMemObjectStore(baseURL string) *MemObjectStore {
	return &MemObjectStore{
		baseURL: baseURL,
		objects: make(map[string]memObject),
	}
}

// Put stores data under a generated key and returns its public reference.
func (s *MemObjectStore) Put(ctx context.Context, data []byte, contentType string) (StoredObject, error) {
	key := uuid.NewString()

	s.mu.Lock()
	s.objects[key] = memObject{
		data:        append([]byte(nil), data...),
		contentType: contentType,
	}
	s.mu.Unlock()

	return StoredObject{
		Key:         key,
		URL:         s.baseURL + "/api/objects/" + key,
		ContentType: contentType,
	}, nil
}

// Get fetches an object by key.
func (s *MemObjectStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return append([]byte(nil), obj.data...), obj.contentType, nil
}

// Compile-time check that MemObjectStore implements ObjectStore.
var _ ObjectStore = (*MemObjectStore)(nil)

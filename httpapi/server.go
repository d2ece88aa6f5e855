package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adelab-inc/ds-bridge-ui-sub000/compose"
	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/notify"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

// Server wires the provider, parser, collaborators, and fan-out coordinator
// behind the HTTP surface. Server is safe for concurrent use.
type Server struct {
	provider  providers.Provider
	model     core.ModelID
	rooms     RoomStore
	objects   ObjectStore
	publisher Publisher
	coord     *notify.Coordinator
	logger    *slog.Logger
	secret    string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRoomStore sets the data-access collaborator.
func WithRoomStore(rs RoomStore) ServerOption {
	return func(s *Server) { s.rooms = rs }
}

// WithObjectStore sets the storage collaborator.
func WithObjectStore(os ObjectStore) ServerOption {
	return func(s *Server) { s.objects = os }
}

// WithPublisher sets the realtime publish collaborator. Without one, events
// are served to the requester only.
func WithPublisher(p Publisher) ServerOption {
	return func(s *Server) { s.publisher = p }
}

// WithCoordinator sets the fan-out coordinator that tracks publish
// dispatches.
func WithCoordinator(c *notify.Coordinator) ServerOption {
	return func(s *Server) { s.coord = c }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithSecret sets the shared auth secret. Empty disables the check.
func WithSecret(secret string) ServerOption {
	return func(s *Server) { s.secret = secret }
}

// NewServer creates a Server around the given provider and model. In-memory
// collaborators are used unless options replace them.
func NewServer(p providers.Provider, model core.ModelID, opts ...ServerOption) *Server {
	s := &Server{
		provider: p,
		model:    model,
		rooms:    NewMemRoomStore(),
		objects:  NewMemObjectStore(""),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.coord == nil {
		s.coord = notify.NewCoordinator(s.logger)
	}
	return s
}

// Coordinator exposes the fan-out coordinator for shutdown draining.
func (s *Server) Coordinator() *notify.Coordinator {
	return s.coord
}

// Handler returns the routed HTTP handler with the auth gate applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/rooms/{room}/messages", s.handleListMessages)
	mux.HandleFunc("DELETE /api/rooms/{room}", s.handleDeleteRoom)
	mux.HandleFunc("GET /api/objects/{key}", s.handleGetObject)
	return requireSecret(s.secret, mux)
}

// handleChat serves both reply modes of the chat endpoint.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Message) < minMessageLen || len(req.Message) > maxMessageLen {
		writeJSONError(w, http.StatusBadRequest, "message must be between 1 and 10000 characters")
		return
	}
	if req.RoomID == "" {
		writeJSONError(w, http.StatusBadRequest, "room_id is required")
		return
	}

	if len(req.Images) > 0 && !s.provider.Supports(core.FeatureVision) {
		writeJSONError(w, http.StatusBadRequest,
			"provider "+s.provider.ID()+" does not support image input")
		return
	}

	ctx := r.Context()

	past, err := s.roomHistory(ctx, req.RoomID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load room history")
		return
	}

	system := buildSystemPrompt(req.CurrentComposition, req.SelectedInstanceID)
	history := buildHistory(system, past, req.Message)

	if _, err := s.rooms.AppendMessage(ctx, req.RoomID, core.Message{Role: core.RoleUser, Content: req.Message}); err != nil {
		s.logger.Warn("failed to persist user message", "room", req.RoomID, "error", err)
	}

	chatReq := &core.ChatRequest{Model: s.model, Messages: history}

	if req.Stream {
		s.streamChat(w, r, &req, chatReq)
		return
	}
	s.syncChat(w, r, &req, chatReq)
}

// roomHistory pages through the complete room history in chronological
// order. A single page would drop the most recent turns in long-lived rooms.
func (s *Server) roomHistory(ctx context.Context, roomID string) ([]StoredMessage, error) {
	var all []StoredMessage
	cursor := ""
	for {
		page, err := s.rooms.ListMessages(ctx, roomID, 0, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Messages...)
		if page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// syncChat performs the blocking round trip and replies with the parsed
// result.
func (s *Server) syncChat(w http.ResponseWriter, r *http.Request, req *ChatRequest, chatReq *core.ChatRequest) {
	ctx := r.Context()

	var resp *core.ChatResponse
	var err error

	if len(req.Images) > 0 {
		var stream *core.ChatStream
		stream, err = s.provider.StreamVisionChat(ctx, chatReq, req.Images)
		if err == nil {
			resp, err = core.DrainStream(ctx, stream)
		}
	} else {
		resp, err = s.provider.Chat(ctx, chatReq)
	}

	if err != nil {
		writeJSONError(w, statusForProviderError(err), err.Error())
		return
	}

	parsed := compose.Parse(resp.Output)
	s.persistAssistantReply(r, req.RoomID, &parsed)

	writeJSON(w, http.StatusOK, ChatReply{
		Message: resp.AssistantMessage(),
		Parsed:  &parsed,
		Usage:   resp.Usage,
	})
}

// streamChat serves parser events over SSE, one JSON event per frame,
// terminated by exactly one done or error frame. Each chat/code/done event
// also fans out to the realtime publisher through the coordinator.
func (s *Server) streamChat(w http.ResponseWriter, r *http.Request, req *ChatRequest, chatReq *core.ChatRequest) {
	ctx := r.Context()

	var stream *core.ChatStream
	var err error
	if len(req.Images) > 0 {
		stream, err = s.provider.StreamVisionChat(ctx, chatReq, req.Images)
	} else {
		stream, err = s.provider.StreamChat(ctx, chatReq)
	}
	if err != nil {
		writeJSONError(w, statusForProviderError(err), err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported by connection")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	proxied, capture := captureStream(ctx, stream)

	completed := false
	for ev := range compose.StreamEvents(ctx, proxied) {
		if err := writeSSEEvent(w, flusher, ev); err != nil {
			// Client went away; ctx cancellation tears down the upstream.
			return
		}
		s.publishEvent(req.RoomID, ev)
		if ev.Type == compose.EventDone {
			completed = true
		}
	}

	if completed {
		parsed := compose.Parse(capture.Raw())
		s.persistAssistantReply(r, req.RoomID, &parsed)
	}
}

// persistAssistantReply stores the assistant turn and uploads each generated
// file. Best effort: failures are logged, never surfaced.
func (s *Server) persistAssistantReply(r *http.Request, roomID string, parsed *compose.ParsedResponse) {
	ctx := r.Context()

	if _, err := s.rooms.AppendMessage(ctx, roomID, core.Message{Role: core.RoleAssistant, Content: parsed.Raw}); err != nil {
		s.logger.Warn("failed to persist assistant message", "room", roomID, "error", err)
	}

	for _, f := range parsed.Files {
		if _, err := s.objects.Put(ctx, []byte(f.Content), "text/plain; charset=utf-8"); err != nil {
			s.logger.Warn("failed to store generated file", "room", roomID, "path", f.Path, "error", err)
		}
	}
}

// publishEvent hands one event to the coordinator for best-effort fan-out.
// Error events stay private to the requester.
func (s *Server) publishEvent(roomID string, ev compose.Event) {
	if s.publisher == nil || ev.Type == compose.EventError {
		return
	}

	s.coord.Dispatch("publish:"+string(ev.Type), func(ctx context.Context) error {
		return s.publisher.Publish(ctx, roomID, string(ev.Type), ev)
	})
}

// handleListMessages serves paginated room history.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	page, err := s.rooms.ListMessages(r.Context(), roomID, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleDeleteRoom removes a room and its history.
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	err := s.rooms.DeleteRoom(r.Context(), r.PathValue("room"))
	if errors.Is(err, ErrRoomNotFound) {
		writeJSONError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to delete room")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetObject serves a stored object by key.
func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.objects.Get(r.Context(), r.PathValue("key"))
	if errors.Is(err, ErrObjectNotFound) {
		writeJSONError(w, http.StatusNotFound, "object not found")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to fetch object")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusForProviderError maps provider failures to HTTP statuses. A missing
// capability is the caller's problem; everything else is an upstream fault.
func statusForProviderError(err error) int {
	switch {
	case errors.Is(err, core.ErrNotSupported):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorReply{Error: message})
}

package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	gws "github.com/gobwas/ws"

	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/internal/ws"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

type ChatsHandler struct {
	ChatService *service.ChatService
	Relay       *ws.Relay
}

type postMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	views, err := h.ChatService.Rooms(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to list chat rooms", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list chats")
		return
	}

	rooms := make([]roomPayload, 0, len(views))
	for _, v := range views {
		rooms = append(rooms, toRoomPayload(v))
	}
	httpx.WriteJSON(w, http.StatusOK, rooms)
}

func (h *ChatsHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	messages, err := h.ChatService.Messages(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx), limit)
	if err != nil {
		if h.writeChatError(w, err) {
			return
		}
		log.Error("failed to list messages", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMessagePayloads(messages))
}

func (h *ChatsHandler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req postMessageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.ChatService.Post(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx), req.Content)
	if err != nil {
		if h.writeChatError(w, err) {
			return
		}
		log.Error("failed to post message", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	// Deliver to any live sockets in the room as well, so a REST-posted
	// message shows up immediately for a connected partner.
	h.Relay.Deliver(message)

	httpx.WriteJSON(w, http.StatusCreated, toMessagePayload(message))
}

// HandleWS upgrades the request to a WebSocket and hands the connection
// to the relay. Auth ran in the middleware chain; the token travels in a
// query parameter because browsers cannot set headers on ws dials.
func (h *ChatsHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roomID := r.PathValue("id")
	userID := httpx.UserIDFromContext(ctx)

	room, err := h.ChatService.Room(ctx, roomID, userID)
	if err != nil {
		if h.writeChatError(w, err) {
			return
		}
		log.Error("failed to fetch chat room", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to open chat")
		return
	}

	conn, _, _, err := gws.UpgradeHTTP(r, w)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}

	// The request context dies with the HTTP handler; the socket outlives
	// it, so the relay runs on a detached context carrying the logger.
	relayCtx := slogx.WithContext(context.Background(), slogx.FromContext(ctx))
	go h.Relay.Serve(relayCtx, conn, room.ID, userID)
}

// writeChatError maps the chat service sentinels; reports whether err was
// handled.
func (h *ChatsHandler) writeChatError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		httpx.WriteError(w, http.StatusNotFound, "chat room not found")
	case errors.Is(err, service.ErrNotParticipant):
		httpx.WriteError(w, http.StatusForbidden, "not a participant of this chat")
	case errors.Is(err, service.ErrEmptyMessage):
		httpx.WriteError(w, http.StatusBadRequest, "message content is empty")
	case errors.Is(err, service.ErrMessageTooLong):
		httpx.WriteError(w, http.StatusBadRequest, "message content too long")
	default:
		return false
	}
	return true
}

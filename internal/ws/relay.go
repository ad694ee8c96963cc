package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/metrics"
	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

// Relay runs the per-connection read loop: message events are persisted
// through the chat service and fanned out to the room, typing events are
// fanned out without touching storage.
type Relay struct {
	Hub   *Hub
	Chats *service.ChatService
}

// Serve takes ownership of an upgraded connection and blocks until the
// client disconnects or a protocol error occurs. The caller must have
// verified that userID is a participant of roomID.
func (r *Relay) Serve(ctx context.Context, netConn net.Conn, roomID, userID string) {
	log := slogx.FromContext(ctx).With(
		slog.String("room_id", roomID),
		slog.String("user_id", userID),
	)

	conn := &Conn{UserID: userID, RoomID: roomID, netConn: netConn}
	r.Hub.Join(conn)
	metrics.WSConnections.Inc()
	log.Debug("chat socket opened")

	defer func() {
		r.Hub.Leave(conn)
		metrics.WSConnections.Dec()
		_ = conn.Close()
		log.Debug("chat socket closed")
	}()

	for {
		data, op, err := wsutil.ReadClientData(netConn)
		if err != nil {
			var closed wsutil.ClosedError
			if !errors.As(err, &closed) {
				log.Debug("chat socket read failed", slog.Any("error", err))
			}
			return
		}
		if op != ws.OpText {
			continue
		}

		var event ClientEvent
		if err := json.Unmarshal(data, &event); err != nil {
			r.sendError(conn, "malformed event")
			continue
		}

		switch event.Type {
		case EventMessage:
			r.handleMessage(ctx, conn, event.Content, log)
		case EventTyping:
			r.handleTyping(conn)
		default:
			r.sendError(conn, "unknown event type")
		}
	}
}

func (r *Relay) handleMessage(ctx context.Context, conn *Conn, content string, log *slog.Logger) {
	message, err := r.Chats.Post(ctx, conn.RoomID, conn.UserID, content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			r.sendError(conn, "message content is empty")
		case errors.Is(err, service.ErrMessageTooLong):
			r.sendError(conn, "message content too long")
		default:
			log.Error("failed to persist chat message", slog.Any("error", err))
			r.sendError(conn, "failed to send message")
		}
		return
	}

	frame, err := messageEvent(message)
	if err != nil {
		log.Error("failed to encode message event", slog.Any("error", err))
		return
	}

	// The sender gets the stored message back too, as delivery confirmation
	// carrying the id and timestamp.
	r.Hub.Broadcast(conn.RoomID, frame, nil)
	metrics.MessagesTotal.WithLabelValues("message").Inc()
}

// Deliver fans an already-persisted message out to the room's live
// sockets. Used by the REST message endpoint so both transports converge
// on the same event stream.
func (r *Relay) Deliver(m domain.Message) {
	frame, err := messageEvent(m)
	if err != nil {
		return
	}
	r.Hub.Broadcast(m.RoomID, frame, nil)
	metrics.MessagesTotal.WithLabelValues("message").Inc()
}

func (r *Relay) handleTyping(conn *Conn) {
	frame, err := typingEvent(conn.UserID)
	if err != nil {
		return
	}
	r.Hub.Broadcast(conn.RoomID, frame, conn)
	metrics.MessagesTotal.WithLabelValues("typing").Inc()
}

func (r *Relay) sendError(conn *Conn, msg string) {
	if frame, err := errorEvent(msg); err == nil {
		_ = conn.WriteMessage(frame)
	}
}

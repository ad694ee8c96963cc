package ws

import (
	"encoding/json"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
)

// EventType discriminates the JSON frames exchanged over a chat socket.
type EventType string

const (
	// EventMessage is a persisted chat message. Client frames carry
	// content; server frames carry the stored message.
	EventMessage EventType = "message"

	// EventTyping is an ephemeral typing indicator, relayed to the room
	// but never persisted.
	EventTyping EventType = "typing"

	// EventError reports a rejected client frame back to the sender only.
	EventError EventType = "error"
)

// ClientEvent is a frame received from a client.
type ClientEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content,omitempty"`
}

// MessagePayload mirrors a stored chat message on the wire.
type MessagePayload struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ServerEvent is a frame sent to clients.
type ServerEvent struct {
	Type    EventType       `json:"type"`
	Message *MessagePayload `json:"message,omitempty"`
	UserID  string          `json:"userId,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func messageEvent(m domain.Message) ([]byte, error) {
	return json.Marshal(ServerEvent{
		Type: EventMessage,
		Message: &MessagePayload{
			ID:        m.ID,
			RoomID:    m.RoomID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		},
	})
}

func typingEvent(userID string) ([]byte, error) {
	return json.Marshal(ServerEvent{Type: EventTyping, UserID: userID})
}

func errorEvent(msg string) ([]byte, error) {
	return json.Marshal(ServerEvent{Type: EventError, Error: msg})
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/pkg/idx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

var (
	ErrRoomNotFound   = errors.New("chat room not found")
	ErrNotParticipant = errors.New("user is not a participant of this room")
	ErrEmptyMessage   = errors.New("message content is empty")
	ErrMessageTooLong = errors.New("message content too long")
)

// MaxMessageLength bounds a single chat message.
const MaxMessageLength = 2000

// DefaultMessageLimit caps a message-history fetch when the caller does
// not ask for a specific page size.
const DefaultMessageLimit = 200

type ChatService struct {
	Store store.Store
}

// RoomView pairs a chat room with the other participant's profile for the
// chat list.
type RoomView struct {
	Room    domain.ChatRoom
	Partner domain.User
}

// Rooms lists userID's chat rooms, most recent activity first, with the
// partner profile attached to each.
func (s *ChatService) Rooms(ctx context.Context, userID string) ([]RoomView, error) {
	log := slogx.FromContext(ctx)

	rooms, err := s.Store.ChatRooms().ListRoomsForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list chat rooms", slog.Any("error", err))
		return nil, err
	}

	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		partner, err := s.Store.Users().GetUserByID(ctx, room.Partner(userID))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("chat room references missing user",
					slog.String("room_id", room.ID),
				)
				continue
			}
			return nil, err
		}
		views = append(views, RoomView{Room: room, Partner: partner})
	}
	return views, nil
}

// Room fetches a single room and verifies userID belongs to it. Used by
// the message endpoints and the WebSocket upgrade path.
func (s *ChatService) Room(ctx context.Context, roomID, userID string) (domain.ChatRoom, error) {
	room, err := s.Store.ChatRooms().GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ChatRoom{}, ErrRoomNotFound
		}
		return domain.ChatRoom{}, err
	}
	if !room.HasParticipant(userID) {
		return domain.ChatRoom{}, ErrNotParticipant
	}
	return room, nil
}

// Messages returns the room's history oldest first and marks the other
// side's messages as read, since fetching the history is what displaying
// the conversation means.
func (s *ChatService) Messages(ctx context.Context, roomID, userID string, limit int) ([]domain.Message, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorise.
	if _, err := s.Room(ctx, roomID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	// 2. Fetch the history.
	messages, err := s.Store.Messages().ListByRoom(ctx, roomID, limit)
	if err != nil {
		log.Error("failed to list messages",
			slog.String("room_id", roomID),
			slog.Any("error", err),
		)
		return nil, err
	}

	// 3. Mark the partner's messages read.
	if err := s.Store.Messages().MarkRead(ctx, roomID, userID); err != nil {
		log.Error("failed to mark messages read",
			slog.String("room_id", roomID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return messages, nil
}

// Post appends a message to the room and bumps its activity timestamp.
func (s *ChatService) Post(ctx context.Context, roomID, senderID, content string) (domain.Message, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate content.
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, ErrEmptyMessage
	}
	if len(content) > MaxMessageLength {
		return domain.Message{}, ErrMessageTooLong
	}

	// 2. Authorise.
	if _, err := s.Room(ctx, roomID, senderID); err != nil {
		return domain.Message{}, err
	}

	now := time.Now().UTC()
	message := domain.Message{
		ID:        idx.New().String(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: now,
	}

	// 3. Persist the message and the room's last-activity marker together.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Messages().CreateMessage(ctx, message); err != nil {
			return err
		}
		return tx.ChatRooms().TouchLastMessage(ctx, roomID, now)
	})
	if err != nil {
		log.Error("failed to post message",
			slog.String("room_id", roomID),
			slog.Any("error", err),
		)
		return domain.Message{}, err
	}

	log.Debug("message posted",
		slog.String("room_id", roomID),
		slog.String("message_id", message.ID),
	)

	return message, nil
}

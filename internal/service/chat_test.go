package service

import (
	"context"
	"strings"
	"testing"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestChatFlow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	invites := &InviteService{Store: st}
	chats := &ChatService{Store: st}

	a := seedUser(t, st, "a", domain.RoleFrontend, []string{"IoT"})
	b := seedUser(t, st, "b", domain.RoleBackend, []string{"IoT"})
	outsider := seedUser(t, st, "outsider", domain.RoleBackend, []string{"IoT"})

	invite, err := invites.SendInvite(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = invites.Respond(ctx, invite.ID, b.ID, true)
	require.NoError(t, err)

	rooms, err := chats.Rooms(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	room := rooms[0].Room
	require.Equal(t, b.ID, rooms[0].Partner.ID)

	t.Run("post and fetch in order", func(t *testing.T) {
		first, err := chats.Post(ctx, room.ID, a.ID, "hey!")
		require.NoError(t, err)
		second, err := chats.Post(ctx, room.ID, b.ID, "hi there")
		require.NoError(t, err)

		messages, err := chats.Messages(ctx, room.ID, a.ID, 0)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		require.Equal(t, first.ID, messages[0].ID)
		require.Equal(t, second.ID, messages[1].ID)
	})

	t.Run("fetching marks the partner's messages read", func(t *testing.T) {
		// First fetch runs MarkRead; the second observes the flag.
		_, err := chats.Messages(ctx, room.ID, b.ID, 0)
		require.NoError(t, err)

		messages, err := chats.Messages(ctx, room.ID, b.ID, 0)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		for _, m := range messages {
			if m.SenderID == a.ID {
				require.True(t, m.IsRead)
			} else {
				require.False(t, m.IsRead)
			}
		}
	})

	t.Run("posting bumps the room's last activity", func(t *testing.T) {
		updated, err := chats.Room(ctx, room.ID, a.ID)
		require.NoError(t, err)
		require.False(t, updated.LastMessageAt.Before(room.LastMessageAt))
	})

	t.Run("outsiders cannot read or post", func(t *testing.T) {
		_, err := chats.Messages(ctx, room.ID, outsider.ID, 0)
		require.ErrorIs(t, err, ErrNotParticipant)

		_, err = chats.Post(ctx, room.ID, outsider.ID, "let me in")
		require.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("empty and oversized messages rejected", func(t *testing.T) {
		_, err := chats.Post(ctx, room.ID, a.ID, "   ")
		require.ErrorIs(t, err, ErrEmptyMessage)

		_, err = chats.Post(ctx, room.ID, a.ID, strings.Repeat("x", MaxMessageLength+1))
		require.ErrorIs(t, err, ErrMessageTooLong)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := chats.Room(ctx, "01K00000000000000000000000", a.ID)
		require.ErrorIs(t, err, ErrRoomNotFound)
	})
}

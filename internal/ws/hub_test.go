package ws

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/require"

	"github.com/hackmatehq/hackmate/internal/domain"
)

// pipeConn returns a hub connection backed by one end of an in-memory
// pipe, plus the peer end to read its frames from.
func pipeConn(userID, roomID string) (*Conn, net.Conn) {
	server, client := net.Pipe()
	return &Conn{UserID: userID, RoomID: roomID, netConn: server}, client
}

// readFrameAsync reads one text frame from peer in the background. The
// pipe is synchronous, so reads must be in flight before a broadcast.
func readFrameAsync(peer net.Conn) <-chan string {
	out := make(chan string, 1)
	go func() {
		_ = peer.SetReadDeadline(time.Now().Add(time.Second))
		data, err := wsutil.ReadServerText(peer)
		if err != nil {
			out <- "read error: " + err.Error()
			return
		}
		out <- string(data)
	}()
	return out
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	a, aPeer := pipeConn("user-a", "room-1")
	b, bPeer := pipeConn("user-b", "room-1")
	other, otherPeer := pipeConn("user-c", "room-2")

	hub.Join(a)
	hub.Join(b)
	hub.Join(other)
	require.Equal(t, 3, hub.Count())

	t.Run("reaches the whole room and nobody else", func(t *testing.T) {
		fromA := readFrameAsync(aPeer)
		fromB := readFrameAsync(bPeer)

		hub.Broadcast("room-1", []byte(`"hello"`), nil)

		require.Equal(t, `"hello"`, <-fromA)
		require.Equal(t, `"hello"`, <-fromB)

		require.NoError(t, otherPeer.SetReadDeadline(time.Now().Add(50*time.Millisecond)))
		_, err := wsutil.ReadServerText(otherPeer)
		require.Error(t, err) // nothing arrives in room-2
	})

	t.Run("except skips the sender", func(t *testing.T) {
		fromB := readFrameAsync(bPeer)

		hub.Broadcast("room-1", []byte(`"typing"`), a)

		require.Equal(t, `"typing"`, <-fromB)

		require.NoError(t, aPeer.SetReadDeadline(time.Now().Add(50*time.Millisecond)))
		_, err := wsutil.ReadServerText(aPeer)
		require.Error(t, err)
	})

	t.Run("leave empties the room", func(t *testing.T) {
		hub.Leave(a)
		hub.Leave(b)
		require.Equal(t, 1, hub.Count())

		// Broadcast to an empty room is a no-op.
		hub.Broadcast("room-1", []byte(`"ghost"`), nil)
	})
}

func TestEventEncoding(t *testing.T) {
	t.Parallel()

	t.Run("message event carries the stored message", func(t *testing.T) {
		created := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
		frame, err := messageEvent(domain.Message{
			ID:        "msg-1",
			RoomID:    "room-1",
			SenderID:  "user-a",
			Content:   "hey",
			CreatedAt: created,
		})
		require.NoError(t, err)

		var event ServerEvent
		require.NoError(t, json.Unmarshal(frame, &event))
		require.Equal(t, EventMessage, event.Type)
		require.NotNil(t, event.Message)
		require.Equal(t, "msg-1", event.Message.ID)
		require.Equal(t, "hey", event.Message.Content)
		require.True(t, created.Equal(event.Message.CreatedAt))
	})

	t.Run("typing event carries only the user", func(t *testing.T) {
		frame, err := typingEvent("user-b")
		require.NoError(t, err)

		var event ServerEvent
		require.NoError(t, json.Unmarshal(frame, &event))
		require.Equal(t, EventTyping, event.Type)
		require.Equal(t, "user-b", event.UserID)
		require.Nil(t, event.Message)
	})

	t.Run("client frames parse", func(t *testing.T) {
		var event ClientEvent
		require.NoError(t, json.Unmarshal([]byte(`{"type":"message","content":"hi"}`), &event))
		require.Equal(t, EventMessage, event.Type)
		require.Equal(t, "hi", event.Content)
	})
}

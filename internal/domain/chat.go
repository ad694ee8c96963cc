package domain

import "time"

// ChatRoom pairs two users after an accepted invite. Participants are
// stored in normalised order (A < B) so the pair is unique regardless of
// who accepted.
type ChatRoom struct {
	ID            string
	InviteID      string
	ParticipantA  string
	ParticipantB  string
	IsActive      bool
	LastMessageAt time.Time
	CreatedAt     time.Time
}

// Partner returns the other participant, or "" if userID is not in the room.
func (r ChatRoom) Partner(userID string) string {
	switch userID {
	case r.ParticipantA:
		return r.ParticipantB
	case r.ParticipantB:
		return r.ParticipantA
	}
	return ""
}

// HasParticipant reports whether userID belongs to the room.
func (r ChatRoom) HasParticipant(userID string) bool {
	return userID == r.ParticipantA || userID == r.ParticipantB
}

type Message struct {
	ID        string
	RoomID    string
	SenderID  string
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

package http

import (
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/matching"
	"github.com/hackmatehq/hackmate/internal/service"
)

// userPayload is the public view of a user: no email, no password hash,
// no browsing lists.
type userPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Experience string   `json:"experience"`
	Interests  []string `json:"interests"`
	Bio        string   `json:"bio"`
}

// accountPayload is the owner's view, returned by auth and profile
// endpoints.
type accountPayload struct {
	userPayload
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

func toUserPayload(u domain.User) userPayload {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return userPayload{
		ID:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		Experience: string(u.Experience),
		Interests:  interests,
		Bio:        u.Bio,
	}
}

func toAccountPayload(u domain.User) accountPayload {
	return accountPayload{
		userPayload: toUserPayload(u),
		Email:       u.Email,
		IsActive:    u.IsActive,
	}
}

type cardPayload struct {
	User       userPayload `json:"user"`
	MatchScore int         `json:"matchScore"`
}

func toCardPayload(c matching.Candidate) cardPayload {
	return cardPayload{User: toUserPayload(c.User), MatchScore: c.Score}
}

type invitePayload struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	MatchScore  int         `json:"matchScore"`
	User        userPayload `json:"user"`
	RespondedAt *time.Time  `json:"respondedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func toInvitePayload(v service.InviteView) invitePayload {
	return invitePayload{
		ID:          v.Invite.ID,
		Status:      string(v.Invite.Status),
		MatchScore:  v.Invite.MatchScore,
		User:        toUserPayload(v.User),
		RespondedAt: v.Invite.RespondedAt,
		CreatedAt:   v.Invite.CreatedAt,
	}
}

func toInvitePayloads(views []service.InviteView) []invitePayload {
	out := make([]invitePayload, 0, len(views))
	for _, v := range views {
		out = append(out, toInvitePayload(v))
	}
	return out
}

type inviteStatsPayload struct {
	Sent            int `json:"sent"`
	Received        int `json:"received"`
	PendingReceived int `json:"pendingReceived"`
	Accepted        int `json:"accepted"`
}

func toInviteStatsPayload(s service.InviteStats) inviteStatsPayload {
	return inviteStatsPayload{
		Sent:            s.Sent,
		Received:        s.Received,
		PendingReceived: s.PendingReceived,
		Accepted:        s.Accepted,
	}
}

type roomPayload struct {
	ID            string      `json:"id"`
	Partner       userPayload `json:"partner"`
	IsActive      bool        `json:"isActive"`
	LastMessageAt time.Time   `json:"lastMessageAt"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func toRoomPayload(v service.RoomView) roomPayload {
	return roomPayload{
		ID:            v.Room.ID,
		Partner:       toUserPayload(v.Partner),
		IsActive:      v.Room.IsActive,
		LastMessageAt: v.Room.LastMessageAt,
		CreatedAt:     v.Room.CreatedAt,
	}
}

type messagePayload struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessagePayload(m domain.Message) messagePayload {
	return messagePayload{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagePayloads(messages []domain.Message) []messagePayload {
	out := make([]messagePayload, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessagePayload(m))
	}
	return out
}

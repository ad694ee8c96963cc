package domain

import "time"

// InviteStatus tracks the single pending → accepted/rejected transition.
// Terminal states never change again.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// Invite is one user asking another to team up. The (FromUser, ToUser)
// pair is unique for the lifetime of both accounts, and MatchScore is a
// snapshot taken at send time that is never recomputed.
type Invite struct {
	ID          string
	FromUser    string
	ToUser      string
	Status      InviteStatus
	MatchScore  int // 0..100
	RespondedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

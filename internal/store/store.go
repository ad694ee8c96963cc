package store

import (
	"context"
	"errors"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep the per-table concerns tidy and let
// service tests fake a single repo without touching the rest.
type Store interface {
	Users() Users
	Invites() Invites
	ChatRooms() ChatRooms
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn errors,
	// committed otherwise. Preferred over Tx for multi-step mutations
	// (e.g. invite creation plus seen-list update).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user; ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user with the seen/skipped sets loaded.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile overwrites the editable profile fields (name, role,
	// experience, interests, bio) and bumps updated_at.
	UpdateProfile(ctx context.Context, u domain.User) error

	// SetActive flips the is_active flag.
	SetActive(ctx context.Context, userID string, active bool) error

	// ListCandidates returns active users whose id is not in excludeIDs.
	// Seen/skipped sets are not loaded; candidates only need profile data.
	// No ordering guarantee.
	ListCandidates(ctx context.Context, excludeIDs []string) ([]domain.User, error)

	// AddSeen records that userID has been shown seenID. Idempotent
	// set-add: repeat calls are no-ops.
	AddSeen(ctx context.Context, userID, seenID string) error

	// AddSkipped records an explicit skip. Idempotent set-add.
	AddSkipped(ctx context.Context, userID, skippedID string) error

	// ResetLists clears both the seen and skipped sets.
	ResetLists(ctx context.Context, userID string) error
}

type Invites interface {
	// CreateInvite inserts a pending invite with its snapshot score;
	// ErrAlreadyExists when an invite for the (from, to) pair exists.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	GetInviteByID(ctx context.Context, id string) (domain.Invite, error)

	GetInviteByPair(ctx context.Context, fromUser, toUser string) (domain.Invite, error)

	// ListInvitedIDs returns the distinct ids fromUser has ever invited,
	// regardless of status. Feeds the candidate exclusion set.
	ListInvitedIDs(ctx context.Context, fromUser string) ([]string, error)

	// ListIncomingPending returns pending invites addressed to toUser,
	// newest first.
	ListIncomingPending(ctx context.Context, toUser string) ([]domain.Invite, error)

	// ListSent returns all invites fromUser has sent, newest first.
	ListSent(ctx context.Context, fromUser string) ([]domain.Invite, error)

	// UpdateStatus records the pending -> accepted/rejected transition.
	UpdateStatus(ctx context.Context, id string, status domain.InviteStatus, respondedAt time.Time) error

	// Counters for the dashboard and requests stats endpoints.
	CountSent(ctx context.Context, fromUser string) (int, error)
	CountReceived(ctx context.Context, toUser string) (int, error)
	CountPendingReceived(ctx context.Context, toUser string) (int, error)
	CountAccepted(ctx context.Context, userID string) (int, error)
}

type ChatRooms interface {
	// CreateRoom inserts a room; ErrAlreadyExists when the participant
	// pair already has one. Participants must be normalised (A < B).
	CreateRoom(ctx context.Context, room domain.ChatRoom) error

	GetRoomByID(ctx context.Context, id string) (domain.ChatRoom, error)

	// GetRoomByParticipants looks up the room for a pair in either order.
	GetRoomByParticipants(ctx context.Context, a, b string) (domain.ChatRoom, error)

	// ListRoomsForUser returns the user's rooms, most recent activity first.
	ListRoomsForUser(ctx context.Context, userID string) ([]domain.ChatRoom, error)

	// TouchLastMessage bumps last_message_at.
	TouchLastMessage(ctx context.Context, roomID string, at time.Time) error
}

type Messages interface {
	CreateMessage(ctx context.Context, m domain.Message) error

	// ListByRoom returns messages oldest first, capped at limit (0 means
	// no cap).
	ListByRoom(ctx context.Context, roomID string, limit int) ([]domain.Message, error)

	// MarkRead marks all messages in the room not sent by readerID as read.
	MarkRead(ctx context.Context, roomID, readerID string) error
}

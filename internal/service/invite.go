package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/matching"
	"github.com/hackmatehq/hackmate/internal/metrics"
	"github.com/hackmatehq/hackmate/internal/semantic"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/pkg/idx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

var (
	ErrSelfInvite         = errors.New("cannot invite yourself")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrDuplicateInvite    = errors.New("invite already sent to this user")
	ErrAlreadyResponded   = errors.New("invite has already been responded to")
	ErrNotInviteRecipient = errors.New("only the invite recipient can respond")
)

type InviteService struct {
	Store store.Store

	// Semantic mirrors MatchService.Semantic so the score snapshotted on
	// an invite is computed the same way the card was scored.
	Semantic semantic.Provider
}

// SendInvite creates a pending invite from fromID to toID with the match
// score snapshotted at send time. The target also lands in the sender's
// seen set so it stays out of the dashboard pool even after a reset.
func (s *InviteService) SendInvite(ctx context.Context, fromID, toID string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the pair.
	if fromID == toID {
		return domain.Invite{}, ErrSelfInvite
	}

	from, err := s.Store.Users().GetUserByID(ctx, fromID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrUserNotFound
		}
		log.Error("failed to fetch sender", slog.Any("error", err))
		return domain.Invite{}, err
	}

	to, err := s.Store.Users().GetUserByID(ctx, toID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrUserNotFound
		}
		log.Error("failed to fetch recipient", slog.Any("error", err))
		return domain.Invite{}, err
	}

	// 2. Snapshot the score. This is the number the recipient sees on the
	// request card; it is never recomputed, even if either profile changes.
	score01 := matching.BaselineScore(from, to)
	if s.Semantic != nil {
		sim, simErr := s.Semantic.Similarity(ctx,
			semantic.ProfileText(from), semantic.ProfileText(to))
		if simErr != nil {
			log.Debug("semantic similarity unavailable",
				slog.String("candidate_id", toID),
				slog.Any("error", simErr),
			)
			sim = 0
		}
		score01 = matching.HybridScore(score01, sim)
	}

	now := time.Now().UTC()
	invite := domain.Invite{
		ID:         idx.New().String(),
		FromUser:   fromID,
		ToUser:     toID,
		Status:     domain.InvitePending,
		MatchScore: matching.Percent(score01),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// 3. Create the invite and mark the recipient seen atomically. The
	// UNIQUE(from_user, to_user) index enforces one invite per pair.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().CreateInvite(ctx, invite); err != nil {
			return err
		}
		return tx.Users().AddSeen(ctx, fromID, toID)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("duplicate invite attempted",
				slog.String("from_user", fromID),
				slog.String("to_user", toID),
			)
			metrics.InvitesTotal.WithLabelValues("duplicate").Inc()
			return domain.Invite{}, ErrDuplicateInvite
		}
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	metrics.InvitesTotal.WithLabelValues("sent").Inc()

	log.Info("invite sent",
		slog.String("invite_id", invite.ID),
		slog.String("from_user", fromID),
		slog.String("to_user", toID),
		slog.Int("match_score", invite.MatchScore),
	)

	return invite, nil
}

// Respond records the recipient's accept/reject decision. Only the
// recipient may respond, only once; accepting opens a chat room for the
// pair.
func (s *InviteService) Respond(ctx context.Context, inviteID, userID string, accept bool) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Fetch and authorise.
	invite, err := s.Store.Invites().GetInviteByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	if invite.ToUser != userID {
		log.Warn("non-recipient attempted to respond to invite",
			slog.String("invite_id", inviteID),
			slog.String("user_id", userID),
		)
		return domain.Invite{}, ErrNotInviteRecipient
	}

	// 2. The pending -> terminal transition happens at most once.
	if invite.Status != domain.InvitePending {
		return domain.Invite{}, ErrAlreadyResponded
	}

	status := domain.InviteRejected
	if accept {
		status = domain.InviteAccepted
	}
	now := time.Now().UTC()

	// 3. Record the response and, on accept, open the chat room in the
	// same transaction.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().UpdateStatus(ctx, inviteID, status, now); err != nil {
			return err
		}
		if !accept {
			return nil
		}

		a, b := invite.FromUser, invite.ToUser
		if b < a {
			a, b = b, a
		}

		room := domain.ChatRoom{
			ID:            idx.New().String(),
			InviteID:      invite.ID,
			ParticipantA:  a,
			ParticipantB:  b,
			IsActive:      true,
			LastMessageAt: now,
			CreatedAt:     now,
		}
		if err := tx.ChatRooms().CreateRoom(ctx, room); err != nil {
			// The pair may already share a room from an earlier accepted
			// invite in the opposite direction.
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		log.Error("failed to record invite response",
			slog.String("invite_id", inviteID),
			slog.Any("error", err),
		)
		return domain.Invite{}, err
	}

	invite.Status = status
	invite.RespondedAt = &now
	invite.UpdatedAt = now

	metrics.InvitesTotal.WithLabelValues(string(status)).Inc()

	log.Info("invite responded",
		slog.String("invite_id", inviteID),
		slog.String("status", string(status)),
	)

	return invite, nil
}

// InviteView pairs an invite with the counterpart's profile for the
// requests page.
type InviteView struct {
	Invite domain.Invite
	User   domain.User
}

// Incoming lists pending invites addressed to userID, newest first, with
// each sender's profile attached.
func (s *InviteService) Incoming(ctx context.Context, userID string) ([]InviteView, error) {
	invites, err := s.Store.Invites().ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachUsers(ctx, invites, func(inv domain.Invite) string { return inv.FromUser })
}

// Sent lists every invite userID has sent, newest first, with each
// recipient's profile attached.
func (s *InviteService) Sent(ctx context.Context, userID string) ([]InviteView, error) {
	invites, err := s.Store.Invites().ListSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachUsers(ctx, invites, func(inv domain.Invite) string { return inv.ToUser })
}

// Stats returns the invite counters for the requests page.
func (s *InviteService) Stats(ctx context.Context, userID string) (InviteStats, error) {
	return inviteStats(ctx, s.Store, userID)
}

func (s *InviteService) attachUsers(
	ctx context.Context,
	invites []domain.Invite,
	counterpart func(domain.Invite) string,
) ([]InviteView, error) {
	log := slogx.FromContext(ctx)

	views := make([]InviteView, 0, len(invites))
	for _, inv := range invites {
		user, err := s.Store.Users().GetUserByID(ctx, counterpart(inv))
		if err != nil {
			// A deleted counterpart should not blank the whole page.
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("invite references missing user",
					slog.String("invite_id", inv.ID),
				)
				continue
			}
			return nil, err
		}
		views = append(views, InviteView{Invite: inv, User: user})
	}
	return views, nil
}

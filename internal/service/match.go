package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hackmatehq/hackmate/internal/matching"
	"github.com/hackmatehq/hackmate/internal/metrics"
	"github.com/hackmatehq/hackmate/internal/semantic"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

// MatchService drives the dashboard card flow: pick the next candidate,
// record skips, and reset the browsing lists. Scoring itself lives in
// internal/matching; this service owns eligibility and persistence.
type MatchService struct {
	Store store.Store

	// Semantic is the optional similarity provider. When nil, candidates
	// are scored with the baseline formula alone; when set, the baseline is
	// blended with the provider's signal and any provider failure counts as
	// zero similarity for that pair.
	Semantic semantic.Provider
}

// InviteStats are the invite counters shown on the dashboard and the
// requests page.
type InviteStats struct {
	Sent            int
	Received        int
	PendingReceived int
	Accepted        int
}

// DashboardStats summarises a user's browsing and invite activity.
type DashboardStats struct {
	SeenCount    int
	SkippedCount int
	Invites      InviteStats
}

// NextCandidate returns the best eligible teammate card for userID, or
// ok=false when the pool is exhausted. Exhaustion is a normal terminal
// state, not an error; the handler suggests a reset.
func (s *MatchService) NextCandidate(ctx context.Context, userID string) (matching.Candidate, bool, error) {
	log := slogx.FromContext(ctx)

	// 1. Load the viewer with their seen/skipped sets.
	viewer, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return matching.Candidate{}, false, ErrUserNotFound
		}
		log.Error("failed to fetch viewer", slog.Any("error", err))
		return matching.Candidate{}, false, err
	}

	// 2. Build the exclusion set: self, everyone already seen or skipped,
	// and everyone ever invited regardless of invite status.
	invited, err := s.Store.Invites().ListInvitedIDs(ctx, userID)
	if err != nil {
		log.Error("failed to list invited ids", slog.Any("error", err))
		return matching.Candidate{}, false, err
	}

	exclude := make([]string, 0, 1+len(viewer.SeenUsers)+len(viewer.SkippedUsers)+len(invited))
	exclude = append(exclude, userID)
	exclude = append(exclude, viewer.SeenUsers...)
	exclude = append(exclude, viewer.SkippedUsers...)
	exclude = append(exclude, invited...)

	// 3. Fetch and score the eligible pool.
	pool, err := s.Store.Users().ListCandidates(ctx, exclude)
	if err != nil {
		log.Error("failed to list candidates", slog.Any("error", err))
		return matching.Candidate{}, false, err
	}

	cands := make([]matching.Candidate, 0, len(pool))
	for _, candidate := range pool {
		score01 := matching.BaselineScore(viewer, candidate)
		if s.Semantic != nil {
			sim, simErr := s.Semantic.Similarity(ctx,
				semantic.ProfileText(viewer), semantic.ProfileText(candidate))
			if simErr != nil {
				// Best-effort signal: a dead similarity service must never
				// take the dashboard down with it.
				log.Debug("semantic similarity unavailable",
					slog.String("candidate_id", candidate.ID),
					slog.Any("error", simErr),
				)
				sim = 0
			}
			score01 = matching.HybridScore(score01, sim)
		}
		cands = append(cands, matching.Candidate{
			User:  candidate,
			Score: matching.Percent(score01),
		})
	}

	scoring := "baseline"
	if s.Semantic != nil {
		scoring = "hybrid"
	}
	metrics.CandidatesRanked.WithLabelValues(scoring).Add(float64(len(cands)))

	// 4. Rank with a per-call source and take the winner.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	top, ok := matching.Top(cands, rng)
	if !ok {
		log.Debug("candidate pool exhausted", slog.String("user_id", userID))
		return matching.Candidate{}, false, nil
	}

	log.Debug("candidate selected",
		slog.String("user_id", userID),
		slog.String("candidate_id", top.User.ID),
		slog.Int("score", top.Score),
		slog.Int("pool_size", len(cands)),
	)

	return top, true, nil
}

// Skip records that userID passed on targetID. The target lands in both
// the seen and skipped sets; repeating a skip is a no-op.
func (s *MatchService) Skip(ctx context.Context, userID, targetID string) error {
	log := slogx.FromContext(ctx)

	// 1. Both sides must exist; a dangling target id would silently shrink
	// the pool forever.
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := s.Store.Users().GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// 2. Write both set-adds atomically.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().AddSeen(ctx, userID, targetID); err != nil {
			return err
		}
		return tx.Users().AddSkipped(ctx, userID, targetID)
	})
	if err != nil {
		log.Error("failed to record skip",
			slog.String("user_id", userID),
			slog.String("target_id", targetID),
			slog.Any("error", err),
		)
		return err
	}

	log.Debug("skip recorded",
		slog.String("user_id", userID),
		slog.String("target_id", targetID),
	)
	return nil
}

// ResetLists clears the seen and skipped sets so previously passed
// profiles come back into rotation. Users already invited stay excluded:
// the invite records are untouched.
func (s *MatchService) ResetLists(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.Store.Users().ResetLists(ctx, userID); err != nil {
		log.Error("failed to reset lists",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("browsing lists reset", slog.String("user_id", userID))
	return nil
}

// Stats returns the dashboard counters for userID.
func (s *MatchService) Stats(ctx context.Context, userID string) (DashboardStats, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DashboardStats{}, ErrUserNotFound
		}
		return DashboardStats{}, err
	}

	invites, err := inviteStats(ctx, s.Store, userID)
	if err != nil {
		log.Error("failed to count invites", slog.Any("error", err))
		return DashboardStats{}, err
	}

	return DashboardStats{
		SeenCount:    len(user.SeenUsers),
		SkippedCount: len(user.SkippedUsers),
		Invites:      invites,
	}, nil
}

// inviteStats gathers the invite counters shared by the dashboard and the
// requests page.
func inviteStats(ctx context.Context, st store.Store, userID string) (InviteStats, error) {
	sent, err := st.Invites().CountSent(ctx, userID)
	if err != nil {
		return InviteStats{}, err
	}
	received, err := st.Invites().CountReceived(ctx, userID)
	if err != nil {
		return InviteStats{}, err
	}
	pending, err := st.Invites().CountPendingReceived(ctx, userID)
	if err != nil {
		return InviteStats{}, err
	}
	accepted, err := st.Invites().CountAccepted(ctx, userID)
	if err != nil {
		return InviteStats{}, err
	}

	return InviteStats{
		Sent:            sent,
		Received:        received,
		PendingReceived: pending,
		Accepted:        accepted,
	}, nil
}

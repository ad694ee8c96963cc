package http

import (
	"errors"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

type DashboardHandler struct {
	MatchService  *service.MatchService
	InviteService *service.InviteService
}

type nextCardResponse struct {
	Card    *cardPayload `json:"card"`
	HasMore bool         `json:"hasMore"`
}

type targetRequest struct {
	UserID string `json:"userId"`
}

type dashboardStatsResponse struct {
	SeenCount    int                `json:"seenCount"`
	SkippedCount int                `json:"skippedCount"`
	Invites      inviteStatsPayload `json:"invites"`
}

// HandleNextCard returns the next teammate card, or hasMore=false with a
// null card once the pool is exhausted.
func (h *DashboardHandler) HandleNextCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	card, ok, err := h.MatchService.NextCandidate(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("failed to pick next card", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to pick next card")
		return
	}

	if !ok {
		httpx.WriteJSON(w, http.StatusOK, nextCardResponse{Card: nil, HasMore: false})
		return
	}

	payload := toCardPayload(card)
	httpx.WriteJSON(w, http.StatusOK, nextCardResponse{Card: &payload, HasMore: true})
}

func (h *DashboardHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req targetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}

	invite, err := h.InviteService.SendInvite(ctx, httpx.UserIDFromContext(ctx), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfInvite):
			httpx.WriteError(w, http.StatusBadRequest, "cannot invite yourself")
		case errors.Is(err, service.ErrDuplicateInvite):
			httpx.WriteError(w, http.StatusConflict, "invite already sent to this user")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user not found")
		default:
			log.Error("failed to send invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "failed to send invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"id":         invite.ID,
		"status":     string(invite.Status),
		"matchScore": invite.MatchScore,
	})
}

func (h *DashboardHandler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req targetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.MatchService.Skip(ctx, httpx.UserIDFromContext(ctx), req.UserID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("failed to record skip", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to record skip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.MatchService.ResetLists(ctx, httpx.UserIDFromContext(ctx)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("failed to reset lists", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to reset lists")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	stats, err := h.MatchService.Stats(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("failed to load dashboard stats", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dashboardStatsResponse{
		SeenCount:    stats.SeenCount,
		SkippedCount: stats.SkippedCount,
		Invites:      toInviteStatsPayload(stats.Invites),
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

type RequestsHandler struct {
	InviteService *service.InviteService
}

func (h *RequestsHandler) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	views, err := h.InviteService.Incoming(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to list incoming invites", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list incoming invites")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitePayloads(views))
}

func (h *RequestsHandler) HandleSent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	views, err := h.InviteService.Sent(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to list sent invites", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list sent invites")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitePayloads(views))
}

func (h *RequestsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

func (h *RequestsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *RequestsHandler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inviteID := r.PathValue("id")
	if inviteID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invite id is required")
		return
	}

	invite, err := h.InviteService.Respond(ctx, inviteID, httpx.UserIDFromContext(ctx), accept)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusNotFound, "invite not found")
		case errors.Is(err, service.ErrNotInviteRecipient):
			httpx.WriteError(w, http.StatusForbidden, "only the invite recipient can respond")
		case errors.Is(err, service.ErrAlreadyResponded):
			httpx.WriteError(w, http.StatusConflict, "invite has already been responded to")
		default:
			log.Error("failed to respond to invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "failed to respond to invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"id":          invite.ID,
		"status":      string(invite.Status),
		"respondedAt": invite.RespondedAt,
	})
}

func (h *RequestsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	stats, err := h.InviteService.Stats(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to load invite stats", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load invite stats")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInviteStatsPayload(stats))
}

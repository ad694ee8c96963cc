package http

import (
	"errors"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

type updateProfileRequest struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Experience string   `json:"experience"`
	Interests  []string `json:"interests"`
	Bio        string   `json:"bio"`
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.ProfileService.Get(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("failed to fetch profile", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountPayload(user))
}

func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.ProfileService.Update(ctx, httpx.UserIDFromContext(ctx),
		req.Name, domain.Role(req.Role), domain.Experience(req.Experience),
		req.Interests, req.Bio,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProfile):
			httpx.WriteError(w, http.StatusBadRequest, "invalid profile data")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user not found")
		default:
			log.Error("failed to update profile", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountPayload(user))
}

func (h *ProfileHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.ProfileService.Deactivate(ctx, httpx.UserIDFromContext(ctx)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("failed to deactivate profile", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to deactivate profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

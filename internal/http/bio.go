package http

import (
	"errors"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

type BioHandler struct {
	BioService *service.BioService
}

type generateBioRequest struct {
	Count int `json:"count"`
}

type generateBioResponse struct {
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
}

// HandleGenerate returns template-based bio suggestions built from the
// caller's role, experience and interests. Count defaults to 3.
func (h *BioHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	req := generateBioRequest{Count: 3}
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	suggestions, err := h.BioService.Suggestions(ctx, httpx.UserIDFromContext(ctx), req.Count)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteProfile):
			httpx.WriteError(w, http.StatusBadRequest,
				"complete your profile (role, interests, experience) before generating a bio")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user not found")
		default:
			log.Error("failed to generate bio suggestions", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "failed to generate bio suggestions")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, generateBioResponse{
		Suggestions: suggestions,
		Count:       len(suggestions),
	})
}

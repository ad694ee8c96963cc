package http

import (
	"errors"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/pkg/httpx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

type AuthHandler struct {
	AuthService    *service.AuthService
	ProfileService *service.ProfileService
}

type registerRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       string   `json:"role"`
	Experience string   `json:"experience"`
	Interests  []string `json:"interests"`
	Bio        string   `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  accountPayload `json:"user"`
	Token string         `json:"token"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.AuthService.Register(ctx,
		req.Name, req.Email, req.Password,
		domain.Role(req.Role), domain.Experience(req.Experience),
		req.Interests, req.Bio,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, "email already registered")
		case errors.Is(err, service.ErrWeakPassword):
			httpx.WriteError(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, service.ErrInvalidProfile):
			httpx.WriteError(w, http.StatusBadRequest, "invalid profile data")
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "failed to register")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sessionResponse{
		User:  toAccountPayload(user),
		Token: token,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		User:  toAccountPayload(user),
		Token: token,
	})
}

// HandleMe returns the authenticated account. Clients call it on page
// load to restore a session from a stored token.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.ProfileService.Get(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized, "account no longer exists")
			return
		}
		log.Error("failed to load account", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load account")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountPayload(user))
}

// HandleLogout exists for API symmetry. Sessions are stateless bearer
// tokens, so the server has nothing to revoke; clients drop the token.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

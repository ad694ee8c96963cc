package http

import (
	"net/http"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/pkg/httpx"
)

// OptionsHandler serves the closed vocabularies the frontend renders as
// dropdowns, so the option lists live in exactly one place.
type OptionsHandler struct{}

type optionsResponse struct {
	Roles        []string `json:"roles"`
	Experiences  []string `json:"experiences"`
	Interests    []string `json:"interests"`
	MaxInterests int      `json:"maxInterests"`
}

func (h *OptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, optionsResponse{
		Roles: []string{
			string(domain.RoleFrontend),
			string(domain.RoleBackend),
		},
		Experiences: []string{
			string(domain.ExperienceJunior),
			string(domain.ExperienceMiddle),
			string(domain.ExperienceSenior),
		},
		Interests:    domain.InterestOptions,
		MaxInterests: domain.MaxInterests,
	})
}

package domain

import (
	"slices"
	"time"
)

// Role is the team role a user fills. The product only matches across the
// frontend/backend split, so the vocabulary is closed.
type Role string

const (
	RoleFrontend Role = "frontend"
	RoleBackend  Role = "backend"
)

// Experience is a self-reported seniority level.
type Experience string

const (
	ExperienceJunior Experience = "junior"
	ExperienceMiddle Experience = "middle"
	ExperienceSenior Experience = "senior"
)

// InterestOptions is the closed vocabulary of interest tags shown in the
// registration and profile dropdowns. Scoring treats interests as a set
// drawn from this list.
var InterestOptions = []string{
	"Ecology",
	"Economics",
	"FinTech",
	"HealthTech",
	"EdTech",
	"AI&ML",
	"Blockchain",
	"GameDev",
	"IoT",
	"Cybersecurity",
	"Social Impact",
	"E-commerce",
}

// MaxInterests bounds how many tags a profile may select.
const MaxInterests = 5

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	// Profile data for matching.
	Role       Role
	Experience Experience
	Interests  []string
	Bio        string

	// Dashboard tracking. Seen grows monotonically until a reset;
	// Skipped is written together with Seen on every skip.
	SeenUsers    []string
	SkippedUsers []string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidRole(r Role) bool {
	return r == RoleFrontend || r == RoleBackend
}

func ValidExperience(e Experience) bool {
	return e == ExperienceJunior || e == ExperienceMiddle || e == ExperienceSenior
}

// ValidInterests reports whether tags is a non-empty selection within the
// size bound, each drawn from InterestOptions, with no duplicates.
func ValidInterests(tags []string) bool {
	if len(tags) == 0 || len(tags) > MaxInterests {
		return false
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if !slices.Contains(InterestOptions, tag) {
			return false
		}
		if _, dup := seen[tag]; dup {
			return false
		}
		seen[tag] = struct{}{}
	}
	return true
}

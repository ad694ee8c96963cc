package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

var ErrInvalidProfile = errors.New("invalid profile data")

// MaxBioLength bounds the free-text bio.
const MaxBioLength = 500

type ProfileService struct {
	Store store.Store
}

// Get fetches a user's full profile including the seen/skipped sets.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Update overwrites the editable profile fields. Role, experience and
// interests are validated against the closed vocabularies; email and
// password never change through this path.
func (s *ProfileService) Update(
	ctx context.Context,
	userID string,
	name string,
	role domain.Role,
	experience domain.Experience,
	interests []string,
	bio string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	name = strings.TrimSpace(name)
	bio = strings.TrimSpace(bio)
	if name == "" || len(bio) > MaxBioLength {
		return domain.User{}, ErrInvalidProfile
	}
	if !domain.ValidRole(role) || !domain.ValidExperience(experience) || !domain.ValidInterests(interests) {
		return domain.User{}, ErrInvalidProfile
	}

	// 2. Fetch the current record.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Apply and persist.
	user.Name = name
	user.Role = role
	user.Experience = experience
	user.Interests = interests
	user.Bio = bio
	user.UpdatedAt = time.Now().UTC()

	if err := s.Store.Users().UpdateProfile(ctx, user); err != nil {
		log.Error("failed to update profile",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Debug("profile updated", slog.String("user_id", userID))

	return user, nil
}

// Deactivate hides the user from everyone's candidate pool. The account
// and its invites survive; logging back in reactivates it.
func (s *ProfileService) Deactivate(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Users().SetActive(ctx, userID, false); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to deactivate user",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("user deactivated", slog.String("user_id", userID))
	return nil
}

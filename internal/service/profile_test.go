package service

import (
	"context"
	"strings"
	"testing"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ProfileService{Store: st}

	user := seedUser(t, st, "erin", domain.RoleFrontend, []string{"FinTech"})

	updated, err := svc.Update(ctx, user.ID,
		"Erin K", domain.RoleBackend, domain.ExperienceSenior,
		[]string{"AI&ML", "Cybersecurity"}, "Now doing backend.",
	)
	require.NoError(t, err)
	require.Equal(t, "Erin K", updated.Name)
	require.Equal(t, domain.RoleBackend, updated.Role)
	require.Equal(t, domain.ExperienceSenior, updated.Experience)
	require.Equal(t, []string{"AI&ML", "Cybersecurity"}, updated.Interests)

	t.Run("persisted", func(t *testing.T) {
		got, err := svc.Get(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "Erin K", got.Name)
		require.Equal(t, domain.RoleBackend, got.Role)
		require.Equal(t, []string{"AI&ML", "Cybersecurity"}, got.Interests)
	})

	t.Run("email survives profile updates", func(t *testing.T) {
		got, err := svc.Get(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, got.Email)
	})

	t.Run("rejects vocabulary violations", func(t *testing.T) {
		_, err := svc.Update(ctx, user.ID, "Erin K", domain.Role("fullstack"),
			domain.ExperienceSenior, []string{"AI&ML"}, "")
		require.ErrorIs(t, err, ErrInvalidProfile)

		_, err = svc.Update(ctx, user.ID, "Erin K", domain.RoleBackend,
			domain.ExperienceSenior, []string{"AI&ML", "AI&ML"}, "")
		require.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("rejects oversized bio", func(t *testing.T) {
		_, err := svc.Update(ctx, user.ID, "Erin K", domain.RoleBackend,
			domain.ExperienceSenior, []string{"AI&ML"}, strings.Repeat("b", MaxBioLength+1))
		require.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Update(ctx, "01K00000000000000000000000", "Ghost",
			domain.RoleBackend, domain.ExperienceSenior, []string{"AI&ML"}, "")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeactivateHidesFromCandidates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	profiles := &ProfileService{Store: st}
	matches := &MatchService{Store: st}

	viewer := seedUser(t, st, "viewer", domain.RoleFrontend, []string{"IoT"})
	other := seedUser(t, st, "other", domain.RoleBackend, []string{"IoT"})

	_, ok, err := matches.NextCandidate(ctx, viewer.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, profiles.Deactivate(ctx, other.ID))

	_, ok, err = matches.NextCandidate(ctx, viewer.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

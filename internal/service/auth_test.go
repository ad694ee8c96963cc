package service

import (
	"context"
	"testing"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t)}

	user, token, err := svc.Register(ctx,
		"Alice", "Alice@Example.Test", "password123",
		domain.RoleFrontend, domain.ExperienceJunior,
		[]string{"FinTech", "GameDev"}, "Frontend dev.",
	)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)
	require.True(t, user.IsActive)
	require.Equal(t, "alice@example.test", user.Email)

	t.Run("token subject is the user id", func(t *testing.T) {
		claims, err := svc.Signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
	})

	t.Run("login accepts case-insensitive email", func(t *testing.T) {
		got, token, err := svc.Login(ctx, "ALICE@example.test", "password123")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, token)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.test", "not-the-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email rejected with the same error", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.test", "password123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx,
			"Alice Again", "alice@example.test", "password123",
			domain.RoleBackend, domain.ExperienceSenior,
			[]string{"IoT"}, "",
		)
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Signer: newTestSigner(t)}

	valid := func() (string, string, string, domain.Role, domain.Experience, []string) {
		return "Bob", "bob@example.test", "password123", domain.RoleBackend, domain.ExperienceMiddle, []string{"IoT"}
	}

	t.Run("short password", func(t *testing.T) {
		name, email, _, role, exp, interests := valid()
		_, _, err := svc.Register(ctx, name, email, "short", role, exp, interests, "")
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("unknown role", func(t *testing.T) {
		name, email, pass, _, exp, interests := valid()
		_, _, err := svc.Register(ctx, name, email, pass, domain.Role("designer"), exp, interests, "")
		require.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("interest outside the vocabulary", func(t *testing.T) {
		name, email, pass, role, exp, _ := valid()
		_, _, err := svc.Register(ctx, name, email, pass, role, exp, []string{"Skydiving"}, "")
		require.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("too many interests", func(t *testing.T) {
		name, email, pass, role, exp, _ := valid()
		tags := []string{"Ecology", "Economics", "FinTech", "HealthTech", "EdTech", "IoT"}
		_, _, err := svc.Register(ctx, name, email, pass, role, exp, tags, "")
		require.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("missing name", func(t *testing.T) {
		_, email, pass, role, exp, interests := valid()
		_, _, err := svc.Register(ctx, "   ", email, pass, role, exp, interests, "")
		require.ErrorIs(t, err, ErrInvalidProfile)
	})
}

func TestLoginReactivatesDeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := &AuthService{Store: st, Signer: newTestSigner(t)}
	profiles := &ProfileService{Store: st}

	user := seedUser(t, st, "carol", domain.RoleFrontend, []string{"EdTech"})
	require.NoError(t, profiles.Deactivate(ctx, user.ID))

	got, err := profiles.Get(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	logged, _, err := auth.Login(ctx, user.Email, "password123")
	require.NoError(t, err)
	require.True(t, logged.IsActive)

	got, err = profiles.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)
}

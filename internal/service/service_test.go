package service

import (
	"context"
	"testing"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/store/drivers/sqlite"
	"github.com/hackmatehq/hackmate/pkg/cryptox"
	"github.com/hackmatehq/hackmate/pkg/idx"
	"github.com/hackmatehq/hackmate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory database with real migrations applied.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSigner(t *testing.T) *jwtx.Signer {
	t.Helper()

	signer, err := jwtx.NewSigner([]byte("test-secret-0123456789abcdef"), "hackmate-test", time.Hour)
	require.NoError(t, err)
	return signer
}

// seedUser creates an active user directly through the store. Password is
// "password123" unless the test hashes its own.
func seedUser(t *testing.T, st *sqlite.Store, name string, role domain.Role, interests []string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        name + "@example.test",
		PasswordHash: hash,
		Role:         role,
		Experience:   domain.ExperienceMiddle,
		Interests:    interests,
		Bio:          "Test bio for " + name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

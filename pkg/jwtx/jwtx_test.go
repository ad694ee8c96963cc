package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, ttl time.Duration) *Signer {
	t.Helper()
	s, err := NewSigner([]byte("test-secret-0123456789abcdef"), "hackmate", ttl)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)

	raw, err := s.Sign("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", time.Now())
	require.NoError(t, err)

	claims, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", claims.Subject)
	require.Equal(t, "hackmate", claims.Issuer)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Minute)

	raw, err := s.Sign("user", time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	a := newTestSigner(t, time.Hour)
	b, err := NewSigner([]byte("another-secret-entirely-here"), "hackmate", time.Hour)
	require.NoError(t, err)

	raw, err := a.Sign("user", time.Now())
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	other, err := NewSigner([]byte("test-secret-0123456789abcdef"), "someone-else", time.Hour)
	require.NoError(t, err)

	raw, err := other.Sign("user", time.Now())
	require.NoError(t, err)

	s := newTestSigner(t, time.Hour)
	_, err = s.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSignerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSigner([]byte("short"), "hackmate", time.Hour)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)
	_, err := s.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

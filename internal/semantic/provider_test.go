package semantic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestHTTPProviderSimilarity(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/similarity", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"similarity01": 0.73}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	sim, err := p.Similarity(context.Background(), "AI&ML FinTech", "AI&ML HealthTech")
	require.NoError(t, err)
	require.InDelta(t, 0.73, sim, 1e-9)
}

func TestHTTPProviderClampsOutOfRange(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"similarity01": 1.4}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	sim, err := p.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	require.Equal(t, 1.0, sim)
}

func TestHTTPProviderErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL, time.Second)
		_, err := p.Similarity(context.Background(), "a", "b")
		require.Error(t, err)
	})

	t.Run("missing field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL, time.Second)
		_, err := p.Similarity(context.Background(), "a", "b")
		require.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL, 20*time.Millisecond)
		_, err := p.Similarity(context.Background(), "a", "b")
		require.Error(t, err)
	})
}

func TestNoopReportsZero(t *testing.T) {
	t.Parallel()

	sim, err := Noop{}.Similarity(context.Background(), "anything", "at all")
	require.NoError(t, err)
	require.Zero(t, sim)
}

func TestProfileText(t *testing.T) {
	t.Parallel()

	u := domain.User{
		Interests: []string{"AI&ML", "FinTech"},
		Bio:       "Backend engineer who loves data.",
	}
	require.Equal(t, "AI&ML FinTech Backend engineer who loves data.", ProfileText(u))

	require.Equal(t, "", ProfileText(domain.User{}))
}

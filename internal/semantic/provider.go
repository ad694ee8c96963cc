// Package semantic integrates the optional external similarity service
// that embeds profile text and returns a cosine-similarity signal. The
// signal is strictly best-effort: every failure mode collapses to a zero
// contribution and never blocks or fails a ranking request.
package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
)

// DefaultTimeout bounds a single similarity call. Ranking a dashboard
// card fans out one call per candidate, so this stays short.
const DefaultTimeout = 2 * time.Second

// Provider supplies a semantic similarity in [0,1] for two profile texts.
type Provider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Noop always reports zero similarity without error. It stands in for a
// configured-but-silent provider in tests; an unconfigured deployment uses
// no provider at all and scores with the baseline formula alone.
type Noop struct{}

func (Noop) Similarity(context.Context, string, string) (float64, error) {
	return 0, nil
}

// HTTPProvider calls the similarity service over HTTP.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type similarityRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type similarityResponse struct {
	Similarity01 *float64 `json:"similarity01"`
}

// Similarity posts both profile texts and returns the service's score
// clamped to [0,1]. Non-2xx responses, malformed bodies, and missing
// fields are all errors; callers treat any error as zero similarity.
func (p *HTTPProvider) Similarity(ctx context.Context, a, b string) (float64, error) {
	body, err := json.Marshal(similarityRequest{A: a, B: b})
	if err != nil {
		return 0, fmt.Errorf("semantic: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/similarity", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("semantic: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("semantic: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return 0, fmt.Errorf("semantic: unexpected status %d", res.StatusCode)
	}

	var parsed similarityResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("semantic: decode response: %w", err)
	}
	if parsed.Similarity01 == nil {
		return 0, fmt.Errorf("semantic: response missing similarity01")
	}

	sim := *parsed.Similarity01
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

// ProfileText flattens a profile into the deterministic text the
// similarity service embeds: interests followed by the free-text bio.
func ProfileText(u domain.User) string {
	return strings.TrimSpace(strings.Join(u.Interests, " ") + " " + u.Bio)
}

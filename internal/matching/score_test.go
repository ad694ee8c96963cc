package matching

import (
	"testing"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestJaccard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"AI&ML"}, nil, 0},
		{"identical", []string{"AI&ML", "FinTech"}, []string{"AI&ML", "FinTech"}, 1},
		{"disjoint", []string{"AI&ML"}, []string{"GameDev"}, 0},
		{"one of three shared", []string{"AI&ML", "FinTech"}, []string{"AI&ML", "HealthTech"}, 1.0 / 3.0},
		{"duplicates are immaterial", []string{"AI&ML", "AI&ML"}, []string{"AI&ML"}, 1},
		{"order is immaterial", []string{"FinTech", "AI&ML"}, []string{"AI&ML", "FinTech"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
			require.InDelta(t, tt.want, Jaccard(tt.b, tt.a), 1e-9, "symmetry")
		})
	}
}

func TestJaccardSelfIdentity(t *testing.T) {
	t.Parallel()

	for _, tags := range [][]string{
		{"AI&ML"},
		{"FinTech", "Ecology", "IoT"},
		domain.InterestOptions,
	} {
		require.InDelta(t, 1.0, Jaccard(tags, tags), 1e-9)
	}
}

func TestBaselineScoreRoleTerm(t *testing.T) {
	t.Parallel()

	frontend := domain.User{Role: domain.RoleFrontend}
	backend := domain.User{Role: domain.RoleBackend}

	// No shared interests, so the score is the weighted role term alone.
	require.InDelta(t, 0.7, BaselineScore(frontend, backend), 1e-9)
	require.InDelta(t, 0.35, BaselineScore(frontend, frontend), 1e-9)
	require.InDelta(t, 0.35, BaselineScore(backend, backend), 1e-9)
}

func TestBaselineScoreWorkedExample(t *testing.T) {
	t.Parallel()

	viewer := domain.User{
		Role:      domain.RoleFrontend,
		Interests: []string{"AI&ML", "FinTech"},
	}
	candidate := domain.User{
		Role:      domain.RoleBackend,
		Interests: []string{"AI&ML", "HealthTech"},
	}

	// jaccard = 1/3, baseline = 0.7*1.0 + 0.3*(1/3) = 0.8
	score := BaselineScore(viewer, candidate)
	require.InDelta(t, 0.8, score, 1e-9)
	require.Equal(t, 80, Percent(score))
}

func TestBaselineScoreSymmetryAndRange(t *testing.T) {
	t.Parallel()

	users := []domain.User{
		{Role: domain.RoleFrontend, Interests: []string{"AI&ML", "FinTech"}},
		{Role: domain.RoleBackend, Interests: []string{"AI&ML", "HealthTech", "IoT"}},
		{Role: domain.RoleBackend, Interests: nil},
		{Role: domain.RoleFrontend, Interests: domain.InterestOptions},
		{Role: domain.RoleFrontend, Interests: []string{"GameDev"}},
	}

	for i, a := range users {
		for j, b := range users {
			got := BaselineScore(a, b)
			require.Equal(t, got, BaselineScore(b, a), "symmetry %d/%d", i, j)
			require.GreaterOrEqual(t, got, 0.0)
			require.LessOrEqual(t, got, 1.0)

			pct := Percent(got)
			require.GreaterOrEqual(t, pct, 0)
			require.LessOrEqual(t, pct, 100)
		}
	}
}

func TestHybridScore(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0.65, HybridScore(1, 0), 1e-9)
	require.InDelta(t, 0.35, HybridScore(0, 1), 1e-9)
	require.InDelta(t, 1.0, HybridScore(1, 1), 1e-9)

	// 0.65*0.8 + 0.35*0.5 = 0.695
	require.InDelta(t, 0.695, HybridScore(0.8, 0.5), 1e-9)
}

func TestRoundingToThreeDecimals(t *testing.T) {
	t.Parallel()

	viewer := domain.User{Role: domain.RoleFrontend, Interests: []string{"AI&ML", "FinTech", "IoT"}}
	candidate := domain.User{Role: domain.RoleFrontend, Interests: []string{"AI&ML"}}

	other := domain.User{Role: domain.RoleFrontend, Interests: []string{"AI&ML", "GameDev"}}
	score := BaselineScore(viewer, other) // 0.35 + 0.3*(1/4) = 0.425
	require.InDelta(t, 0.425, score, 1e-9)

	// jaccard = 1/3 produces a repeating fraction; confirm it lands on
	// exactly three decimals: 0.35 + 0.3*(1/3) -> 0.45.
	score = BaselineScore(viewer, candidate)
	require.InDelta(t, 0.45, score, 1e-9)
}

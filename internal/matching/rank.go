package matching

import (
	"math/rand"
	"sort"

	"github.com/hackmatehq/hackmate/internal/domain"
)

// BandWidth is the maximum score gap (out of 100) within which adjacent
// candidates are considered tied. Ties are shuffled so the same
// top-scoring profile does not monopolise the dashboard across repeated
// requests when scores cluster.
const BandWidth = 10

// Candidate is a user together with the percentage score computed for the
// viewing user.
type Candidate struct {
	User  domain.User
	Score int // 0..100
}

// Rank orders candidates best-first: a stable descending sort by score,
// then a shuffle inside each band of adjacent candidates whose scores
// differ by at most BandWidth. Candidates separated by more than
// BandWidth always keep their strict score order. The rng must be a
// per-call source so concurrent rankings do not share state.
//
// The slice is reordered in place and returned for convenience.
func Rank(cands []Candidate, rng *rand.Rand) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})

	// Walk the sorted slice splitting it into bands: a band extends while
	// each next candidate is within BandWidth of its predecessor.
	start := 0
	for i := 1; i <= len(cands); i++ {
		if i < len(cands) && cands[i-1].Score-cands[i].Score <= BandWidth {
			continue
		}
		band := cands[start:i]
		if len(band) > 1 {
			rng.Shuffle(len(band), func(a, b int) {
				band[a], band[b] = band[b], band[a]
			})
		}
		start = i
	}

	return cands
}

// Top returns the best candidate after ranking, or false when cands is
// empty (the "no more candidates" terminal state, not an error).
func Top(cands []Candidate, rng *rand.Rand) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	return Rank(cands, rng)[0], true
}

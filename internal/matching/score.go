// Package matching implements the teammate compatibility scoring and the
// candidate ranking used by the dashboard. Everything here is pure: the
// service layer supplies the data and owns all persistence.
package matching

import (
	"math"

	"github.com/hackmatehq/hackmate/internal/domain"
)

// Scoring weights. Role complementarity dominates because a
// frontend/backend pairing is the product's whole premise; shared
// interests refine the ordering within a role bucket.
const (
	roleWeight     = 0.7
	interestWeight = 0.3

	sameRoleTerm          = 0.5
	complementaryRoleTerm = 1.0

	// Hybrid blend applied only when a semantic similarity signal is
	// available for the pair.
	baselineWeight = 0.65
	semanticWeight = 0.35
)

// Jaccard returns |A∩B| / |A∪B| over two tag collections, treating each
// as a set. Two empty collections score 0: the union size is clamped to 1
// so the division is total.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, tag := range a {
		setA[tag] = struct{}{}
	}

	union := make(map[string]struct{}, len(a)+len(b))
	for tag := range setA {
		union[tag] = struct{}{}
	}

	inter := 0
	interSeen := make(map[string]struct{}, len(b))
	for _, tag := range b {
		union[tag] = struct{}{}
		if _, ok := setA[tag]; ok {
			if _, counted := interSeen[tag]; !counted {
				interSeen[tag] = struct{}{}
				inter++
			}
		}
	}

	denom := len(union)
	if denom == 0 {
		denom = 1
	}
	return float64(inter) / float64(denom)
}

// BaselineScore combines role complementarity and interest similarity
// into a score in [0,1], rounded to 3 decimal places. It is symmetric:
// BaselineScore(a, b) == BaselineScore(b, a).
func BaselineScore(viewer, candidate domain.User) float64 {
	roleTerm := sameRoleTerm
	if viewer.Role != candidate.Role {
		roleTerm = complementaryRoleTerm
	}

	interestTerm := Jaccard(viewer.Interests, candidate.Interests)

	return round3(roleWeight*roleTerm + interestWeight*interestTerm)
}

// HybridScore blends the baseline with an external semantic similarity
// signal, both in [0,1]. Callers pass semantic01 = 0 when the signal is
// unavailable for the pair; the choice of whether to blend at all belongs
// to the caller.
func HybridScore(baseline01, semantic01 float64) float64 {
	return round3(baselineWeight*baseline01 + semanticWeight*semantic01)
}

// Percent converts a [0,1] score to the integer 0..100 form used for
// display and for the snapshot stored on an invite.
func Percent(score01 float64) int {
	return int(math.Round(score01 * 100))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

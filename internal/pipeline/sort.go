package pipeline

import (
	"cmp"
	"slices"

	"github.com/onnwee/homemixer/internal/candidate"
)

// SortByWeightedScore orders candidates by weighted score, highest first.
// Unset scores sort as 0.0 and ties keep their input order.
func SortByWeightedScore(candidates []candidate.PostCandidate) {
	slices.SortStableFunc(candidates, func(a, b candidate.PostCandidate) int {
		return cmp.Compare(candidate.Value(b.WeightedScore), candidate.Value(a.WeightedScore))
	})
}

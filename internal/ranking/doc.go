// Package ranking provides the Gv (value/regret) adjustment applied to post
// candidates after the weighted scorer.
//
// Basic Usage:
//
//	scorer := ranking.NewGvScorer()
//	deltas, err := scorer.Score(ctx, query, candidates)
//	if err != nil {
//		return err
//	}
//	for i := range candidates {
//		scorer.Update(&candidates[i], deltas[i])
//	}
//
// Computation:
//
// ComputeGv turns the Phoenix predictions of a post into a value in (0, 1):
// positive engagement predictions add, negative feedback predictions
// subtract, and the result is squashed with a logistic. GvMultiplier maps
// that value onto a bounded factor around 1.0. With the default parameters
// the factor stays within [0.85, 1.25], so no candidate is ever zeroed out.
//
// Parameters:
//
// The tunables are compiled in (see params.go). GvParams exists so tests and
// hosts can construct a scorer with explicit values; it is never read from
// request state.
package ranking

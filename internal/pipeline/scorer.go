// Package pipeline runs candidate scorers on behalf of the ranking host: it
// invokes a scorer over a batch, checks the result against the batch, and
// merges each partial result back into the live candidate.
package pipeline

import (
	"context"
	"errors"

	"github.com/onnwee/homemixer/internal/candidate"
)

// ErrResultLengthMismatch is returned when a scorer produces a different
// number of results than it was given candidates.
var ErrResultLengthMismatch = errors.New("scorer returned a result count that does not match the batch")

// Scorer is one scoring stage. Score must return exactly one result per
// candidate, in candidate order, and must not modify candidates. Update merges
// a single result into the live candidate it was computed from.
type Scorer[Q, C, R any] interface {
	Name() string
	Score(ctx context.Context, query Q, candidates []C) ([]R, error)
	Update(candidate *C, scored R)
}

// PostScorer is a scorer over post candidates that returns weighted-score deltas.
type PostScorer = Scorer[*candidate.ScoredPostsQuery, candidate.PostCandidate, candidate.ScoreDelta]

package ranking

import (
	"context"
	"fmt"

	"github.com/onnwee/homemixer/internal/candidate"
)

// GvScorerName identifies the Gv scorer in metrics, spans, and logs.
const GvScorerName = "GvScorer"

// GvScorer nudges the weighted score of each candidate toward posts predicted
// to be net-positive. It runs after the weighted scorer and only rescales the
// score that stage produced.
//
// GvScorer holds no mutable state and may be shared across goroutines.
type GvScorer struct {
	params GvParams
}

// NewGvScorer returns a scorer using the compiled-in parameters.
func NewGvScorer() *GvScorer {
	return &GvScorer{params: DefaultGvParams()}
}

// NewGvScorerWithParams returns a scorer using p, or an error if p is invalid.
func NewGvScorerWithParams(p GvParams) (*GvScorer, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gv params: %w", err)
	}
	return &GvScorer{params: p}, nil
}

// Name returns GvScorerName.
func (s *GvScorer) Name() string {
	return GvScorerName
}

// Params returns the parameters the scorer was built with.
func (s *GvScorer) Params() GvParams {
	return s.params
}

// Score returns one delta per candidate, in input order, carrying
// weighted_score * GvMultiplier(ComputeGv(phoenix_scores)). An unset weighted
// score counts as 0. The query is not used and candidates are not modified.
func (s *GvScorer) Score(_ context.Context, _ *candidate.ScoredPostsQuery, candidates []candidate.PostCandidate) ([]candidate.ScoreDelta, error) {
	scored := make([]candidate.ScoreDelta, len(candidates))
	for i := range candidates {
		scored[i] = s.scoreOne(&candidates[i])
	}
	return scored, nil
}

// Update copies the rescaled weighted score into the live candidate.
func (s *GvScorer) Update(c *candidate.PostCandidate, scored candidate.ScoreDelta) {
	scored.Apply(c)
}

func (s *GvScorer) scoreOne(c *candidate.PostCandidate) candidate.ScoreDelta {
	base := candidate.Value(c.WeightedScore)
	gv := ComputeGv(c.PhoenixScores, s.params)
	mult := GvMultiplier(gv, s.params)
	return candidate.ScoreDelta{WeightedScore: candidate.Float64(base * mult)}
}

package ranking

import (
	"math"

	"github.com/onnwee/homemixer/internal/candidate"
)

// ComputeGv derives the Gv value of a post from its Phoenix predictions.
//
// Value signals add, regret signals subtract, and the biased difference is
// squashed through a logistic with steepness SigmoidK:
//
//	raw = (positive - negative) + bias
//	gv  = 1 / (1 + exp(-K * raw))
//
// Unset predictions contribute 0. For finite inputs the result lies in (0, 1)
// and increases monotonically with raw.
func ComputeGv(s candidate.PhoenixScores, p GvParams) float64 {
	v := candidate.Value

	positive := v(s.FavoriteScore)*p.Positive.Favorite +
		v(s.ReplyScore)*p.Positive.Reply +
		v(s.RetweetScore)*p.Positive.Retweet +
		v(s.ShareScore)*p.Positive.Share +
		v(s.DwellScore)*p.Positive.Dwell +
		v(s.QuoteScore)*p.Positive.Quote +
		v(s.FollowAuthorScore)*p.Positive.FollowAuthor

	negative := v(s.NotInterestedScore)*p.Negative.NotInterested +
		v(s.MuteAuthorScore)*p.Negative.MuteAuthor +
		v(s.BlockAuthorScore)*p.Negative.BlockAuthor +
		v(s.ReportScore)*p.Negative.Report

	raw := (positive - negative) + p.Bias

	return Sigmoid(p.SigmoidK * raw)
}

// Sigmoid is the standard logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// GvMultiplier converts a Gv value into the factor applied to an existing
// weighted score.
//
// Gv is clamped to [0, 1] (NaN counts as 0), lifted onto [floor, 1] so the
// factor never collapses, then recentered around 1.0:
//
//	shaped     = floor + (1 - floor) * gv
//	multiplier = 1 + strength * (shaped - 0.5) * 2
func GvMultiplier(gv float64, p GvParams) float64 {
	gv = clampUnit(gv)
	shaped := p.Floor + (1.0-p.Floor)*gv
	return 1.0 + p.Strength*(shaped-0.5)*2.0
}

// MultiplierBounds returns the smallest and largest factor GvMultiplier can
// produce for p.
func MultiplierBounds(p GvParams) (lo, hi float64) {
	return GvMultiplier(0.0, p), GvMultiplier(1.0, p)
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) || x < 0.0 {
		return 0.0
	}
	if x > 1.0 {
		return 1.0
	}
	return x
}

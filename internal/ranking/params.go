package ranking

import (
	"errors"
	"fmt"
	"math"
)

// Compiled-in Gv tunables. These are fixed for the process lifetime and have
// no runtime configuration surface.
const (
	// Positive (value) signal weights
	GvFavoriteW     = 1.00
	GvReplyW        = 0.60
	GvRetweetW      = 0.80
	GvShareW        = 0.90
	GvDwellW        = 0.40
	GvQuoteW        = 0.70
	GvFollowAuthorW = 1.20

	// Negative (regret) signal weights
	GvNotInterestedW = 1.50
	GvMuteAuthorW    = 2.00
	GvBlockAuthorW   = 3.00
	GvReportW        = 4.00

	// GvSigmoidK is the steepness of the logistic squash.
	GvSigmoidK = 3.0
	// GvBias shifts raw value before squashing; 0 keeps an empty prediction at 0.5.
	GvBias = 0.0
	// GvFloor is the lower bound of the shaped Gv value (exploration floor).
	GvFloor = 0.20
	// GvStrength bounds how far the multiplier may move from 1.0.
	GvStrength = 0.25
)

// Parameter validation errors.
var (
	ErrNonFiniteParam  = errors.New("gv parameter must be finite")
	ErrNegativeWeight  = errors.New("gv signal weight must not be negative")
	ErrInvalidSigmoidK = errors.New("gv sigmoid steepness must be positive")
	ErrInvalidFloor    = errors.New("gv floor must be within [0, 1]")
	ErrInvalidStrength = errors.New("gv strength must not be negative")
)

// GvPositiveWeights weights the engagement signals that add value.
type GvPositiveWeights struct {
	Favorite     float64
	Reply        float64
	Retweet      float64
	Share        float64
	Dwell        float64
	Quote        float64
	FollowAuthor float64
}

// GvNegativeWeights weights the negative feedback signals that add regret.
type GvNegativeWeights struct {
	NotInterested float64
	MuteAuthor    float64
	BlockAuthor   float64
	Report        float64
}

// GvParams holds every tunable the Gv computation and multiplier shaping read.
type GvParams struct {
	Positive GvPositiveWeights
	Negative GvNegativeWeights
	SigmoidK float64 // Logistic steepness (K)
	Bias     float64 // Added to the raw weighted difference
	Floor    float64 // Minimum shaped value, in [0, 1]
	Strength float64 // Multiplier band half-width around 1.0
}

// DefaultGvParams returns the compiled-in Gv parameters.
//
// With these defaults the multiplier lies in [0.85, 1.25]:
// an empty prediction (gv = 0.5) maps to 1.05, and gv = 0 still keeps
// 85% of the upstream score.
func DefaultGvParams() GvParams {
	return GvParams{
		Positive: GvPositiveWeights{
			Favorite:     GvFavoriteW,
			Reply:        GvReplyW,
			Retweet:      GvRetweetW,
			Share:        GvShareW,
			Dwell:        GvDwellW,
			Quote:        GvQuoteW,
			FollowAuthor: GvFollowAuthorW,
		},
		Negative: GvNegativeWeights{
			NotInterested: GvNotInterestedW,
			MuteAuthor:    GvMuteAuthorW,
			BlockAuthor:   GvBlockAuthorW,
			Report:        GvReportW,
		},
		SigmoidK: GvSigmoidK,
		Bias:     GvBias,
		Floor:    GvFloor,
		Strength: GvStrength,
	}
}

// Validate checks that the parameters keep ComputeGv monotone and the
// multiplier bounded. All violations are joined into one error.
func (p GvParams) Validate() error {
	var errs []error

	for _, w := range p.weights() {
		if math.IsNaN(w.val) || math.IsInf(w.val, 0) {
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrNonFiniteParam, w.name, w.val))
			continue
		}
		if w.val < 0 {
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrNegativeWeight, w.name, w.val))
		}
	}

	scalars := []namedParam{
		{"sigmoid_k", p.SigmoidK},
		{"bias", p.Bias},
		{"floor", p.Floor},
		{"strength", p.Strength},
	}
	for _, s := range scalars {
		if math.IsNaN(s.val) || math.IsInf(s.val, 0) {
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrNonFiniteParam, s.name, s.val))
		}
	}

	if p.SigmoidK <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidSigmoidK, p.SigmoidK))
	}
	if p.Floor < 0 || p.Floor > 1 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidFloor, p.Floor))
	}
	if p.Strength < 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidStrength, p.Strength))
	}

	return errors.Join(errs...)
}

type namedParam struct {
	name string
	val  float64
}

func (p GvParams) weights() []namedParam {
	return []namedParam{
		{"favorite", p.Positive.Favorite},
		{"reply", p.Positive.Reply},
		{"retweet", p.Positive.Retweet},
		{"share", p.Positive.Share},
		{"dwell", p.Positive.Dwell},
		{"quote", p.Positive.Quote},
		{"follow_author", p.Positive.FollowAuthor},
		{"not_interested", p.Negative.NotInterested},
		{"mute_author", p.Negative.MuteAuthor},
		{"block_author", p.Negative.BlockAuthor},
		{"report", p.Negative.Report},
	}
}

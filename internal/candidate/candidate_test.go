package candidate

import "testing"

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		in       *float64
		expected float64
	}{
		{name: "nil defaults to zero", in: nil, expected: 0.0},
		{name: "zero", in: Float64(0), expected: 0.0},
		{name: "set value", in: Float64(0.75), expected: 0.75},
		{name: "negative passes through", in: Float64(-1.5), expected: -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.in); got != tt.expected {
				t.Errorf("Value() = %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestScoreDelta_Apply(t *testing.T) {
	reply := int64(42)
	inNetwork := true
	c := PostCandidate{
		TweetID:          1001,
		AuthorID:         7,
		InReplyToTweetID: &reply,
		IsInNetwork:      &inNetwork,
		PhoenixScores:    PhoenixScores{FavoriteScore: Float64(0.3)},
		WeightedScore:    Float64(1.0),
		Score:            Float64(9.0),
	}

	ScoreDelta{WeightedScore: Float64(2.5)}.Apply(&c)

	if Value(c.WeightedScore) != 2.5 {
		t.Errorf("expected weighted score 2.5, got %f", Value(c.WeightedScore))
	}
	if c.TweetID != 1001 || c.AuthorID != 7 {
		t.Errorf("identity fields changed: tweet=%d author=%d", c.TweetID, c.AuthorID)
	}
	if c.InReplyToTweetID == nil || *c.InReplyToTweetID != 42 {
		t.Error("in_reply_to_tweet_id was overwritten")
	}
	if c.IsInNetwork == nil || !*c.IsInNetwork {
		t.Error("in_network was overwritten")
	}
	if Value(c.PhoenixScores.FavoriteScore) != 0.3 {
		t.Error("phoenix scores were overwritten")
	}
	if Value(c.Score) != 9.0 {
		t.Errorf("score was overwritten: %f", Value(c.Score))
	}
}

func TestScoreDelta_ApplyNilWeightedScore(t *testing.T) {
	c := PostCandidate{WeightedScore: Float64(3.0)}

	ScoreDelta{}.Apply(&c)

	if c.WeightedScore != nil {
		t.Errorf("expected weighted score to be cleared, got %f", *c.WeightedScore)
	}
}

func TestScoreDelta_ApplyNilCandidate(t *testing.T) {
	// Must not panic
	ScoreDelta{WeightedScore: Float64(1)}.Apply(nil)
}

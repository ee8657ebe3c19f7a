// Package candidate defines the post candidate records that flow through the
// home feed ranking pipeline and the narrow score deltas that scorers return.
package candidate

// PhoenixScores holds the predicted engagement and regret probabilities for a
// post. Each value is in [0, 1] when set; nil means the model produced no
// prediction for that outcome.
type PhoenixScores struct {
	// Positive engagement signals
	FavoriteScore     *float64 `json:"favorite_score,omitempty"`
	ReplyScore        *float64 `json:"reply_score,omitempty"`
	RetweetScore      *float64 `json:"retweet_score,omitempty"`
	ShareScore        *float64 `json:"share_score,omitempty"`
	DwellScore        *float64 `json:"dwell_score,omitempty"`
	QuoteScore        *float64 `json:"quote_score,omitempty"`
	FollowAuthorScore *float64 `json:"follow_author_score,omitempty"`

	// Negative feedback (regret) signals
	NotInterestedScore *float64 `json:"not_interested_score,omitempty"`
	MuteAuthorScore    *float64 `json:"mute_author_score,omitempty"`
	BlockAuthorScore   *float64 `json:"block_author_score,omitempty"`
	ReportScore        *float64 `json:"report_score,omitempty"`
}

// PostCandidate is the authoritative record for one rankable post. It is owned
// by the pipeline host; scorers read it and return a ScoreDelta instead of
// writing to it directly.
type PostCandidate struct {
	TweetID          int64         `json:"tweet_id"`
	AuthorID         int64         `json:"author_id"`
	InReplyToTweetID *int64        `json:"in_reply_to_tweet_id,omitempty"`
	RetweetedTweetID *int64        `json:"retweeted_tweet_id,omitempty"`
	IsInNetwork      *bool         `json:"in_network,omitempty"`
	PhoenixScores    PhoenixScores `json:"phoenix_scores"`
	WeightedScore    *float64      `json:"weighted_score,omitempty"` // Set by the weighted scorer stage
	Score            *float64      `json:"score,omitempty"`          // Final score after all stages
}

// ScoredPostsQuery is the request context passed to every scorer.
type ScoredPostsQuery struct {
	UserID    int64  `json:"user_id"`
	RequestID string `json:"request_id,omitempty"`
}

// ScoreDelta is the sparse result a weighted-score scorer produces for one
// candidate. Only WeightedScore is carried; everything else on the candidate
// stays as the host has it.
type ScoreDelta struct {
	WeightedScore *float64 `json:"weighted_score,omitempty"`
}

// Apply merges the delta into c. Only WeightedScore is copied.
func (d ScoreDelta) Apply(c *PostCandidate) {
	if c == nil {
		return
	}
	c.WeightedScore = d.WeightedScore
}

// Value returns the value behind an optional score, or 0.0 when it is unset.
func Value(x *float64) float64 {
	if x == nil {
		return 0.0
	}
	return *x
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

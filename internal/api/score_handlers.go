package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/onnwee/homemixer/internal/candidate"
	"github.com/onnwee/homemixer/internal/pipeline"
	"github.com/onnwee/homemixer/internal/ranking"
)

// maxRequestBytes bounds the request body read by the score handler.
const maxRequestBytes = 32 << 20

// ScoreRequest is the body of POST /v1/score/gv.
type ScoreRequest struct {
	Query      candidate.ScoredPostsQuery `json:"query"`
	Candidates []candidate.PostCandidate  `json:"candidates"`
}

// MultiplierBounds reports the range the Gv multiplier can take.
type MultiplierBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ScoreResponse is the body returned by POST /v1/score/gv.
type ScoreResponse struct {
	Candidates       []candidate.PostCandidate `json:"candidates"`
	MultiplierBounds MultiplierBounds          `json:"multiplier_bounds"`
}

// ScoreHandlers exposes the Gv scorer over HTTP.
type ScoreHandlers struct {
	runner       *pipeline.Runner
	scorer       *ranking.GvScorer
	maxBatchSize int
}

// NewScoreHandlers creates score handlers that run scorer through runner and
// reject batches larger than maxBatchSize.
func NewScoreHandlers(runner *pipeline.Runner, scorer *ranking.GvScorer, maxBatchSize int) *ScoreHandlers {
	return &ScoreHandlers{
		runner:       runner,
		scorer:       scorer,
		maxBatchSize: maxBatchSize,
	}
}

// ScoreGv handles POST /v1/score/gv.
//
// The candidates in the request are rescored and returned with every field
// as sent except weighted_score. With ?sort=true they are returned highest
// weighted score first; otherwise input order is kept.
func (h *ScoreHandlers) ScoreGv(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	sortResults := false
	if raw := r.URL.Query().Get("sort"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "sort must be a boolean")
			return
		}
		sortResults = v
	}

	var req ScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, ctx, http.StatusRequestEntityTooLarge, ErrCodeValidation, "Request body too large")
			return
		}
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}

	if len(req.Candidates) == 0 {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "candidates must not be empty")
		return
	}
	if len(req.Candidates) > h.maxBatchSize {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("at most %d candidates may be scored per request", h.maxBatchSize))
		return
	}

	if err := h.runner.ScorePosts(ctx, h.scorer, &req.Query, req.Candidates); err != nil {
		slog.ErrorContext(ctx, "gv scoring failed",
			"candidates", len(req.Candidates),
			"error", err)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Scoring failed")
		return
	}

	if sortResults {
		pipeline.SortByWeightedScore(req.Candidates)
	}

	lo, hi := ranking.MultiplierBounds(h.scorer.Params())
	writeJSON(w, ctx, http.StatusOK, ScoreResponse{
		Candidates:       req.Candidates,
		MultiplierBounds: MultiplierBounds{Min: lo, Max: hi},
	})
}

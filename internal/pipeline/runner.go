package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/onnwee/homemixer/internal/candidate"
	"github.com/onnwee/homemixer/internal/tracing"
)

// DefaultShardSize is the batch size above which a parallel runner splits work.
const DefaultShardSize = 256

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// Parallelism is the maximum number of shards scored at once.
	// Values below 2 score the whole batch in one call.
	Parallelism int

	// ShardSize is the number of candidates per shard (default: 256).
	ShardSize int

	// Metrics is optional; nil disables metric recording.
	Metrics *Metrics

	// Logger is optional; nil uses slog.Default().
	Logger *slog.Logger
}

// Runner applies scorers to candidate batches. A Runner is safe for
// concurrent use.
type Runner struct {
	parallelism int
	shardSize   int
	metrics     *Metrics
	logger      *slog.Logger
}

// NewRunner creates a Runner from cfg, filling in defaults.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	if cfg.ShardSize < 1 {
		cfg.ShardSize = DefaultShardSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{
		parallelism: cfg.Parallelism,
		shardSize:   cfg.ShardSize,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// Run scores candidates with s and merges every result back in place.
//
// Candidates are only updated once every shard has been scored successfully:
// on error or cancellation the batch is left exactly as it was passed in.
func Run[Q, C, R any](ctx context.Context, r *Runner, s Scorer[Q, C, R], query Q, candidates []C) (err error) {
	name := s.Name()
	start := time.Now()

	ctx, endSpan := tracing.StartSpan(ctx, "scorer."+name)
	tracing.SetAttributes(ctx,
		attribute.String("scorer.name", name),
		attribute.Int("scorer.candidates", len(candidates)),
	)
	defer func() {
		elapsed := time.Since(start)
		endSpan(err)
		if r.metrics != nil {
			r.metrics.ObserveRun(name, len(candidates), elapsed.Seconds(), err)
		}
		if err != nil {
			r.logger.WarnContext(ctx, "scorer failed",
				"scorer", name,
				"candidates", len(candidates),
				"error", err)
			return
		}
		r.logger.DebugContext(ctx, "scorer completed",
			"scorer", name,
			"candidates", len(candidates),
			"duration_ms", elapsed.Milliseconds())
	}()

	scored, err := scoreBatch(ctx, r, s, query, candidates)
	if err != nil {
		return err
	}

	// Scoring may have finished after the caller gave up; drop the results.
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := range candidates {
		s.Update(&candidates[i], scored[i])
	}
	return nil
}

// ScorePosts runs a post scorer over candidates; see Run.
func (r *Runner) ScorePosts(ctx context.Context, s PostScorer, query *candidate.ScoredPostsQuery, candidates []candidate.PostCandidate) error {
	return Run(ctx, r, s, query, candidates)
}

// scoreBatch scores candidates in a single call or, for large batches on a
// parallel runner, in contiguous shards scored concurrently. Each candidate's
// score is independent of the others, so shard results are concatenated in
// shard order.
func scoreBatch[Q, C, R any](ctx context.Context, r *Runner, s Scorer[Q, C, R], query Q, candidates []C) ([]R, error) {
	if r.parallelism < 2 || len(candidates) <= r.shardSize {
		return scoreShard(ctx, s, query, candidates)
	}

	scored := make([]R, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for lo := 0; lo < len(candidates); lo += r.shardSize {
		hi := min(lo+r.shardSize, len(candidates))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := scoreShard(gctx, s, query, candidates[lo:hi])
			if err != nil {
				return fmt.Errorf("shard [%d:%d]: %w", lo, hi, err)
			}
			copy(scored[lo:hi], part)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	tracing.AddEvent(ctx, "shards scored",
		attribute.Int("scorer.shards", (len(candidates)+r.shardSize-1)/r.shardSize),
		attribute.Int("scorer.parallelism", r.parallelism),
	)
	return scored, nil
}

func scoreShard[Q, C, R any](ctx context.Context, s Scorer[Q, C, R], query Q, candidates []C) ([]R, error) {
	scored, err := s.Score(ctx, query, candidates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	if len(scored) != len(candidates) {
		return nil, fmt.Errorf("%s: %w: got %d results for %d candidates",
			s.Name(), ErrResultLengthMismatch, len(scored), len(candidates))
	}
	return scored, nil
}

// Package main is the entry point for the offline Gv batch scorer.
//
// It reads a batch in the same shape the scoring server accepts, runs the
// Gv stage over it, and writes the scored batch to stdout:
//
//	gvscore [-config file] [-sort] batch.json
//	cat batch.json | gvscore -
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/onnwee/homemixer/internal/api"
	"github.com/onnwee/homemixer/internal/candidate"
	"github.com/onnwee/homemixer/internal/config"
	"github.com/onnwee/homemixer/internal/pipeline"
	"github.com/onnwee/homemixer/internal/ranking"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gvscore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	help := fs.Bool("help", false, "display help message")
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	sortResults := fs.Bool("sort", false, "sort candidates by weighted score, highest first")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		fmt.Fprintln(stdout, "Home Mixer Gv Batch Scorer")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Usage: gvscore [options] <batch.json | ->")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(stderr, "config error: %v\n", err)
		}
		return 1
	}

	logger := newLogger(cfg.Env, stderr)
	slog.SetDefault(logger)

	in, closeInput, err := openInput(fs.Args(), stdin)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "expected exactly one input file or - for stdin")
			return 2
		}
		logger.Error("failed to open input", "error", err)
		return 1
	}
	defer closeInput()

	resp, err := scoreBatch(ctx, cfg, logger, in, *sortResults)
	if err != nil {
		logger.Error("scoring failed", "error", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logger.Error("failed to write output", "error", err)
		return 1
	}
	return 0
}

// newLogger mirrors the server logger but writes to w, keeping stdout for
// the scored batch.
func newLogger(env string, w io.Writer) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func openInput(args []string, stdin io.Reader) (io.Reader, func(), error) {
	if len(args) != 1 {
		return nil, nil, errUsage
	}
	if args[0] == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	return f, func() { _ = f.Close() }, nil
}

// scoreBatch decodes one batch from in and scores it with the runner
// settings from cfg. Batch size limits apply to the server only.
func scoreBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, in io.Reader, sortResults bool) (*api.ScoreResponse, error) {
	var req api.ScoreRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Parallelism: cfg.ScorerParallelism,
		ShardSize:   cfg.ScorerShardSize,
		Logger:      logger,
	})
	scorer := ranking.NewGvScorer()

	if err := runner.ScorePosts(ctx, scorer, &req.Query, req.Candidates); err != nil {
		return nil, err
	}
	if sortResults {
		pipeline.SortByWeightedScore(req.Candidates)
	}
	if req.Candidates == nil {
		req.Candidates = []candidate.PostCandidate{}
	}

	lo, hi := ranking.MultiplierBounds(scorer.Params())
	logger.Info("batch scored", "candidates", len(req.Candidates))

	return &api.ScoreResponse{
		Candidates:       req.Candidates,
		MultiplierBounds: api.MultiplierBounds{Min: lo, Max: hi},
	}, nil
}

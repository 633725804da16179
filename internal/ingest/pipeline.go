package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/kdigstats/internal/config"
	"github.com/gyeh/kdigstats/internal/model"
)

var (
	// ErrNoCandidates means discovery found no file to parse.
	ErrNoCandidates = errors.New("nothing to analyze")
	// ErrNoRecords means candidates existed but none held kdig output.
	ErrNoRecords = errors.New("no valid kdig output found in any candidate file")
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a pipeline run.
type Result struct {
	Summary model.RunSummary
	Records []model.Record
}

// Run executes the pipeline: discover → parse. It fails when nothing was
// discovered or when no candidate produced a record.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*Result, error) {
	totalStart := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	// Phase 1: Discover
	log.Info().Str("input", cfg.InputDir).Msg("starting discovery")
	candidates, err := Discover(log, cfg)
	if err != nil {
		return nil, &PipelineError{Phase: "discover", Err: err}
	}

	// Phase 2: Parse
	log.Info().Int("files", len(candidates)).Msg("starting parse")
	pr, err := Parse(ctx, log, candidates, cfg.Workers)
	if err != nil {
		return nil, &PipelineError{Phase: "parse", Err: err}
	}

	res := &Result{
		Summary: model.RunSummary{
			RunID:      runID,
			InputDir:   cfg.InputDir,
			Candidates: len(candidates),
			Parsed:     pr.Parsed,
			Skipped:    pr.Skipped,
			Failed:     pr.Failed,
			Duration:   time.Since(totalStart),
		},
		Records: pr.Records,
	}

	if len(res.Records) == 0 {
		return res, &PipelineError{Phase: "parse", Err: ErrNoRecords}
	}

	log.Info().
		Int("candidates", res.Summary.Candidates).
		Int("parsed", res.Summary.Parsed).
		Int("skipped", res.Summary.Skipped).
		Int("failed", res.Summary.Failed).
		Str("total_duration", res.Summary.Duration.String()).
		Msg("pipeline complete")

	return res, nil
}

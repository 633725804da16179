package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/ingest"
	"github.com/gyeh/kdigstats/internal/report"
)

// runPipeline validates cfg and runs discover → parse, exiting with the
// matching code when the corpus yields nothing usable.
func runPipeline(ctx context.Context, log zerolog.Logger) *ingest.Result {
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	res, err := ingest.Run(ctx, log, &cfg)
	if err != nil {
		if res != nil {
			_ = report.WriteSummary(os.Stdout, &res.Summary)
		}
		log.Error().Err(err).Msg("analysis failed")
		switch {
		case errors.Is(err, ingest.ErrNoCandidates):
			os.Exit(exitcode.NoCandidates)
		case errors.Is(err, ingest.ErrNoRecords):
			os.Exit(exitcode.NoRecords)
		default:
			os.Exit(exitcode.UsageError)
		}
	}

	_ = report.WriteSummary(os.Stdout, &res.Summary)
	return res
}

package ingest

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gyeh/kdigstats/internal/extract"
	"github.com/gyeh/kdigstats/internal/model"
)

// ParseResult holds metrics from the parse phase.
type ParseResult struct {
	Records  []model.Record
	Parsed   int
	Skipped  int
	Failed   int
	Duration time.Duration
}

type outcome struct {
	rec model.Record
	ok  bool
	err error
}

// Parse extracts a Record from every path using up to workers goroutines
// (runtime.NumCPU() when workers is 0). Records come back in path order.
// Unreadable files are logged and counted, never fatal.
func Parse(ctx context.Context, log zerolog.Logger, paths []string, workers int) (*ParseResult, error) {
	start := time.Now()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, ok, err := extract.ParseFile(path)
			outcomes[i] = outcome{rec: rec, ok: ok, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse files: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse files: %w", err)
	}

	res := &ParseResult{Records: make([]model.Record, 0, len(paths))}
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			res.Failed++
			log.Warn().Err(o.err).Str("file", paths[i]).Msg("file unreadable, skipped")
		case !o.ok:
			res.Skipped++
			log.Debug().Str("file", paths[i]).Msg("no kdig summary found, skipped")
		default:
			res.Parsed++
			res.Records = append(res.Records, o.rec)
		}
	}
	res.Duration = time.Since(start)

	log.Info().
		Int("parsed", res.Parsed).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Int("workers", workers).
		Str("duration", res.Duration.String()).
		Msg("parse complete")

	return res, nil
}

package ingest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/kdigstats/internal/config"
	"github.com/gyeh/kdigstats/internal/discover"
)

// Discover resolves the candidate file list for cfg. An empty result is
// reported as ErrNoCandidates.
func Discover(log zerolog.Logger, cfg *config.Config) ([]string, error) {
	start := time.Now()

	opts, err := cfg.DiscoverOptions()
	if err != nil {
		return nil, err
	}

	paths, err := discover.Find(cfg.InputDir, opts)
	if err != nil {
		return nil, err
	}

	ext := opts.Ext()
	if len(paths) == 0 {
		if cfg.Pattern != "" {
			return nil, fmt.Errorf("no .%s files matching pattern '%s' found in directory %s: %w",
				ext, cfg.Pattern, cfg.InputDir, ErrNoCandidates)
		}
		return nil, fmt.Errorf("no .%s files found in directory %s: %w", ext, cfg.InputDir, ErrNoCandidates)
	}

	log.Info().
		Str("input", cfg.InputDir).
		Bool("recursive", opts.Recursive).
		Str("extension", ext).
		Int("candidates", len(paths)).
		Dur("duration", time.Since(start)).
		Msg("discovery complete")

	return paths, nil
}

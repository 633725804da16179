package model

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary captures per-file outcome counts from a single pipeline run.
type RunSummary struct {
	RunID      uuid.UUID
	InputDir   string
	Candidates int
	Parsed     int
	// Skipped counts files that were readable but held no complete record.
	Skipped int
	// Failed counts files that could not be read at all.
	Failed   int
	Duration time.Duration
}

// NotParsed is the number of candidates that produced no record, for
// whatever reason.
func (s *RunSummary) NotParsed() int {
	return s.Skipped + s.Failed
}

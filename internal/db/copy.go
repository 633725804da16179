package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/kdigstats/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading Records from a
// channel, tagging each row with the run it belongs to.
type ChannelSource struct {
	runID   uuid.UUID
	ch      <-chan model.Record
	current model.Record
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(runID uuid.UUID, ch <-chan model.Record) *ChannelSource {
	return &ChannelSource{runID: runID, ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	rec, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = rec
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(s.runID), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return nil
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)

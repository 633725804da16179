package model

import (
	"strconv"

	"github.com/google/uuid"
)

// Record holds the query metrics extracted from a single kdig output file.
// A Record is only built once all five measured fields are known.
type Record struct {
	QueryTimeMS       float64
	ResponseSizeBytes uint32
	Server            string
	Port              uint16
	Protocol          string

	// Source is the file the record was read from. Empty for bare text.
	Source string
}

// ServerKey returns the "server:port" grouping key.
func (r Record) ServerKey() string {
	return r.Server + ":" + strconv.Itoa(int(r.Port))
}

// WithSource returns a copy of r tagged with the given source path.
func (r Record) WithSource(path string) Record {
	r.Source = path
	return r
}

// CopyColumns returns the column names for COPY into kdig.records, in order
// matching CopyValues.
func CopyColumns() []string {
	return []string{
		"run_id",
		"source_file",
		"query_time_ms",
		"response_size_bytes",
		"server",
		"port",
		"protocol",
	}
}

// CopyValues returns the record's values in COPY column order.
func (r Record) CopyValues(runID uuid.UUID) []any {
	return []any{
		runID,
		r.Source,
		r.QueryTimeMS,
		int64(r.ResponseSizeBytes),
		r.Server,
		int32(r.Port),
		r.Protocol,
	}
}

// Package extract pulls query metrics out of free-form kdig console output.
package extract

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gyeh/kdigstats/internal/model"
)

// ErrNotText is returned by ParseFile for files that are not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

var (
	receivedLine = regexp.MustCompile(`;;\s+Received\s+(\d+)\s+B`)
	fromLine     = regexp.MustCompile(`;;\s+From\s+([^@]+)@(\d+)\(([^)]+)\)\s+in\s+([\d.]+)\s+ms`)
)

// fields tracks what has been seen so far. A nil pointer means unset.
type fields struct {
	size      *uint32
	server    *string
	port      *uint16
	protocol  *string
	queryTime *float64
}

// Extract scans text line by line and returns the Record described by the
// last ";; Received" and ";; From" lines. ok is false unless every field was
// found and parsed.
//
// A numeric field that fails to parse leaves the previously seen value in
// place; the rest of the line is still applied.
func Extract(text string) (model.Record, bool) {
	var f fields
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		f.applyReceived(line)
		f.applyFrom(line)
	}
	return f.record()
}

// ParseFile reads path and extracts a Record from its contents. The returned
// error is non-nil only when the file cannot be read as UTF-8 text.
func ParseFile(path string) (model.Record, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Record{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return model.Record{}, false, fmt.Errorf("read %s: %w", path, ErrNotText)
	}
	rec, ok := Extract(string(data))
	if !ok {
		return model.Record{}, false, nil
	}
	return rec.WithSource(path), true, nil
}

func (f *fields) applyReceived(line string) {
	m := receivedLine.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if n, err := strconv.ParseUint(m[1], 10, 32); err == nil {
		size := uint32(n)
		f.size = &size
	}
}

func (f *fields) applyFrom(line string) {
	m := fromLine.FindStringSubmatch(line)
	if m == nil {
		return
	}
	server := strings.TrimSpace(m[1])
	f.server = &server
	if n, err := strconv.ParseUint(m[2], 10, 16); err == nil {
		port := uint16(n)
		f.port = &port
	}
	protocol := strings.TrimSpace(m[3])
	f.protocol = &protocol
	// Overflowing values come back as +Inf with ErrRange and are kept.
	if v, err := strconv.ParseFloat(m[4], 64); err == nil || errors.Is(err, strconv.ErrRange) {
		f.queryTime = &v
	}
}

func (f *fields) record() (model.Record, bool) {
	if f.size == nil || f.server == nil || f.port == nil || f.protocol == nil || f.queryTime == nil {
		return model.Record{}, false
	}
	return model.Record{
		QueryTimeMS:       *f.queryTime,
		ResponseSizeBytes: *f.size,
		Server:            *f.server,
		Port:              *f.port,
		Protocol:          *f.protocol,
	}, true
}

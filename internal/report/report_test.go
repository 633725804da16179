package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gyeh/kdigstats/internal/aggregate"
	"github.com/gyeh/kdigstats/internal/model"
)

func TestWrite(t *testing.T) {
	rep := aggregate.Aggregate([]model.Record{
		{QueryTimeMS: 10, ResponseSizeBytes: 50, Server: "8.8.8.8", Port: 53, Protocol: "UDP"},
		{QueryTimeMS: 20, ResponseSizeBytes: 70, Server: "1.1.1.1", Port: 53, Protocol: "TCP"},
		{QueryTimeMS: 30, ResponseSizeBytes: 90, Server: "8.8.8.8", Port: 53, Protocol: "UDP"},
	})

	var buf bytes.Buffer
	if err := Write(&buf, &rep); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total files analyzed: 3\n",
		"  Min:     10.00\n",
		"  Max:     30.00\n",
		"  Average: 20.00\n",
		"  Median:  20.00\n",
		"  Min:     50\n",
		"  Total:   210\n",
		"  Average: 70.00\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	first := strings.Index(out, "  8.8.8.8:53 - 2 queries")
	second := strings.Index(out, "  1.1.1.1:53 - 1 queries")
	if first < 0 || second < 0 || first > second {
		t.Errorf("servers not ranked by count:\n%s", out)
	}
	if !strings.Contains(out, "  UDP: 2\n  TCP: 1\n") {
		t.Errorf("protocols not ranked by count:\n%s", out)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	sum := &model.RunSummary{Parsed: 4, Skipped: 2, Failed: 1}
	if err := WriteSummary(&buf, sum); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if got := buf.String(); got != "Successfully parsed 4 file(s), skipped 3 file(s)\n\n" {
		t.Errorf("got %q", got)
	}
}

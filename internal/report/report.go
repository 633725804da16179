// Package report renders a Report for the console.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gyeh/kdigstats/internal/model"
)

// WriteSummary writes the per-file outcome line printed before the report.
func WriteSummary(w io.Writer, sum *model.RunSummary) error {
	_, err := fmt.Fprintf(w, "Successfully parsed %d file(s), skipped %d file(s)\n\n", sum.Parsed, sum.NotParsed())
	return err
}

// Write renders rep as the text summary.
func Write(w io.Writer, rep *model.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== Kdig Analysis Summary ===")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Total files analyzed: %d\n\n", rep.Total)

	qt := rep.QueryTime
	fmt.Fprintln(bw, "Query Time Statistics (ms):")
	fmt.Fprintf(bw, "  Min:     %.2f\n", qt.Min)
	fmt.Fprintf(bw, "  Max:     %.2f\n", qt.Max)
	fmt.Fprintf(bw, "  Average: %.2f\n", qt.Mean)
	fmt.Fprintf(bw, "  Median:  %.2f\n\n", qt.Median)

	rs := rep.ResponseSize
	fmt.Fprintln(bw, "Response Size Statistics (bytes):")
	fmt.Fprintf(bw, "  Min:     %d\n", rs.Min)
	fmt.Fprintf(bw, "  Max:     %d\n", rs.Max)
	fmt.Fprintf(bw, "  Average: %.2f\n", rs.Mean)
	fmt.Fprintf(bw, "  Total:   %d\n\n", rs.Sum)

	fmt.Fprintln(bw, "Unique Servers Queried:")
	for _, g := range rep.RankedServers() {
		fmt.Fprintf(bw, "  %s - %d queries\n", g.Key, g.Count)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Protocol Distribution:")
	for _, g := range rep.RankedProtocols() {
		fmt.Fprintf(bw, "  %s: %d\n", g.Key, g.Count)
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

// Package aggregate computes corpus-wide statistics over extracted records.
package aggregate

import (
	"sort"

	"github.com/gyeh/kdigstats/internal/model"
)

// Aggregate builds a Report from records. records must not be empty; callers
// report "no usable data" themselves before getting here.
func Aggregate(records []model.Record) model.Report {
	if len(records) == 0 {
		panic("aggregate: empty record set")
	}

	n := len(records)
	times := make([]float64, n)
	sizes := make([]float64, n)

	rep := model.Report{
		Total:     n,
		Servers:   make(map[string]int),
		Protocols: make(map[string]int),
	}
	rep.QueryTime.Min = records[0].QueryTimeMS
	rep.QueryTime.Max = records[0].QueryTimeMS
	rep.ResponseSize.Min = records[0].ResponseSizeBytes
	rep.ResponseSize.Max = records[0].ResponseSizeBytes

	for i, r := range records {
		times[i] = r.QueryTimeMS
		sizes[i] = float64(r.ResponseSizeBytes)

		if r.QueryTimeMS < rep.QueryTime.Min {
			rep.QueryTime.Min = r.QueryTimeMS
		}
		if r.QueryTimeMS > rep.QueryTime.Max {
			rep.QueryTime.Max = r.QueryTimeMS
		}
		if r.ResponseSizeBytes < rep.ResponseSize.Min {
			rep.ResponseSize.Min = r.ResponseSizeBytes
		}
		if r.ResponseSizeBytes > rep.ResponseSize.Max {
			rep.ResponseSize.Max = r.ResponseSizeBytes
		}
		rep.ResponseSize.Sum += uint64(r.ResponseSizeBytes)

		rep.Servers[r.ServerKey()]++
		rep.Protocols[r.Protocol]++
	}

	// Summing in sorted order keeps the mean independent of record order.
	sort.Float64s(times)
	var timeSum float64
	for _, v := range times {
		timeSum += v
	}
	rep.QueryTime.Mean = timeSum / float64(n)
	rep.QueryTime.Median = medianSorted(times)

	sort.Float64s(sizes)
	rep.ResponseSize.Mean = float64(rep.ResponseSize.Sum) / float64(n)
	rep.ResponseSize.Median = medianSorted(sizes)
	return rep
}

// Median sorts values in place and returns the middle element, or the mean of
// the two middle elements when len(values) is even. values must not be empty.
func Median(values []float64) float64 {
	sort.Float64s(values)
	return medianSorted(values)
}

func medianSorted(values []float64) float64 {
	n := len(values)
	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}
	return values[n/2]
}

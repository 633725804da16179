// Package metrics exports run results in the Prometheus text format, for
// pickup by a node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gyeh/kdigstats/internal/model"
)

const namespace = "kdigstats"

// Registry builds a private registry holding the metrics of one run.
func Registry(sum *model.RunSummary, rep *model.Report) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	files := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "files",
		Help:      "Candidate files by parse outcome.",
	}, []string{"outcome"})
	files.WithLabelValues("parsed").Set(float64(sum.Parsed))
	files.WithLabelValues("skipped").Set(float64(sum.Skipped))
	files.WithLabelValues("failed").Set(float64(sum.Failed))

	queryTime := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "query_time_milliseconds",
		Help:      "Query latency statistics across the corpus.",
	}, []string{"stat"})
	queryTime.WithLabelValues("min").Set(rep.QueryTime.Min)
	queryTime.WithLabelValues("max").Set(rep.QueryTime.Max)
	queryTime.WithLabelValues("mean").Set(rep.QueryTime.Mean)
	queryTime.WithLabelValues("median").Set(rep.QueryTime.Median)

	size := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "response_size_bytes",
		Help:      "Response size statistics across the corpus.",
	}, []string{"stat"})
	size.WithLabelValues("min").Set(float64(rep.ResponseSize.Min))
	size.WithLabelValues("max").Set(float64(rep.ResponseSize.Max))
	size.WithLabelValues("mean").Set(rep.ResponseSize.Mean)
	size.WithLabelValues("sum").Set(float64(rep.ResponseSize.Sum))

	servers := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "server_queries",
		Help:      "Records per server:port.",
	}, []string{"server"})
	for k, n := range rep.Servers {
		servers.WithLabelValues(k).Set(float64(n))
	}

	protocols := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "protocol_queries",
		Help:      "Records per transport protocol.",
	}, []string{"protocol"})
	for k, n := range rep.Protocols {
		protocols.WithLabelValues(k).Set(float64(n))
	}

	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the discover and parse phases.",
	})
	duration.Set(sum.Duration.Seconds())

	reg.MustRegister(files, queryTime, size, servers, protocols, duration)
	return reg
}

// WriteTextfile writes the run's metrics to path atomically.
func WriteTextfile(path string, sum *model.RunSummary, rep *model.Report) error {
	if err := prometheus.WriteToTextfile(path, Registry(sum, rep)); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/aggregate"
	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/logging"
	"github.com/gyeh/kdigstats/internal/metrics"
	"github.com/gyeh/kdigstats/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Parse every candidate file and print corpus statistics",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&cfg.MetricsFile, "metrics-file", "", "Also write Prometheus textfile metrics to this path")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	res := runPipeline(ctx, log)
	rep := aggregate.Aggregate(res.Records)

	if err := report.Write(os.Stdout, &rep); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, &res.Summary, &rep); err != nil {
			log.Error().Err(err).Msg("metrics export failed")
			os.Exit(exitcode.ExportError)
		}
		log.Info().Str("path", cfg.MetricsFile).Msg("metrics written")
	}
	return nil
}

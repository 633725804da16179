package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/aggregate"
	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/logging"
	"github.com/gyeh/kdigstats/internal/parquetio"
	"github.com/gyeh/kdigstats/internal/report"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print corpus statistics from a previously exported Parquet file",
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Parquet file written by export (required)")
	_ = summarizeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	reader, err := parquetio.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open parquet file")
		os.Exit(exitcode.UsageError)
	}
	defer reader.Close()

	if err := parquetio.ValidateSchema(reader.Schema()); err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.UsageError)
	}

	records, err := reader.ReadAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to read records")
		os.Exit(exitcode.UsageError)
	}
	if len(records) == 0 {
		log.Error().Str("file", cfg.FilePath).Msg("parquet file holds no records")
		os.Exit(exitcode.NoRecords)
	}

	rep := aggregate.Aggregate(records)
	return report.Write(os.Stdout, &rep)
}

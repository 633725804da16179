package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/logging"
	"github.com/gyeh/kdigstats/internal/parquetio"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Parse the corpus and write the records to a Parquet file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&cfg.OutPath, "out", "", "Destination Parquet file (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	res := runPipeline(ctx, log)

	if err := parquetio.Write(cfg.OutPath, res.Records); err != nil {
		log.Error().Err(err).Str("out", cfg.OutPath).Msg("export failed")
		os.Exit(exitcode.ExportError)
	}

	fmt.Printf("Export complete: %d records written to %s\n", len(res.Records), cfg.OutPath)
	return nil
}

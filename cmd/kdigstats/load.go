package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/db"
	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse the corpus and COPY the records into Postgres",
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	res := runPipeline(ctx, log)

	lr, err := db.Load(ctx, pool, log, &res.Summary, res.Records)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.CopyError)
	}

	stored, err := db.CountRunRecords(ctx, pool, res.Summary.RunID)
	if err != nil {
		log.Error().Err(err).Msg("load verification failed")
		os.Exit(exitcode.CopyError)
	}
	if stored != lr.RowsCopied {
		log.Error().
			Int64("copied", lr.RowsCopied).
			Int64("stored", stored).
			Msg("stored record count does not match copied rows")
		os.Exit(exitcode.CopyError)
	}

	fmt.Printf("Load complete: run %s, %d records copied (%.1fs)\n",
		res.Summary.RunID, lr.RowsCopied, lr.Duration.Seconds())
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/db"
	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/logging"
)

var pruneRunID string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete a loaded run and its records from Postgres",
	RunE:  runPrune,
}

func init() {
	pruneCmd.Flags().StringVar(&pruneRunID, "run", "", "run id to delete (required)")
	pruneCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or KDIGSTATS_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}
	runID, err := uuid.Parse(pruneRunID)
	if err != nil {
		log.Error().Err(err).Str("run", pruneRunID).Msg("invalid run id")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	n, err := db.CountRunRecords(ctx, pool, runID)
	if err != nil {
		log.Error().Err(err).Msg("count failed")
		os.Exit(exitcode.CopyError)
	}
	if err := db.DeleteRun(ctx, pool, runID); err != nil {
		log.Error().Err(err).Msg("prune failed")
		os.Exit(exitcode.CopyError)
	}

	fmt.Printf("Pruned run %s (%d records)\n", runID, n)
	return nil
}

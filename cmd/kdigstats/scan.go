package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/discover"
	"github.com/gyeh/kdigstats/internal/exitcode"
	"github.com/gyeh/kdigstats/internal/ingest"
	"github.com/gyeh/kdigstats/internal/logging"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Dry-run: list candidate files without parsing them",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	paths, err := ingest.Discover(log, &cfg)
	if err != nil {
		log.Error().Err(err).Msg("discovery failed")
		if errors.Is(err, ingest.ErrNoCandidates) {
			os.Exit(exitcode.NoCandidates)
		}
		os.Exit(exitcode.UsageError)
	}

	fmt.Println("=== kdigstats scan ===")
	fmt.Printf("Input:      %s\n", cfg.InputDir)
	fmt.Printf("Recursive:  %t\n", cfg.Recursive)
	fmt.Printf("Candidates: %d\n", len(paths))
	fmt.Println()

	var totalBytes int64
	for _, p := range paths {
		sha, size, err := discover.FileHash(p)
		if err != nil {
			log.Warn().Err(err).Str("file", p).Msg("hash failed")
			continue
		}
		totalBytes += size
		fmt.Printf("  %s  %8d  %s\n", sha[:12], size, p)
	}
	fmt.Printf("\nTotal size: %d bytes\n", totalBytes)
	return nil
}

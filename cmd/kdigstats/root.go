package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gyeh/kdigstats/internal/config"
	"github.com/gyeh/kdigstats/internal/discover"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "kdigstats",
	Short: "kdig output corpus → latency and response-size statistics",
	Long: "Scans a directory of saved kdig console output, extracts per-query " +
		"timing, size and endpoint from each file, and summarizes the corpus.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfigFile,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfg.InputDir, "input", "i", "", "Directory containing kdig output files")
	pf.BoolVarP(&cfg.Recursive, config.FlagRecursive, "r", false, "Descend into subdirectories")
	pf.StringVarP(&cfg.Pattern, config.FlagPattern, "p", "", "Regexp matched against file base names")
	pf.StringVar(&cfg.Extension, config.FlagExtension, discover.DefaultExtension, "File extension to consider (case-insensitive)")
	pf.IntVar(&cfg.Workers, config.FlagWorkers, runtime.NumCPU(), "Files parsed in parallel")
	pf.StringVar(&configPath, "config", "", "YAML file with defaults for ext, pattern, recursive, workers, log_format")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("KDIGSTATS_DB_URL"), "Postgres connection string (or set KDIGSTATS_DB_URL)")
	pf.StringVar(&cfg.LogFormat, config.FlagLogFormat, "text", "Log format: text or json")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log every skipped file")
}

// loadConfigFile merges --config into cfg; flags given on the command line win.
func loadConfigFile(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return nil
	}
	return cfg.LoadFromFile(configPath, func(name string) bool {
		return cmd.Flags().Changed(name)
	})
}

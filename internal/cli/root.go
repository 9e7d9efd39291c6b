// Package cli provides the command-line interface for datavisuals.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SreeTarak2/datavisuals/internal/cli/config"
	"github.com/SreeTarak2/datavisuals/internal/store"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "datavisuals",
		Short: "DataVisuals - interactive dataset exploration",
		Long: `DataVisuals loads tabular datasets, aggregates them into
chart-ready series, and serves hierarchical drill-down navigation
(e.g. Region -> State -> City) over an HTTP API.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default datavisuals.yaml)")
	rootCmd.PersistentFlags().String("store-path", config.DefaultStorePath, "catalog database path")
	rootCmd.PersistentFlags().String("datasets-dir", config.DefaultDatasetsDir, "directory of CSV datasets")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(&cfgFile),
		newLoadCmd(&cfgFile),
		newDatasetsCmd(&cfgFile),
		newChartCmd(&cfgFile),
		newHierarchiesCmd(&cfgFile),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, config file, env, and the command's flags.
func loadConfig(cmd *cobra.Command, cfgFile string) (*config.Config, error) {
	return config.Load(cfgFile, cmd.Flags())
}

// newLogger builds the process logger at the configured level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens the catalog database, creating parent directories first.
func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.StorePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return store.Open(cfg.StorePath)
}

// Package cli implements the starlanes command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/starlanes/internal/config"
)

var (
	flagSeed   int64
	flagDBPath string
	flagAuto   bool
)

var rootCmd = &cobra.Command{
	Use:   "starlanes",
	Short: "Sector travel and encounter simulator",
	Long: `starlanes generates a sector of connected locations, plans
hazard-aware routes through it, and runs voyages day by day with
skill-check encounters along the way. Sessions persist to SQLite and
resume across runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if flagSeed != 0 {
			cfg.Seed = flagSeed
		}
		if flagDBPath != "" {
			cfg.DBPath = flagDBPath
		}
		initLogging(cfg.LogLevel)
		cmdConfig = cfg
		return nil
	},
}

// cmdConfig is resolved once per invocation in PersistentPreRunE.
var cmdConfig *config.Config

func initLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Sector seed (0 uses env or a fresh random seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (defaults to STARLANES_DB_PATH)")

	rootCmd.AddCommand(worldgenCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(voyageCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(logCmd)
}

// Execute runs the command tree.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("starlanes: %w", err)
	}
	return nil
}

// Package cli implements the macrolog command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/daemon"
	"github.com/macrolog/macrolog/internal/logger"
)

var (
	configPath string
	logLevel   string

	// cfg is filled by the root PersistentPreRunE before any command runs.
	cfg daemon.Config
)

var rootCmd = &cobra.Command{
	Use:   "macrolog",
	Short: "Track daily macros and workouts",
	Long: `macrolog keeps a local log of daily calories, protein, carbs and fat
alongside the exercises done that day. Targets are derived from a goal
weight and a calorie budget. Run 'macrolog serve' for the HTTP form API.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { logger.Sync() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default $MACROLOG_HOME/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override [log].level")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadRuntime reads .env and the config file, then builds the logger.
func loadRuntime(cmd *cobra.Command, args []string) error {
	if err := daemon.LoadEnv(); err != nil {
		return err
	}
	path := configPath
	if path == "" {
		path = daemon.DefaultConfigPath()
	}
	c, err := daemon.LoadConfig(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := logger.Init(c.Log.Level, c.Log.Format); err != nil {
		return err
	}
	cfg = c
	return nil
}

// withApp opens storage, runs fn and closes storage again.
func withApp(ctx context.Context, fn func(app *daemon.App) error) error {
	app, err := daemon.Open(ctx, cfg, logger.L())
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func parseIndex(name, s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%s must be a non-negative index, got %q", name, s)
	}
	return i, nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxpl/internal/cli/calc"
	"github.com/rustyeddy/fxpl/internal/cli/config"
	"github.com/rustyeddy/fxpl/internal/cli/journal"
	"github.com/rustyeddy/fxpl/internal/cli/size"
)

const version = "1.0.0"

func NewRootCmd() *cobra.Command {
	return newRootCmd(&config.RootConfig{})
}

func newRootCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fxpl",
		Short: "FX position average-price and profit/loss calculator",
		Long: `fxpl computes the volume-weighted average entry price of a position built
from several entry lots, and the profit/loss of closing it at an exit price.

It also reports pips, margin at a given leverage, and P/L in the account
currency, and can keep a journal of calculations in SQLite or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvPath, "env", ".env", "Path to .env file with FXPL_* overrides")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "./fxpl.sqlite", "SQLite journal database")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.Load(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		rc.Sync()
	}

	cmd.AddCommand(
		calc.New(rc),
		journal.New(rc),
		size.New(rc),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fxpl version %s\n", version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/animator/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "animator",
	Short: "Animator orchestrates enter/exit transitions across UI trees",
	Long: `Animator loads declarative scene files (YAML or JSON) describing trees of
animated elements, validates them, simulates their timelines on a virtual clock,
draws them as Mermaid graphs and serves them live over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// newLogger returns the debug logger when --debug is set and a no-op one otherwise.
func newLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

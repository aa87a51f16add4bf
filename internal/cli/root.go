// Package cli implements the cubematch command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	dbPath    string
	tablePath string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "cubematch",
	Short: "Cube face-color scanner and matcher",
	Long: `cubematch resolves a raw per-facelet color scan into a consistent
54-character cube face string, using a learned color prior and the
combinatorial constraints of a real Rubik's cube to correct camera and
lighting noise.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubematch/cubematch.db)")
	rootCmd.PersistentFlags().StringVar(&tablePath, "table", "", "Prior table file path (default: ~/.cubematch/prior.bin)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

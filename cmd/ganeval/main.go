// Package main provides the ganeval CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ganeval",
	Short: "Evaluation metrics for generative image models",
	Long: `ganeval computes evaluation metrics for generative image models from
classifier outputs stored in IDX files.

Feature embeddings (for FID) and class probabilities (for the Inception
Score) are exchanged as 2D float32 IDX matrices, one row per sample.
Dataset-side feature statistics can be cached in SQLite so they are only
computed once per classifier.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}

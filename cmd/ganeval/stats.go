package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganeval-ml/ganeval/internal/metrics/cache"
)

var (
	statsCachePath string
	statsKey       string
)

func init() {
	statsCmd.Flags().StringVar(&statsCachePath, "cache", "moments.db", "SQLite moments cache path")
	statsCmd.Flags().StringVar(&statsKey, "key", "", "Cache key to store the moments under")
	statsCmd.MarkFlagRequired("key") //nolint:errcheck // flag exists
	statsListCmd.Flags().StringVar(&statsCachePath, "cache", "moments.db", "SQLite moments cache path")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statsListCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <embeddings.idx>",
	Short: "Accumulate and cache feature moments",
	Long: `Accumulate the feature moments (count, mean, covariance) of an IDX
embedding matrix and store them in the SQLite cache, merging with any
existing entry under the same key. This lets the dataset side of FID be
built incrementally and reused across runs.

Examples:
  ganeval stats real_part1.idx --key celeba-train
  ganeval stats real_part2.idx --key celeba-train`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	moments, err := loadMomentsFile(args[0])
	if err != nil {
		return err
	}

	db, err := cache.Open(statsCachePath)
	if err != nil {
		return err
	}
	defer db.Close()

	existing, ok, err := db.Get(statsKey)
	if err != nil {
		return err
	}
	if ok {
		if err := existing.Merge(moments); err != nil {
			return fmt.Errorf("merging with cached moments: %w", err)
		}
		moments = existing
	}

	if err := db.Put(statsKey, moments); err != nil {
		return err
	}

	fmt.Printf("%s: %d samples, dim %d\n", statsKey, moments.Count(), moments.Dim())
	return nil
}

var statsListCmd = &cobra.Command{
	Use:   "stats-list",
	Short: "List cached moment keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := cache.Open(statsCachePath)
		if err != nil {
			return err
		}
		defer db.Close()

		keys, err := db.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

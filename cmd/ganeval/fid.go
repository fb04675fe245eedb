package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganeval-ml/ganeval/internal/metrics"
	"github.com/ganeval-ml/ganeval/internal/metrics/cache"
)

var (
	fidCachePath string
	fidCacheKey  string
)

func init() {
	fidCmd.Flags().StringVar(&fidCachePath, "cache", "", "SQLite moments cache path")
	fidCmd.Flags().StringVar(&fidCacheKey, "real-key", "", "Cache key for the real-side moments (requires --cache)")
	rootCmd.AddCommand(fidCmd)
}

var fidCmd = &cobra.Command{
	Use:   "fid <real.idx|-> <fake.idx>",
	Short: "Compute the Fréchet Inception Distance",
	Long: `Compute the Fréchet Inception Distance between two sets of classifier
feature embeddings stored as 2D float32 IDX matrices, one row per sample.

The real-side argument may be "-" to load previously cached moments by key
instead of an embedding file:

  ganeval fid real.idx fake.idx
  ganeval fid real.idx fake.idx --cache moments.db --real-key celeba-train
  ganeval fid - fake.idx --cache moments.db --real-key celeba-train`,
	Args: cobra.ExactArgs(2),
	RunE: runFID,
}

func runFID(cmd *cobra.Command, args []string) error {
	realPath, fakePath := args[0], args[1]

	var db *cache.DB
	if fidCachePath != "" {
		var err error
		db, err = cache.Open(fidCachePath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	var real *metrics.Moments
	if realPath == "-" {
		if db == nil || fidCacheKey == "" {
			return errors.New(`real side "-" requires --cache and --real-key`)
		}
		cached, ok, err := db.Get(fidCacheKey)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no cached moments under key %q", fidCacheKey)
		}
		real = cached
	} else {
		var err error
		real, err = loadMomentsFile(realPath)
		if err != nil {
			return err
		}
		if db != nil && fidCacheKey != "" {
			if err := db.Put(fidCacheKey, real); err != nil {
				return err
			}
		}
	}

	fake, err := loadMomentsFile(fakePath)
	if err != nil {
		return err
	}

	fid, err := metrics.FrechetDistance(real, fake)
	if err != nil {
		return err
	}

	fmt.Printf("%.6f\n", fid)
	return nil
}

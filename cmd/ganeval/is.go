package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ganeval-ml/ganeval/internal/idx"
	"github.com/ganeval-ml/ganeval/internal/metrics"
)

var isFromLogits bool

func init() {
	isCmd.Flags().BoolVar(&isFromLogits, "logits", false, "Input rows are raw logits; apply softmax first")
	rootCmd.AddCommand(isCmd)
}

var isCmd = &cobra.Command{
	Use:   "is <predictions.idx>",
	Short: "Compute the Inception Score",
	Long: `Compute the Inception Score from classifier outputs over generated
samples, stored as a 2D float32 IDX matrix with one probability row per
sample. Pass --logits if the rows are raw class scores instead of softmax
probabilities.

Examples:
  ganeval is fake_probs.idx
  ganeval is fake_logits.idx --logits`,
	Args: cobra.ExactArgs(1),
	RunE: runIS,
}

func runIS(cmd *cobra.Command, args []string) error {
	m, err := idx.ReadMatrix(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	if isFromLogits {
		softmaxRows(m)
	}

	preds := metrics.NewPredictions(m.Cols)
	if err := preds.Add(m.Data, m.Rows); err != nil {
		return err
	}

	score, err := preds.InceptionScore()
	if err != nil {
		return err
	}

	fmt.Printf("%.6f\n", score)
	return nil
}

// softmaxRows applies a numerically stable softmax to each row in place.
func softmaxRows(m *idx.Matrix) {
	for r := 0; r < m.Rows; r++ {
		row := m.Row(r)
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - maxVal))
			row[i] = float32(e)
			sum += e
		}
		for i := range row {
			row[i] = float32(float64(row[i]) / sum)
		}
	}
}

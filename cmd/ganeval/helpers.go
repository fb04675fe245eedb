package main

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/idx"
	"github.com/ganeval-ml/ganeval/internal/metrics"
)

// loadMomentsFile reads an IDX embedding matrix and accumulates its moments.
func loadMomentsFile(path string) (*metrics.Moments, error) {
	m, err := idx.ReadMatrix(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	moments := metrics.NewMoments(m.Cols)
	if err := moments.Add(m.Data, m.Rows); err != nil {
		return nil, err
	}
	return moments, nil
}

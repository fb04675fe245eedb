// Package metrics implements evaluation metrics for generative image
// models: the Fréchet distance and the Inception Score, both computed over
// the feature and prediction space of a pretrained classifier.
package metrics

import (
	"errors"
	"fmt"
)

// Moments accumulates the streaming first and second moments of a set of
// feature vectors: the count, the per-dimension sum and the sum of outer
// products. Mean and covariance are derived on demand, so embedding batches
// never need to be retained.
type Moments struct {
	dim   int
	count int
	sum   []float64
	outer []float64 // dim x dim, row major
}

// NewMoments creates an accumulator for dim-dimensional vectors.
func NewMoments(dim int) *Moments {
	if dim <= 0 {
		panic(fmt.Sprintf("moments: invalid dim %d", dim))
	}
	return &Moments{
		dim:   dim,
		sum:   make([]float64, dim),
		outer: make([]float64, dim*dim),
	}
}

// Add accumulates a batch of rows. rows is row-major with the given count,
// each row m.Dim() wide.
func (m *Moments) Add(rows []float32, count int) error {
	if count < 0 || len(rows) != count*m.dim {
		return fmt.Errorf("moments: expected %d values for %d rows of dim %d, got %d",
			count*m.dim, count, m.dim, len(rows))
	}
	for r := 0; r < count; r++ {
		row := rows[r*m.dim : (r+1)*m.dim]
		for i, vi := range row {
			v := float64(vi)
			m.sum[i] += v
			base := i * m.dim
			for j := i; j < m.dim; j++ {
				m.outer[base+j] += v * float64(row[j])
			}
		}
	}
	m.count += count
	return nil
}

// Merge folds another accumulator over the same dimension into this one.
func (m *Moments) Merge(other *Moments) error {
	if other.dim != m.dim {
		return fmt.Errorf("moments: dimension mismatch %d vs %d", m.dim, other.dim)
	}
	for i := range m.sum {
		m.sum[i] += other.sum[i]
	}
	for i := range m.outer {
		m.outer[i] += other.outer[i]
	}
	m.count += other.count
	return nil
}

// Dim returns the vector dimension.
func (m *Moments) Dim() int {
	return m.dim
}

// Count returns the number of accumulated rows.
func (m *Moments) Count() int {
	return m.count
}

// State returns copies of the raw accumulator state for persistence.
func (m *Moments) State() (sum, outer []float64) {
	return append([]float64(nil), m.sum...), append([]float64(nil), m.outer...)
}

// RestoreMoments rebuilds an accumulator from persisted state.
func RestoreMoments(dim, count int, sum, outer []float64) (*Moments, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("moments: invalid dim %d", dim)
	}
	if count < 0 {
		return nil, fmt.Errorf("moments: invalid count %d", count)
	}
	if len(sum) != dim || len(outer) != dim*dim {
		return nil, fmt.Errorf("moments: state size mismatch for dim %d: sum %d, outer %d", dim, len(sum), len(outer))
	}
	return &Moments{
		dim:   dim,
		count: count,
		sum:   append([]float64(nil), sum...),
		outer: append([]float64(nil), outer...),
	}, nil
}

// Mean returns the sample mean.
func (m *Moments) Mean() ([]float64, error) {
	if m.count == 0 {
		return nil, errors.New("moments: no samples accumulated")
	}
	mean := make([]float64, m.dim)
	for i, s := range m.sum {
		mean[i] = s / float64(m.count)
	}
	return mean, nil
}

// Cov returns the unbiased sample covariance matrix, row major dim x dim.
// Only the upper triangle is accumulated; the lower is mirrored here.
func (m *Moments) Cov() ([]float64, error) {
	if m.count < 2 {
		return nil, fmt.Errorf("moments: need at least 2 samples for covariance, have %d", m.count)
	}
	n := float64(m.count)
	cov := make([]float64, m.dim*m.dim)
	for i := 0; i < m.dim; i++ {
		mi := m.sum[i] / n
		for j := i; j < m.dim; j++ {
			mj := m.sum[j] / n
			c := (m.outer[i*m.dim+j] - n*mi*mj) / (n - 1)
			cov[i*m.dim+j] = c
			cov[j*m.dim+i] = c
		}
	}
	return cov, nil
}

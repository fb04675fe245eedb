package metrics

import (
	"errors"
	"fmt"
	"math"
)

// Predictions collects per-sample class probability rows for the Inception
// Score. Unlike Moments, the rows must be retained: the per-sample KL
// divergence against the marginal needs every row once the marginal is
// known.
type Predictions struct {
	classes int
	rows    []float64
}

// NewPredictions creates a collector for distributions over the given
// number of classes.
func NewPredictions(classes int) *Predictions {
	if classes <= 0 {
		panic(fmt.Sprintf("predictions: invalid class count %d", classes))
	}
	return &Predictions{classes: classes}
}

// Add appends a batch of probability rows, row-major with the given count.
func (p *Predictions) Add(rows []float32, count int) error {
	if count < 0 || len(rows) != count*p.classes {
		return fmt.Errorf("predictions: expected %d values for %d rows of %d classes, got %d",
			count*p.classes, count, p.classes, len(rows))
	}
	for _, v := range rows {
		p.rows = append(p.rows, float64(v))
	}
	return nil
}

// Count returns the number of collected rows.
func (p *Predictions) Count() int {
	return len(p.rows) / p.classes
}

// InceptionScore computes exp(E_x[KL(p(y|x) || p(y))]) where p(y) is the
// marginal over the collected rows. Higher is better; the score lies in
// [1, classes].
func (p *Predictions) InceptionScore() (float64, error) {
	n := p.Count()
	if n == 0 {
		return 0, errors.New("predictions: no samples collected")
	}

	// Marginal p(y) = mean over rows of p(y|x).
	marginal := make([]float64, p.classes)
	for r := 0; r < n; r++ {
		row := p.rows[r*p.classes : (r+1)*p.classes]
		for i, v := range row {
			marginal[i] += v
		}
	}
	for i := range marginal {
		marginal[i] /= float64(n)
	}

	var klSum float64
	for r := 0; r < n; r++ {
		row := p.rows[r*p.classes : (r+1)*p.classes]
		for i, v := range row {
			if v <= 0 || marginal[i] <= 0 {
				continue
			}
			klSum += v * math.Log(v/marginal[i])
		}
	}

	return math.Exp(klSum / float64(n)), nil
}

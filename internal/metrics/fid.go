package metrics

import "fmt"

// FrechetDistance computes the Fréchet distance between two multivariate
// Gaussians given by their accumulated moments:
//
//	||mx - my||^2 + tr(Cx + Cy - 2 sqrt(Cx Cy))
//
// With moments taken over classifier feature embeddings this is the Fréchet
// Inception Distance.
func FrechetDistance(x, y *Moments) (float64, error) {
	if x.Dim() != y.Dim() {
		return 0, fmt.Errorf("frechet: dimension mismatch %d vs %d", x.Dim(), y.Dim())
	}
	dim := x.Dim()

	xMean, err := x.Mean()
	if err != nil {
		return 0, fmt.Errorf("frechet: first distribution: %w", err)
	}
	yMean, err := y.Mean()
	if err != nil {
		return 0, fmt.Errorf("frechet: second distribution: %w", err)
	}
	xCov, err := x.Cov()
	if err != nil {
		return 0, fmt.Errorf("frechet: first distribution: %w", err)
	}
	yCov, err := y.Cov()
	if err != nil {
		return 0, fmt.Errorf("frechet: second distribution: %w", err)
	}

	var meanDist float64
	for i := range xMean {
		d := xMean[i] - yMean[i]
		meanDist += d * d
	}

	var traceSum float64
	for i := 0; i < dim; i++ {
		traceSum += xCov[i*dim+i] + yCov[i*dim+i]
	}

	trSqrt, err := traceSqrtProduct(xCov, yCov, dim)
	if err != nil {
		return 0, fmt.Errorf("frechet: %w", err)
	}

	return meanDist + traceSum - 2*trSqrt, nil
}

package metrics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaussianMoments constructs an accumulator whose derived statistics are
// exactly the given mean and (unbiased) diagonal-free covariance.
func gaussianMoments(t *testing.T, count int, mean []float64, cov []float64) *Moments {
	t.Helper()
	dim := len(mean)
	n := float64(count)

	sum := make([]float64, dim)
	for i, m := range mean {
		sum[i] = n * m
	}
	outer := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			outer[i*dim+j] = (n-1)*cov[i*dim+j] + n*mean[i]*mean[j]
		}
	}

	m, err := RestoreMoments(dim, count, sum, outer)
	require.NoError(t, err)
	return m
}

func TestFrechetDistanceIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows := make([]float32, 20*3)
	for i := range rows {
		rows[i] = float32(rng.NormFloat64())
	}

	x := NewMoments(3)
	y := NewMoments(3)
	require.NoError(t, x.Add(rows, 20))
	require.NoError(t, y.Add(rows, 20))

	d, err := FrechetDistance(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-6)
}

func TestFrechetDistanceMeanShift(t *testing.T) {
	identity := []float64{
		1, 0,
		0, 1,
	}
	x := gaussianMoments(t, 10, []float64{0, 0}, identity)
	y := gaussianMoments(t, 10, []float64{1, 1}, identity)

	// Equal covariances: the distance is the squared mean difference.
	d, err := FrechetDistance(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2, d, 1e-6)
}

func TestFrechetDistanceCovarianceOnly(t *testing.T) {
	x := gaussianMoments(t, 10, []float64{0, 0}, []float64{
		4, 0,
		0, 4,
	})
	y := gaussianMoments(t, 10, []float64{0, 0}, []float64{
		1, 0,
		0, 1,
	})

	// Per dimension: 4 + 1 - 2*sqrt(4) = 1.
	d, err := FrechetDistance(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2, d, 1e-6)
}

func TestFrechetDistanceSymmetric(t *testing.T) {
	x := gaussianMoments(t, 25, []float64{0.3, -0.2}, []float64{
		2, 0.5,
		0.5, 1,
	})
	y := gaussianMoments(t, 25, []float64{-0.1, 0.4}, []float64{
		1, 0.2,
		0.2, 3,
	})

	xy, err := FrechetDistance(x, y)
	require.NoError(t, err)
	yx, err := FrechetDistance(y, x)
	require.NoError(t, err)
	assert.InDelta(t, xy, yx, 1e-9)
	assert.Greater(t, xy, 0.0)
}

func TestFrechetDistanceDimMismatch(t *testing.T) {
	x := NewMoments(2)
	y := NewMoments(3)
	_, err := FrechetDistance(x, y)
	assert.Error(t, err)
}

func TestFrechetDistanceTooFewSamples(t *testing.T) {
	x := NewMoments(2)
	y := NewMoments(2)
	require.NoError(t, x.Add([]float32{1, 2}, 1))
	require.NoError(t, y.Add([]float32{1, 2}, 1))

	_, err := FrechetDistance(x, y)
	assert.Error(t, err)
}

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymEigReconstruction(t *testing.T) {
	a := []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	}
	eigvals, eigvecs, err := symEig(append([]float64(nil), a...), 3)
	require.NoError(t, err)

	// V diag(eigvals) V^T must reconstruct the input.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var v float64
			for k := 0; k < 3; k++ {
				v += eigvecs[i*3+k] * eigvals[k] * eigvecs[j*3+k]
			}
			assert.InDelta(t, a[i*3+j], v, 1e-9, "entry (%d,%d)", i, j)
		}
	}

	// The trace is preserved.
	var sum float64
	for _, ev := range eigvals {
		sum += ev
	}
	assert.InDelta(t, 9, sum, 1e-9)
}

func TestSqrtSymDiagonal(t *testing.T) {
	a := []float64{
		4, 0,
		0, 9,
	}
	s, err := sqrtSym(a, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2, s[0], 1e-9)
	assert.InDelta(t, 0, s[1], 1e-9)
	assert.InDelta(t, 0, s[2], 1e-9)
	assert.InDelta(t, 3, s[3], 1e-9)
}

func TestSqrtSymSquaresBack(t *testing.T) {
	a := []float64{
		2, 1,
		1, 2,
	}
	s, err := sqrtSym(append([]float64(nil), a...), 2)
	require.NoError(t, err)

	sq := matMulSquare(s, s, 2)
	assert.InDeltaSlice(t, a, sq, 1e-9)
}

func TestSqrtSymClampsNegative(t *testing.T) {
	// Slightly indefinite input from floating point round-off.
	a := []float64{
		1, 0,
		0, -1e-14,
	}
	s, err := sqrtSym(a, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1, s[0], 1e-9)
	assert.InDelta(t, 0, s[3], 1e-6)
}

func TestTraceSqrtProductDiagonal(t *testing.T) {
	cx := []float64{
		1, 0,
		0, 4,
	}
	cy := []float64{
		9, 0,
		0, 16,
	}
	// tr sqrt(diag(9, 64)) = 3 + 8.
	tr, err := traceSqrtProduct(cx, cy, 2)
	require.NoError(t, err)
	assert.InDelta(t, 11, tr, 1e-9)
}

func TestTraceSqrtProductSymmetricInArguments(t *testing.T) {
	cx := []float64{
		2, 0.5,
		0.5, 1,
	}
	cy := []float64{
		1, 0.2,
		0.2, 3,
	}
	ab, err := traceSqrtProduct(cx, cy, 2)
	require.NoError(t, err)
	ba, err := traceSqrtProduct(cy, cx, 2)
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-9)
}

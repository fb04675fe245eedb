package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentsMeanCov(t *testing.T) {
	m := NewMoments(2)
	require.NoError(t, m.Add([]float32{1, 2, 3, 4, 5, 8}, 3))
	require.Equal(t, 3, m.Count())
	require.Equal(t, 2, m.Dim())

	mean, err := m.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 3, mean[0], 1e-9)
	assert.InDelta(t, 14.0/3, mean[1], 1e-9)

	cov, err := m.Cov()
	require.NoError(t, err)
	assert.InDelta(t, 4, cov[0], 1e-9)
	assert.InDelta(t, 6, cov[1], 1e-9)
	assert.InDelta(t, 6, cov[2], 1e-9, "lower triangle must mirror the upper")
	assert.InDelta(t, 28.0/3, cov[3], 1e-9)
}

func TestMomentsAddValidation(t *testing.T) {
	m := NewMoments(3)
	assert.Error(t, m.Add([]float32{1, 2}, 1))
	assert.Error(t, m.Add([]float32{1, 2, 3}, -1))
	assert.NoError(t, m.Add(nil, 0))
}

func TestMomentsEmpty(t *testing.T) {
	m := NewMoments(2)

	_, err := m.Mean()
	assert.Error(t, err)

	require.NoError(t, m.Add([]float32{1, 2}, 1))
	_, err = m.Mean()
	assert.NoError(t, err)
	_, err = m.Cov()
	assert.Error(t, err, "covariance needs at least two samples")
}

func TestMomentsMerge(t *testing.T) {
	all := NewMoments(2)
	require.NoError(t, all.Add([]float32{1, 2, 3, 4, 5, 8, 7, 6}, 4))

	a := NewMoments(2)
	b := NewMoments(2)
	require.NoError(t, a.Add([]float32{1, 2, 3, 4}, 2))
	require.NoError(t, b.Add([]float32{5, 8, 7, 6}, 2))
	require.NoError(t, a.Merge(b))

	assert.Equal(t, all.Count(), a.Count())

	wantMean, err := all.Mean()
	require.NoError(t, err)
	gotMean, err := a.Mean()
	require.NoError(t, err)
	assert.InDeltaSlice(t, wantMean, gotMean, 1e-9)

	wantCov, err := all.Cov()
	require.NoError(t, err)
	gotCov, err := a.Cov()
	require.NoError(t, err)
	assert.InDeltaSlice(t, wantCov, gotCov, 1e-9)
}

func TestMomentsMergeDimMismatch(t *testing.T) {
	a := NewMoments(2)
	b := NewMoments(3)
	assert.Error(t, a.Merge(b))
}

func TestMomentsStateRoundtrip(t *testing.T) {
	m := NewMoments(2)
	require.NoError(t, m.Add([]float32{1, 2, 3, 4, 5, 8}, 3))

	sum, outer := m.State()
	restored, err := RestoreMoments(m.Dim(), m.Count(), sum, outer)
	require.NoError(t, err)

	assert.Equal(t, m.Count(), restored.Count())
	wantMean, err := m.Mean()
	require.NoError(t, err)
	gotMean, err := restored.Mean()
	require.NoError(t, err)
	assert.InDeltaSlice(t, wantMean, gotMean, 0)

	wantCov, err := m.Cov()
	require.NoError(t, err)
	gotCov, err := restored.Cov()
	require.NoError(t, err)
	assert.InDeltaSlice(t, wantCov, gotCov, 0)

	// The returned state is a copy; mutating it does not corrupt the source.
	sum[0] = 1e9
	mean, err := m.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 3, mean[0], 1e-9)
}

func TestRestoreMomentsValidation(t *testing.T) {
	_, err := RestoreMoments(0, 1, nil, nil)
	assert.Error(t, err)
	_, err = RestoreMoments(2, -1, make([]float64, 2), make([]float64, 4))
	assert.Error(t, err)
	_, err = RestoreMoments(2, 1, make([]float64, 3), make([]float64, 4))
	assert.Error(t, err)
	_, err = RestoreMoments(2, 1, make([]float64, 2), make([]float64, 5))
	assert.Error(t, err)
}

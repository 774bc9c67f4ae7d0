package spectral

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeImpulse(t *testing.T) {
	f := NewFFT()
	spec := f.Compute([]float64{1, 0, 0, 0})
	require.Len(t, spec, 4)
	for _, v := range spec {
		assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-12)
	}
}

func TestComputeEmpty(t *testing.T) {
	f := NewFFT()
	assert.Empty(t, f.Compute(nil))
	assert.Empty(t, f.ComputeInverseReal(nil))
	assert.Empty(t, f.CrossCorrelate(nil, []float64{1}, 1))
	assert.Empty(t, f.CrossCorrelate([]float64{1}, []float64{1}, 0))
}

func TestInverseRoundTrip(t *testing.T) {
	f := NewFFT()
	x := []float64{0.25, -1, 3, 0.5, 2}
	back := f.ComputeInverseReal(f.Compute(x))
	require.Len(t, back, len(x))
	for i := range x {
		assert.InDelta(t, x[i], back[i], 1e-9)
	}
}

func TestCrossCorrelateMatchesDirectSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := make([]float64, 300)
	for i := range b {
		b[i] = rng.Float64()*2 - 1
	}
	a := b[:150]
	lags := 150

	got := NewFFT().CrossCorrelate(a, b, lags)
	require.Len(t, got, lags)

	for tau := 0; tau < lags; tau++ {
		want := 0.0
		for j := range a {
			want += a[j] * b[j+tau]
		}
		assert.InDelta(t, want, got[tau], 1e-9*math.Max(1, math.Abs(want)), "tau=%d", tau)
	}
}

package spectral

import (
	"github.com/RyanBlaney/sonido-yin/algorithms/common"
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes Fast Fourier Transform using mjibson/go-dsp
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes, including non-power-of-2
	return fft.FFTReal(x)
}

// ComputeInverseReal computes inverse FFT and returns real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}

// CrossCorrelate returns r[tau] = sum_j a[j]*b[j+tau] for tau in [0, lags),
// treating samples past the end of b as zero. The transform length is padded
// so the circular correlation never wraps into the lags that are returned.
func (f *FFT) CrossCorrelate(a, b []float64, lags int) []float64 {
	if lags <= 0 || len(a) == 0 || len(b) == 0 {
		return []float64{}
	}

	size := common.NextPowerOfTwo(max(len(b), len(a)+lags))

	pa := make([]float64, size)
	copy(pa, a)
	pb := make([]float64, size)
	copy(pb, b)

	sa := f.Compute(pa)
	sb := f.Compute(pb)
	for i := range sa {
		re, im := real(sa[i]), -imag(sa[i])
		sa[i] = complex(re, im) * sb[i]
	}

	corr := f.ComputeInverseReal(sa)
	return corr[:lags]
}

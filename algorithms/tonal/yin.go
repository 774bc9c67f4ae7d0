package tonal

import (
	"github.com/RyanBlaney/sonido-yin/algorithms/common"
	"github.com/RyanBlaney/sonido-yin/algorithms/spectral"
)

// NoPeriod is the lag reported when no normalized difference value falls
// below the threshold.
const NoPeriod = -1

// YIN stages, after de Cheveigné, A., Kawahara, H. (2002) "YIN, a fundamental
// frequency estimator for speech and music". All curves have frame/2 entries
// indexed by lag tau.

// DifferenceFunction computes d[tau] = sum_{j<W} (x[j] - x[j+tau])^2 with
// W = len(frame)/2.
func DifferenceFunction(frame []float32) []float32 {
	diff := make([]float32, len(frame)/2)
	DifferenceFunctionInto(frame, diff)
	return diff
}

// DifferenceFunctionInto writes the difference function of frame into diff,
// which must have length len(frame)/2.
func DifferenceFunctionInto(frame, diff []float32) {
	halfN := len(diff)
	for tau := range halfN {
		var sum float32
		for j := range halfN {
			delta := frame[j] - frame[j+tau]
			// explicit conversion keeps the product rounded (no FMA)
			sum += float32(delta * delta)
		}
		diff[tau] = sum
	}
}

// fftScratch holds the widened frame and energy prefix sums for the FFT path
type fftScratch struct {
	fft     *spectral.FFT
	samples []float64
	energy  []float64
}

func newFFTScratch() *fftScratch {
	return &fftScratch{fft: spectral.NewFFT()}
}

// DifferenceFunctionFFT computes the difference function through
// d[tau] = e(0) + e(tau) - 2 r(tau), where e(tau) is the energy of the
// W-sample window starting at tau and r the cross-correlation of the first
// window with the frame.
func DifferenceFunctionFFT(frame []float32) []float32 {
	diff := make([]float32, len(frame)/2)
	newFFTScratch().differenceInto(frame, diff)
	return diff
}

func (s *fftScratch) differenceInto(frame, diff []float32) {
	halfN := len(diff)
	if halfN == 0 {
		return
	}

	x := common.ToFloat64(s.samples, frame)
	s.samples = x

	// energy[k] = sum_{i<k} x[i]^2
	if cap(s.energy) < len(x)+1 {
		s.energy = make([]float64, len(x)+1)
	}
	energy := s.energy[:len(x)+1]
	energy[0] = 0
	for i, v := range x {
		energy[i+1] = energy[i] + v*v
	}

	corr := s.fft.CrossCorrelate(x[:halfN], x, halfN)
	e0 := common.SumSquares(x[:halfN])

	diff[0] = 0
	for tau := 1; tau < halfN; tau++ {
		d := e0 + (energy[tau+halfN] - energy[tau]) - 2*corr[tau]
		if d < 0 {
			d = 0
		}
		diff[tau] = float32(d)
	}
}

// CMNDF computes the cumulative mean normalized difference of diff.
// cmndf[0] is 1 by definition; a zero running sum yields NaN or +Inf.
func CMNDF(diff []float32) []float32 {
	cmndf := make([]float32, len(diff))
	CMNDFInto(diff, cmndf)
	return cmndf
}

// CMNDFInto writes the normalized curve of diff into cmndf (same length).
// cmndf may alias diff.
func CMNDFInto(diff, cmndf []float32) {
	if len(diff) == 0 {
		return
	}
	cmndf[0] = 1.0

	var runningSum float32
	for tau := 1; tau < len(diff); tau++ {
		d := diff[tau]
		runningSum += d
		cmndf[tau] = d / (runningSum / float32(tau))
	}
}

// AbsoluteThreshold returns the first lag >= 2 whose normalized difference is
// below threshold, advanced to the bottom of that dip. It returns NoPeriod
// when the curve never crosses the threshold.
func AbsoluteThreshold(cmndf []float32, threshold float32) int {
	for tau := 2; tau < len(cmndf); tau++ {
		if cmndf[tau] < threshold {
			for tau+1 < len(cmndf) && cmndf[tau+1] < cmndf[tau] {
				tau++
			}
			return tau
		}
	}
	return NoPeriod
}

// ParabolicInterpolation refines tau to the vertex of the parabola through
// its two neighbours. Lags without both neighbours are returned unchanged.
// Flat neighbourhoods divide by zero and yield ±Inf or NaN.
func ParabolicInterpolation(cmndf []float32, tau int) float32 {
	if tau < 1 || tau >= len(cmndf)-1 {
		return float32(tau)
	}

	s0 := cmndf[tau-1]
	s1 := cmndf[tau]
	s2 := cmndf[tau+1]

	return float32(tau) + (s2-s0)/(2*(float32(2*s1)-s2-s0))
}

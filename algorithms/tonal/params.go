package tonal

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-yin/logging"
)

// DifferenceMethod selects how the YIN difference function is evaluated
type DifferenceMethod int

const (
	// DifferenceDirect evaluates the squared-difference sum lag by lag in
	// float32, the canonical form of the kernel.
	DifferenceDirect DifferenceMethod = iota

	// DifferenceFFT derives the same curve from an FFT cross-correlation in
	// float64. Faster for large frames, equal up to rounding.
	DifferenceFFT
)

// String returns the name of the difference method
func (m DifferenceMethod) String() string {
	switch m {
	case DifferenceDirect:
		return "direct"
	case DifferenceFFT:
		return "fft"
	default:
		return "unknown"
	}
}

// Params contains parameters for YIN pitch tracking
type Params struct {
	SampleRate float32 `json:"sample_rate"`
	FrameSize  int     `json:"frame_size"`
	HopSize    int     `json:"hop_size"`

	// Threshold on the normalized difference below which a lag becomes a
	// period candidate (typically 0.1-0.2)
	Threshold float32 `json:"threshold"`

	// Frequency range constraints (Hz); estimates outside report pitch 0
	MinFreq float32 `json:"min_freq"`
	MaxFreq float32 `json:"max_freq"`

	// Interpolation enables parabolic sub-sample refinement of the period
	Interpolation bool `json:"interpolation"`

	DifferenceMethod DifferenceMethod `json:"difference_method"`

	// Workers > 1 analyses frames concurrently; output order is unchanged
	Workers int `json:"workers"`

	// Logger defaults to the global logger when nil
	Logger logging.Logger `json:"-"`
}

// DefaultParams returns defaults suited to voice and most melodic instruments
func DefaultParams(sampleRate float32) Params {
	return Params{
		SampleRate:       sampleRate,
		FrameSize:        1024,
		HopSize:          512,
		Threshold:        0.15,
		MinFreq:          80.0,   // Low male voice
		MaxFreq:          1000.0, // High female voice
		Interpolation:    true,
		DifferenceMethod: DifferenceDirect,
		Workers:          1,
	}
}

// Validate checks the parameters that would otherwise hang, panic or divide
// by zero. Degenerate audio is not a parameter problem and is never rejected.
func (p Params) Validate() error {
	if p.FrameSize < 2 {
		return fmt.Errorf("frame size %d: %w", p.FrameSize, ErrInvalidFrameSize)
	}
	if p.HopSize <= 0 {
		return fmt.Errorf("hop size %d: %w", p.HopSize, ErrInvalidHopSize)
	}
	sr := float64(p.SampleRate)
	if !(sr > 0) || math.IsInf(sr, 0) {
		return fmt.Errorf("sample rate %v: %w", p.SampleRate, ErrInvalidSampleRate)
	}
	if !(p.MinFreq <= p.MaxFreq) {
		return fmt.Errorf("[%v, %v] Hz: %w", p.MinFreq, p.MaxFreq, ErrInvalidFrequencyRange)
	}
	if p.DifferenceMethod != DifferenceDirect && p.DifferenceMethod != DifferenceFFT {
		return fmt.Errorf("method %d: %w", int(p.DifferenceMethod), ErrUnknownDifferenceMethod)
	}
	return nil
}

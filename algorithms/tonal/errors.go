package tonal

import "errors"

var (
	// ErrInvalidFrameSize is returned when a frame cannot hold a lag curve
	// (fewer than two samples, or larger than the platform int).
	ErrInvalidFrameSize = errors.New("tonal: frame size must be at least 2")

	// ErrInvalidHopSize is returned for a zero hop, which would never advance.
	ErrInvalidHopSize = errors.New("tonal: hop size must be positive")

	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("tonal: sample rate must be positive and finite")

	// ErrInvalidFrequencyRange is returned when minFreq > maxFreq or either is NaN.
	ErrInvalidFrequencyRange = errors.New("tonal: invalid frequency range")

	// ErrUnknownDifferenceMethod is returned for an out-of-range DifferenceMethod.
	ErrUnknownDifferenceMethod = errors.New("tonal: unknown difference method")

	// ErrMalformedResults is returned by DecodeResults when the flat sequence
	// is not made of whole (pitch, confidence, tau) triples.
	ErrMalformedResults = errors.New("tonal: result length is not a multiple of 3")
)

package tonal

import (
	"fmt"
	"math"
	"sync"

	"github.com/RyanBlaney/sonido-yin/algorithms/common"
	"github.com/RyanBlaney/sonido-yin/logging"
)

// PitchEstimate is the YIN result for one frame
type PitchEstimate struct {
	Pitch      float32 `json:"pitch"`      // Hz, 0 when unvoiced or out of range
	Confidence float32 `json:"confidence"` // 1 - cmndf[Tau], 0 when Pitch is 0
	Tau        int     `json:"tau"`        // integer period candidate, NoPeriod if none
	Time       float64 `json:"time"`       // frame start in seconds
}

// YinAnalyzer tracks pitch over a sample buffer with the YIN algorithm.
// It keeps no state between calls and is safe for concurrent use.
//
// Frames start every HopSize samples while a full FrameSize window fits. Each
// frame runs difference -> CMNDF -> absolute threshold -> (optional)
// parabolic interpolation, and the refined period is converted to Hz.
type YinAnalyzer struct {
	params Params
	window *common.SlidingWindow
	logger logging.Logger
}

// NewYinAnalyzer validates params and creates an analyzer
func NewYinAnalyzer(params Params) (*YinAnalyzer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid YIN parameters: %w", err)
	}

	logger := params.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &YinAnalyzer{
		params: params,
		window: common.NewSlidingWindow(params.FrameSize, params.HopSize),
		logger: logger.WithFields(logging.Fields{
			"component": "yin",
		}),
	}, nil
}

// GetParameters returns the analyzer parameters
func (ya *YinAnalyzer) GetParameters() Params {
	return ya.params
}

// FrameCount returns the number of estimates Analyze produces for audio
func (ya *YinAnalyzer) FrameCount(audio []float32) int {
	return ya.window.Count(audio)
}

// frameScratch is the per-goroutine curve storage, reused across frames
type frameScratch struct {
	curve []float32 // difference, then normalized in place
	fft   *fftScratch
}

func (ya *YinAnalyzer) newScratch() *frameScratch {
	s := &frameScratch{curve: make([]float32, ya.params.FrameSize/2)}
	if ya.params.DifferenceMethod == DifferenceFFT {
		s.fft = newFFTScratch()
	}
	return s
}

// Analyze returns one estimate per frame, in frame order. Audio shorter than
// one frame yields an empty slice.
func (ya *YinAnalyzer) Analyze(audio []float32) ([]PitchEstimate, error) {
	numFrames := ya.window.Count(audio)
	estimates := make([]PitchEstimate, numFrames)
	if numFrames == 0 {
		return estimates, nil
	}

	workers := min(max(ya.params.Workers, 1), numFrames)

	ya.logger.Debug("Starting YIN analysis", logging.Fields{
		"samples":    len(audio),
		"frames":     numFrames,
		"frame_size": ya.params.FrameSize,
		"hop_size":   ya.params.HopSize,
		"method":     ya.params.DifferenceMethod.String(),
		"workers":    workers,
	})

	var degenerate int
	if workers == 1 {
		degenerate = ya.analyzeRange(audio, estimates, 0, numFrames, ya.newScratch())
	} else {
		degenerate = ya.analyzeParallel(audio, estimates, workers)
	}

	if degenerate > 0 {
		ya.logger.Warn("Frames with non-finite normalized difference", logging.Fields{
			"frames": degenerate,
			"total":  numFrames,
		})
	}

	return estimates, nil
}

// analyzeParallel splits frames into contiguous chunks, one per worker
func (ya *YinAnalyzer) analyzeParallel(audio []float32, estimates []PitchEstimate, workers int) int {
	numFrames := len(estimates)
	chunk := (numFrames + workers - 1) / workers
	counts := make([]int, workers)

	var wg sync.WaitGroup
	for w := range workers {
		start := w * chunk
		end := min(start+chunk, numFrames)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			counts[w] = ya.analyzeRange(audio, estimates, start, end, ya.newScratch())
		}(w, start, end)
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// analyzeRange fills estimates[start:end] and returns how many of those frames
// produced a non-finite normalized difference
func (ya *YinAnalyzer) analyzeRange(audio []float32, estimates []PitchEstimate, start, end int, scratch *frameScratch) int {
	degenerate := 0
	for i := start; i < end; i++ {
		frame := ya.window.Frame(audio, i)
		est := ya.analyzeFrame(frame, scratch)
		est.Time = float64(ya.window.Offset(i)) / float64(ya.params.SampleRate)
		estimates[i] = est

		if hasNonFinite(scratch.curve) {
			degenerate++
		}
	}
	return degenerate
}

// analyzeFrame runs the four YIN stages on one frame
func (ya *YinAnalyzer) analyzeFrame(frame []float32, scratch *frameScratch) PitchEstimate {
	curve := scratch.curve

	// Step 1: Difference function
	if scratch.fft != nil {
		scratch.fft.differenceInto(frame, curve)
	} else {
		DifferenceFunctionInto(frame, curve)
	}

	// Step 2: Cumulative mean normalized difference (in place)
	CMNDFInto(curve, curve)

	// Step 3: Absolute threshold
	tau := AbsoluteThreshold(curve, ya.params.Threshold)

	est := PitchEstimate{Tau: tau}
	if tau <= 0 {
		return est
	}

	// Step 4: Parabolic interpolation
	period := float32(tau)
	if ya.params.Interpolation {
		period = ParabolicInterpolation(curve, tau)
	}

	freq := ya.params.SampleRate / period
	confidence := 1.0 - curve[tau]

	// Filter out unrealistic pitches; tau is reported regardless
	if freq >= ya.params.MinFreq && freq <= ya.params.MaxFreq {
		est.Pitch = freq
		est.Confidence = confidence
	}

	return est
}

func hasNonFinite(curve []float32) bool {
	for _, v := range curve {
		if !common.IsFinite32(v) {
			return true
		}
	}
	return false
}

// AnalyzeFlat returns the estimates as pitch, confidence, tau triples
func (ya *YinAnalyzer) AnalyzeFlat(audio []float32) ([]float32, error) {
	estimates, err := ya.Analyze(audio)
	if err != nil {
		return nil, err
	}
	return FlattenResults(estimates), nil
}

// FlattenResults lays estimates out as [pitch0, conf0, tau0, pitch1, ...]
func FlattenResults(estimates []PitchEstimate) []float32 {
	results := make([]float32, 0, len(estimates)*3)
	for _, est := range estimates {
		results = append(results, est.Pitch, est.Confidence, float32(est.Tau))
	}
	return results
}

// PerformAnalysis runs YIN over audioData and returns a flat sequence of
// pitch, confidence, tau triples, one per frame. Audio shorter than frameSize
// yields an empty result. A zero hop or a frame shorter than 2 samples is
// rejected instead of looping forever or indexing out of range.
func PerformAnalysis(
	audioData []float32,
	sampleRate float32,
	frameSize uint,
	hopSize uint,
	threshold float32,
	minFreq float32,
	maxFreq float32,
	interpolation bool,
) ([]float32, error) {
	if frameSize > math.MaxInt {
		return nil, fmt.Errorf("frame size %d: %w", frameSize, ErrInvalidFrameSize)
	}
	if hopSize > math.MaxInt {
		// larger than any buffer: only the first frame can fit
		hopSize = math.MaxInt
	}

	params := Params{
		SampleRate:       sampleRate,
		FrameSize:        int(frameSize),
		HopSize:          int(hopSize),
		Threshold:        threshold,
		MinFreq:          minFreq,
		MaxFreq:          maxFreq,
		Interpolation:    interpolation,
		DifferenceMethod: DifferenceDirect,
		Workers:          1,
	}

	analyzer, err := NewYinAnalyzer(params)
	if err != nil {
		return nil, err
	}
	return analyzer.AnalyzeFlat(audioData)
}

// FrameCount returns how many frames PerformAnalysis produces for a buffer of
// audioLength samples, so callers can size a 3*FrameCount result buffer.
// It is 0 when the buffer is shorter than a frame or hopSize is 0.
func FrameCount(audioLength, frameSize, hopSize uint) uint {
	if hopSize == 0 || frameSize == 0 || audioLength < frameSize {
		return 0
	}
	return (audioLength-frameSize)/hopSize + 1
}

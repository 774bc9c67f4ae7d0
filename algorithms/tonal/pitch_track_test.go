package tonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultsRoundTrip(t *testing.T) {
	audio := sine(261.63, 44100, 0.5, 5000)
	flat, err := PerformAnalysis(audio, 44100, 1024, 512, 0.15, 80, 1000, true)
	require.NoError(t, err)

	estimates, err := DecodeResults(flat)
	require.NoError(t, err)
	require.Len(t, estimates, int(FrameCount(5000, 1024, 512)))

	assert.Equal(t, flat, FlattenResults(estimates))
}

func TestDecodeResultsNoPeriod(t *testing.T) {
	estimates, err := DecodeResults([]float32{0, 0, -1})
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.Equal(t, NoPeriod, estimates[0].Tau)
}

func TestDecodeResultsMalformed(t *testing.T) {
	_, err := DecodeResults([]float32{440, 0.9})
	assert.ErrorIs(t, err, ErrMalformedResults)
}

func TestSummarizeTrack(t *testing.T) {
	estimates := []PitchEstimate{
		{Pitch: 100, Confidence: 0.9, Tau: 441},
		{Pitch: 0, Confidence: 0, Tau: NoPeriod},
		{Pitch: 200, Confidence: 0.8, Tau: 220},
		{Pitch: 300, Confidence: 0.7, Tau: 147},
	}

	s := SummarizeTrack(estimates)
	assert.Equal(t, 4, s.Frames)
	assert.Equal(t, 3, s.VoicedFrames)
	assert.InDelta(t, 0.75, s.VoicedRatio, 1e-12)
	assert.InDelta(t, 200.0, s.MeanPitch, 1e-9)
	assert.InDelta(t, 200.0, s.MedianPitch, 1e-9)
	assert.Equal(t, 100.0, s.MinPitch)
	assert.Equal(t, 300.0, s.MaxPitch)
	assert.InDelta(t, 100.0, s.PitchStdDev, 1e-9)
	assert.InDelta(t, 0.8, s.MeanConfidence, 1e-6)
}

func TestSummarizeTrackSkipsNonFinitePitch(t *testing.T) {
	estimates := []PitchEstimate{
		{Pitch: float32(math.Inf(1)), Tau: 2},
		{Pitch: float32(math.NaN()), Tau: 2},
		{Pitch: 150, Confidence: 0.5, Tau: 294},
	}

	s := SummarizeTrack(estimates)
	assert.Equal(t, 1, s.VoicedFrames)
	assert.Equal(t, 150.0, s.MedianPitch)
	assert.Zero(t, s.PitchStdDev)
}

func TestSummarizeTrackEmpty(t *testing.T) {
	s := SummarizeTrack(nil)
	assert.Equal(t, TrackSummary{}, s)

	s = SummarizeTrack([]PitchEstimate{{Tau: NoPeriod}})
	assert.Equal(t, 1, s.Frames)
	assert.Zero(t, s.VoicedRatio)
	assert.Zero(t, s.MeanPitch)
}

func TestSummarizeSteadySine(t *testing.T) {
	analyzer, err := NewYinAnalyzer(quietParams(44100))
	require.NoError(t, err)

	estimates, err := analyzer.Analyze(sine(440, 44100, 0.8, 44100))
	require.NoError(t, err)

	s := SummarizeTrack(estimates)
	assert.Equal(t, 1.0, s.VoicedRatio)
	assert.InDelta(t, 440.0, s.MedianPitch, 2.0)
	assert.Less(t, s.PitchStdDev, 2.0)
	assert.Greater(t, s.MeanConfidence, 0.9)
}

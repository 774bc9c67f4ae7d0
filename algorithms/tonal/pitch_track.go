package tonal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-yin/algorithms/common"
)

// TrackSummary describes a pitch track as a whole. Pitch statistics cover
// voiced frames only.
type TrackSummary struct {
	Frames         int     `json:"frames"`
	VoicedFrames   int     `json:"voiced_frames"`
	VoicedRatio    float64 `json:"voiced_ratio"`
	MeanPitch      float64 `json:"mean_pitch"`
	MedianPitch    float64 `json:"median_pitch"`
	MinPitch       float64 `json:"min_pitch"`
	MaxPitch       float64 `json:"max_pitch"`
	PitchStdDev    float64 `json:"pitch_std_dev"`
	MeanConfidence float64 `json:"mean_confidence"`
}

// DecodeResults turns a flat pitch, confidence, tau sequence back into
// estimates. Time is left zero; the flat layout does not carry it.
func DecodeResults(flat []float32) ([]PitchEstimate, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("%d values: %w", len(flat), ErrMalformedResults)
	}

	estimates := make([]PitchEstimate, len(flat)/3)
	for i := range estimates {
		estimates[i] = PitchEstimate{
			Pitch:      flat[3*i],
			Confidence: flat[3*i+1],
			Tau:        int(flat[3*i+2]),
		}
	}
	return estimates, nil
}

// IsVoiced reports whether the estimate carries a usable pitch
func (e PitchEstimate) IsVoiced() bool {
	return e.Pitch > 0 && common.IsFinite32(e.Pitch)
}

// SummarizeTrack computes voicing and pitch statistics over estimates
func SummarizeTrack(estimates []PitchEstimate) TrackSummary {
	summary := TrackSummary{Frames: len(estimates)}

	pitches := make([]float64, 0, len(estimates))
	confidences := make([]float64, 0, len(estimates))
	for _, est := range estimates {
		if !est.IsVoiced() {
			continue
		}
		pitches = append(pitches, float64(est.Pitch))
		confidences = append(confidences, float64(est.Confidence))
	}

	summary.VoicedFrames = len(pitches)
	if summary.Frames > 0 {
		summary.VoicedRatio = float64(summary.VoicedFrames) / float64(summary.Frames)
	}
	if len(pitches) == 0 {
		return summary
	}

	summary.MeanPitch = common.Mean(pitches)
	summary.MedianPitch = common.Median(pitches)
	summary.MinPitch, summary.MaxPitch = common.MinMax(pitches)
	summary.PitchStdDev = common.StandardDeviation(pitches)
	summary.MeanConfidence = common.Mean(confidences)

	return summary
}

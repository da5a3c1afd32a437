package engine

import (
	"github.com/vinylcore/vinylrestore/internal/mathutil"
)

// lowestFraction is the proportion of quietest segments averaged to obtain
// the scalar noise floor (spec §4.C).
const lowestFraction = 0.2

// SegmentSpan returns the non-overlapping segment length in frames used by
// the noise-floor estimator: max(sampleRate*2, 1).
func SegmentSpan(sampleRate int) int {
	span := sampleRate * 2
	if span < 1 {
		return 1
	}
	return span
}

// NoiseFloorResult holds the per-segment RMS series and the derived scalar
// noise floor.
type NoiseFloorResult struct {
	SegmentRMS    []float64
	SegmentFrames int
	NoiseFloor    float64
}

// EstimateNoiseFloor partitions the interleaved, multichannel samples into
// non-overlapping segments of SegmentSpan(sampleRate) frames, computes each
// segment's RMS across all channels, and derives the scalar time-domain
// noise floor as the mean of the quietest 20% of segments (at least one).
//
// For silent input the result's NoiseFloor is exactly 0.
func EstimateNoiseFloor(samples []float64, channels, sampleRate int) NoiseFloorResult {
	segmentFrames := SegmentSpan(sampleRate)
	if channels < 1 {
		channels = 1
	}
	frameCount := len(samples) / channels

	var segmentRMS []float64
	for start := 0; start < frameCount; start += segmentFrames {
		end := start + segmentFrames
		if end > frameCount {
			end = frameCount
		}
		segment := samples[start*channels : end*channels]
		segmentRMS = append(segmentRMS, mathutil.RMS(segment))
	}

	return NoiseFloorResult{
		SegmentRMS:    segmentRMS,
		SegmentFrames: segmentFrames,
		NoiseFloor:    mathutil.MeanOfLowest(segmentRMS, lowestFraction),
	}
}

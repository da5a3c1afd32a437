package engine

import (
	"fmt"
	"math"

	"github.com/vinylcore/vinylrestore/internal/mathutil"
)

// Band edges and dilation for the multi-band transient detector (spec §4.E).
const (
	lowBandMaxHz      = 2000.0
	midBandMaxHz      = 6000.0
	transientDilation = 1
)

type band int

const (
	bandLow band = iota
	bandMid
	bandHigh
	numBands
)

// TransientResult is the output of the multi-band transient detector: a
// per-sample boolean mask and a human-readable threshold summary.
type TransientResult struct {
	Mask    []bool
	Summary string
}

// DetectTransients mixes all channels to mono, frames and FFTs the result,
// accumulates per-frame band energy, flags frames exceeding their
// segment's 95th-percentile band energy in any band, dilates the flags by
// one frame, and expands frame flags to a per-sample mask.
//
// When enabled is false every sample is non-transient and Summary is empty.
func DetectTransients(samples []float64, channels, sampleRate int, enabled bool) TransientResult {
	frameCount := len(samples) / channels
	if !enabled {
		return TransientResult{Mask: make([]bool, frameCount)}
	}

	mono := MixToMono(samples, channels)

	frameSize := TransientFrameSize(sampleRate)
	hop := HopSize(frameSize)
	win := HannWindow(frameSize)

	numFrames := FrameCountForSegment(len(mono), frameSize, hop)
	if numFrames == 0 {
		return TransientResult{Mask: make([]bool, frameCount)}
	}

	energy := make([][numBands]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * hop
		spectrum := make([]complex128, frameSize)
		for j := 0; j < frameSize; j++ {
			spectrum[j] = complex(mono[start+j]*win[j], 0)
		}
		_ = Transform(spectrum, false)

		for bin := 0; bin < frameSize; bin++ {
			freq := float64(bin) * float64(sampleRate) / float64(frameSize)
			mag := cmplxAbs(spectrum[bin])
			sq := mag * mag
			switch {
			case freq < lowBandMaxHz:
				energy[i][bandLow] += sq
			case freq < midBandMaxHz:
				energy[i][bandMid] += sq
			default:
				energy[i][bandHigh] += sq
			}
		}
	}

	segmentFrameSpan := transientSegmentSpan(sampleRate, hop)
	flagged := make([]bool, numFrames)
	var thresholds [numBands]struct{ min, sum, max float64 }
	for b := 0; b < int(numBands); b++ {
		thresholds[b].min = math.Inf(1)
		thresholds[b].max = math.Inf(-1)
	}
	segmentCount := 0

	for segStart := 0; segStart < numFrames; segStart += segmentFrameSpan {
		segEnd := segStart + segmentFrameSpan
		if segEnd > numFrames {
			segEnd = numFrames
		}
		segmentCount++

		var segThresholds [numBands]float64
		for b := band(0); b < numBands; b++ {
			values := make([]float64, segEnd-segStart)
			for i := segStart; i < segEnd; i++ {
				values[i-segStart] = energy[i][b]
			}
			p := mathutil.Percentile95(values)
			segThresholds[b] = p
			if p < thresholds[b].min {
				thresholds[b].min = p
			}
			if p > thresholds[b].max {
				thresholds[b].max = p
			}
			thresholds[b].sum += p
		}

		for i := segStart; i < segEnd; i++ {
			for b := band(0); b < numBands; b++ {
				if energy[i][b] > segThresholds[b] {
					flagged[i] = true
					break
				}
			}
		}
	}

	dilated := dilate(flagged, transientDilation)

	mask := make([]bool, frameCount)
	for i := 0; i < numFrames; i++ {
		if !dilated[i] {
			continue
		}
		start := i * hop
		end := start + hop
		if end > frameCount {
			end = frameCount
		}
		for s := start; s < end; s++ {
			mask[s] = true
		}
	}

	summary := summarize(thresholds, segmentCount, segmentFrameSpan)
	return TransientResult{Mask: mask, Summary: summary}
}

// transientSegmentSpan returns the segment span in *frames* used to group
// per-frame band energies for percentile thresholding:
// max(sampleRate*2/hop, 1).
func transientSegmentSpan(sampleRate, hop int) int {
	span := sampleRate * 2 / hop
	if span < 1 {
		return 1
	}
	return span
}

// dilate sets flag[i] when any of flag[i-radius..i+radius] was originally set.
func dilate(flag []bool, radius int) []bool {
	out := make([]bool, len(flag))
	for i := range flag {
		if flag[i] {
			out[i] = true
			continue
		}
		for d := 1; d <= radius; d++ {
			if (i-d >= 0 && flag[i-d]) || (i+d < len(flag) && flag[i+d]) {
				out[i] = true
				break
			}
		}
	}
	return out
}

type bandThresholds = [numBands]struct{ min, sum, max float64 }

func summarize(t bandThresholds, segments, span int) string {
	names := [numBands]string{"low", "mid", "high"}
	s := fmt.Sprintf("segments=%d span=%dframes", segments, span)
	for b := 0; b < int(numBands); b++ {
		avg := 0.0
		if segments > 0 {
			avg = t[b].sum / float64(segments)
		}
		s += fmt.Sprintf(" %s[min=%.4g avg=%.4g max=%.4g]", names[b], t[b].min, avg, t[b].max)
	}
	return s
}

package engine

import (
	"gonum.org/v1/gonum/dsp/window"
)

// Frame-size adaptation constants (spec §4.B).
const (
	targetFrameSeconds = 0.023 // 23ms target analysis frame

	denoiseFrameMin = 512
	denoiseFrameMax = 8192

	transientFrameMin = 512
	transientFrameMax = 4096

	// MaxSegmentSamples bounds the memory used by a single channel's
	// working segment: the denoiser processes a channel in chunks of at
	// most this many samples, maintaining smoothing state across chunk
	// boundaries. The transient detector analyses its mono mix whole.
	MaxSegmentSamples = 1_000_000
)

// HannWindow returns a length-L Hann window: w[i] = 0.5*(1-cos(2*pi*i/(L-1))).
// Generation is delegated to gonum's dsp/window package, which implements
// exactly this formula by windowing a unit sequence in place.
func HannWindow(length int) []float64 {
	if length <= 0 {
		return nil
	}
	ones := make([]float64, length)
	for i := range ones {
		ones[i] = 1
	}
	return window.Hann(ones)
}

// DenoiseFrameSize returns the adaptive analysis frame size for the
// spectral denoiser: 23ms of audio at sampleRate, rounded up to the next
// power of two, clamped to [512, 8192].
func DenoiseFrameSize(sampleRate int) int {
	return adaptiveFrameSize(sampleRate, denoiseFrameMin, denoiseFrameMax)
}

// TransientFrameSize returns the adaptive analysis frame size for the
// multi-band transient detector: same target, clamped to [512, 4096].
func TransientFrameSize(sampleRate int) int {
	return adaptiveFrameSize(sampleRate, transientFrameMin, transientFrameMax)
}

func adaptiveFrameSize(sampleRate, minSize, maxSize int) int {
	target := int(float64(sampleRate) * targetFrameSeconds)
	size := nextPowerOfTwo(target)
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}
	return size
}

// HopSize returns the STFT hop for a given frame size: 50% overlap.
func HopSize(frameSize int) int {
	return frameSize / 2
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FrameCountForSegment returns the number of overlapping analysis frames a
// segment of segmentLen samples yields at the given frame size and hop, or
// 0 if the segment is too short for even one frame.
func FrameCountForSegment(segmentLen, frameSize, hop int) int {
	if segmentLen < frameSize {
		return 0
	}
	return (segmentLen-frameSize)/hop + 1
}

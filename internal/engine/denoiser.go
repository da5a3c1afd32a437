package engine

import (
	"math"
	"sort"

	"github.com/vinylcore/vinylrestore/internal/mathutil"
)

// Spectral denoiser constants (spec §4.D).
const (
	// denoiserLowestFraction selects the quietest 20% of frames when
	// building the per-segment noise spectrum.
	denoiserLowestFraction = 0.2

	// gainSmoothingAlpha is the one-pole temporal smoothing coefficient
	// applied to the per-bin gain; it persists across frames and across
	// segments within a channel.
	gainSmoothingAlpha = 0.85

	// minGainSlope sets the floor below which a bin's magnitude is never
	// reduced further: minGain = 1 - minGainSlope*r.
	minGainSlope = 0.6

	// gentleFlooringFactor scales the reduction amount when the caller
	// requests the gentler flooring mode.
	gentleFlooringFactor = 0.6

	// overlapAddEpsilon floors the overlap-add weight sum so the near-zero
	// Hann weights at a segment's edges do not amplify the filtered signal.
	overlapAddEpsilon = 1e-3
)

// Denoise applies STFT-based magnitude subtraction with temporal gain
// smoothing to samples in place, per channel. amount is the caller's
// resolved noise-reduction amount in [0,1]; gentleFlooring selects the
// "gentle flooring" mode that scales the reduction by gentleFlooringFactor
// before use.
//
// Each channel is split into segments of at most MaxSegmentSamples; gain
// smoothing state persists across segment boundaries within a channel but
// is discarded at channel end. A segment too short to contain a single
// analysis frame is left unmodified.
func Denoise(samples []float64, channels, sampleRate int, amount float64, gentleFlooring bool) {
	if amount <= 0 {
		return
	}
	reduction := amount
	if gentleFlooring {
		reduction *= gentleFlooringFactor
	}

	frameSize := DenoiseFrameSize(sampleRate)
	hop := HopSize(frameSize)
	win := HannWindow(frameSize)

	for ch := 0; ch < channels; ch++ {
		channelSamples := ExtractChannel(samples, channels, ch)
		denoiseChannel(channelSamples, frameSize, hop, win, reduction)
		WriteChannel(samples, channels, ch, channelSamples)
	}
}

// denoiseChannel processes one channel's samples in place, segment by
// segment, carrying the per-bin gain memory across segments.
func denoiseChannel(channelSamples []float64, frameSize, hop int, win []float64, reduction float64) {
	prevGain := make([]float64, frameSize)
	minGain := 1 - minGainSlope*reduction

	n := len(channelSamples)
	for segStart := 0; segStart < n; segStart += MaxSegmentSamples {
		segEnd := segStart + MaxSegmentSamples
		if segEnd > n {
			segEnd = n
		}
		segment := channelSamples[segStart:segEnd]
		denoiseSegment(segment, frameSize, hop, win, reduction, minGain, prevGain)
	}
}

// denoiseSegment runs one segment's STFT -> spectral subtraction ->
// overlap-add pass, mutating segment in place. prevGain carries the
// one-pole gain state into and out of the call.
func denoiseSegment(segment []float64, frameSize, hop int, win []float64, reduction, minGain float64, prevGain []float64) {
	numFrames := FrameCountForSegment(len(segment), frameSize, hop)
	if numFrames == 0 {
		return
	}

	frameRMS := make([]float64, numFrames)
	spectra := make([][]complex128, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * hop
		raw := segment[start : start+frameSize]
		frameRMS[i] = mathutil.RMS(raw)

		spectrum := make([]complex128, frameSize)
		for j := 0; j < frameSize; j++ {
			spectrum[j] = complex(raw[j]*win[j], 0)
		}
		_ = Transform(spectrum, false) // frameSize is always a power of two by construction
		spectra[i] = spectrum
	}

	noise := noiseSpectrum(spectra, frameRMS, frameSize)

	outBuf := make([]float64, len(segment))
	weightSum := make([]float64, len(segment))

	for i := 0; i < numFrames; i++ {
		applyGain(spectra[i], noise, reduction, minGain, prevGain)
		_ = Transform(spectra[i], true)

		start := i * hop
		for j := 0; j < frameSize; j++ {
			outBuf[start+j] += real(spectra[i][j])
			weightSum[start+j] += win[j]
		}
	}

	for i := range segment {
		if weightSum[i] > 0 {
			segment[i] = outBuf[i] / math.Max(weightSum[i], overlapAddEpsilon)
		}
	}
}

// noiseSpectrum computes the bin-wise mean magnitude over the quietest
// 20% of frames by time-domain RMS (at least one frame).
func noiseSpectrum(spectra [][]complex128, frameRMS []float64, frameSize int) []float64 {
	numFrames := len(spectra)
	order := make([]int, numFrames)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return frameRMS[order[a]] < frameRMS[order[b]] })

	nLow := int(float64(numFrames) * denoiserLowestFraction)
	if nLow < 1 {
		nLow = 1
	}
	if nLow > numFrames {
		nLow = numFrames
	}

	noise := make([]float64, frameSize)
	for _, idx := range order[:nLow] {
		for b := 0; b < frameSize; b++ {
			noise[b] += cmplxAbs(spectra[idx][b])
		}
	}
	inv := 1 / float64(nLow)
	for b := range noise {
		noise[b] *= inv
	}
	return noise
}

// applyGain mutates spectrum in place: for each bin, derive the target
// gain from the noise floor and reduction amount, one-pole smooth it
// against prevGain, and apply it to the complex bin if positive.
func applyGain(spectrum []complex128, noise []float64, reduction, minGain float64, prevGain []float64) {
	for b := range spectrum {
		m := cmplxAbs(spectrum[b])
		if m <= 0 {
			continue
		}
		n := noise[b]
		reduced := math.Max(m-n*reduction, m*minGain)
		target := reduced / m

		gainNew := gainSmoothingAlpha*prevGain[b] + (1-gainSmoothingAlpha)*target
		prevGain[b] = gainNew

		if gainNew > 0 {
			spectrum[b] *= complex(gainNew, 0)
		}
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

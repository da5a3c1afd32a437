package engine

import (
	"math"

	"github.com/vinylcore/vinylrestore/internal/mathutil"
)

// EventType mirrors the three detection tiers; the pipeline package maps
// this to its own EventType, which the root package converts to the public
// restore.DetectedEventType, so this leaf package stays free of a
// dependency on the root package.
type EventType int

const (
	EventDecrackle EventType = iota
	EventClick
	EventPop
)

// Event is engine's internal representation of a detected impulse.
type Event struct {
	Frame    int
	Type     EventType
	Strength float64
}

// Tier parameters (spec §4.F cascade table).
const (
	decrackleGuardMultiple = 1.8

	decrackleWindow, decrackleER, decrackleHR = 2, 2.2, 1.4
	decrackleRadius, decrackleFallbackWindow  = 6, 1

	popWindow, popER, popHR      = 3, 2.5, 1.2
	popRadius, popFallbackWindow = 10, 3

	clickWindow, clickER, clickHR    = 2, 2.3, 1.4
	clickRadius, clickFallbackWindow = 6, 1

	transientClickThresholdScale = 0.75
	transientPopThresholdScale   = 0.85

	// residualClickWindow/ER/HR re-test the processed buffer with
	// slightly relaxed parameters to count surviving impulses (spec §4.G).
	residualClickWindow, residualClickER, residualClickHR = 2, 2.1, 1.2

	impulseSilentFloor   = 1e-6
	impulseSilentMinimum = 0.001
)

// RepairParams carries the resolved detection thresholds and repair
// settings the classifier needs; it is mode-independent (the caller has
// already resolved auto/manual settings into these absolute values).
type RepairParams struct {
	ClickThreshold float64
	ClickIntensity float64
	PopThreshold   float64
	PopIntensity   float64
	NoiseFloor     float64

	UseMedianRepair             bool
	UseDecrackle                bool
	UseBandLimitedInterpolation bool
	DecrackleIntensity          float64
}

// accessor returns a function reading the given channel's current sample
// value at frame+offset, clamping out-of-range frame indices to the
// buffer's endpoints. Because it reads samples on every call rather than
// snapshotting, repairs made earlier in the (frame-major, channel-major)
// iteration are visible to later accessor calls, matching the
// partially-repaired-buffer semantics required by the repair kernels.
func accessor(samples []float64, channels, ch, frame, frameCount int) func(offset int) float64 {
	return func(offset int) float64 {
		idx := frame + offset
		if idx < 0 {
			idx = 0
		} else if idx >= frameCount {
			idx = frameCount - 1
		}
		return samples[idx*channels+ch]
	}
}

// IsImpulseLike implements the shared impulse-likeness test: a sample
// whose magnitude exceeds a multiple of its neighborhood RMS and whose
// second-difference (HF emphasis) does likewise.
func IsImpulseLike(get func(offset int) float64, window int, energyRatio, hfRatio float64) bool {
	s := get(0)

	neighbors := make([]float64, 0, 2*window)
	for d := -window; d <= window; d++ {
		if d == 0 {
			continue
		}
		neighbors = append(neighbors, get(d))
	}
	localRMS := mathutil.RMS(neighbors)

	if localRMS <= impulseSilentFloor {
		return math.Abs(s) > impulseSilentMinimum
	}

	hf := math.Abs(2*s - get(-1) - get(1))
	return math.Abs(s) > localRMS*energyRatio && hf > localRMS*hfRatio
}

// neighborBlend returns the intensity-weighted blend of the center sample
// with the arithmetic mean of its same-channel neighbors.
func neighborBlend(get func(offset int) float64, window int, intensity float64) float64 {
	intensity = clamp01(intensity)
	var sum float64
	count := 0
	for d := -window; d <= window; d++ {
		if d == 0 {
			continue
		}
		sum += get(d)
		count++
	}
	mean := sum / float64(count)
	return get(0)*(1-intensity) + mean*intensity
}

// medianRepair returns the median of the center sample's same-channel
// neighbors (even neighbor count: mean of the two central values).
func medianRepair(get func(offset int) float64, window int) float64 {
	neighbors := make([]float64, 0, 2*window)
	for d := -window; d <= window; d++ {
		if d == 0 {
			continue
		}
		neighbors = append(neighbors, get(d))
	}
	return mathutil.Median(neighbors)
}

// interpBlend returns the intensity-weighted blend of the center sample
// with its band-limited (windowed-sinc) interpolated reconstruction.
func interpBlend(get func(offset int) float64, radius int, intensity float64) float64 {
	intensity = clamp01(intensity)
	interp := mathutil.LanczosInterpolate(radius, get)
	return get(0)*(1-intensity) + interp*intensity
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClassifyAndRepair iterates the buffer frame-major, channel-major,
// applying the three-tier decrackle/pop/click cascade and repairing
// accepted impulses in place. transientMask, when non-nil, relaxes the
// click and pop thresholds on transient-flagged frames. The returned
// events are in detection (frame-major, channel-major) order.
func ClassifyAndRepair(samples []float64, channels int, transientMask []bool, params RepairParams) []Event {
	frameCount := len(samples) / channels
	var events []Event

	for frame := 0; frame < frameCount; frame++ {
		transient := transientMask != nil && frame < len(transientMask) && transientMask[frame]
		clickThreshold := params.ClickThreshold
		popThreshold := params.PopThreshold
		if transient {
			clickThreshold *= transientClickThresholdScale
			popThreshold *= transientPopThresholdScale
		}

		for ch := 0; ch < channels; ch++ {
			get := accessor(samples, channels, ch, frame, frameCount)
			absS := math.Abs(get(0))

			switch {
			case params.UseDecrackle &&
				absS >= params.NoiseFloor*decrackleGuardMultiple &&
				absS < clickThreshold &&
				IsImpulseLike(get, decrackleWindow, decrackleER, decrackleHR):

				events = append(events, Event{Frame: frame, Type: EventDecrackle, Strength: absS})
				var repaired float64
				if params.UseBandLimitedInterpolation {
					repaired = interpBlend(get, decrackleRadius, params.DecrackleIntensity)
				} else {
					repaired = neighborBlend(get, decrackleFallbackWindow, params.DecrackleIntensity)
				}
				samples[frame*channels+ch] = repaired

			case absS >= popThreshold &&
				IsImpulseLike(get, popWindow, popER, popHR):

				events = append(events, Event{Frame: frame, Type: EventPop, Strength: absS})
				samples[frame*channels+ch] = repairWithCascade(get, params.UseBandLimitedInterpolation,
					params.UseMedianRepair, popRadius, popFallbackWindow, params.PopIntensity)

			case absS >= clickThreshold &&
				IsImpulseLike(get, clickWindow, clickER, clickHR):

				events = append(events, Event{Frame: frame, Type: EventClick, Strength: absS})
				samples[frame*channels+ch] = repairWithCascade(get, params.UseBandLimitedInterpolation,
					params.UseMedianRepair, clickRadius, clickFallbackWindow, params.ClickIntensity)
			}
		}
	}

	return events
}

// repairWithCascade implements the shared pop/click repair fallback chain:
// band-limited interpolation if enabled, else median if enabled, else a
// plain neighbor blend.
func repairWithCascade(get func(offset int) float64, useInterp, useMedian bool, radius, fallbackWindow int, intensity float64) float64 {
	switch {
	case useInterp:
		return interpBlend(get, radius, intensity)
	case useMedian:
		return medianRepair(get, fallbackWindow)
	default:
		return neighborBlend(get, fallbackWindow, intensity)
	}
}

// CountResidualClicks re-runs the impulse-likeness test over samples with
// relaxed click parameters, counting (not repairing) matches, per spec
// §4.G's residual-click diagnostic.
func CountResidualClicks(samples []float64, channels int, clickThreshold float64) int {
	frameCount := len(samples) / channels
	count := 0
	for frame := 0; frame < frameCount; frame++ {
		for ch := 0; ch < channels; ch++ {
			get := accessor(samples, channels, ch, frame, frameCount)
			if math.Abs(get(0)) >= clickThreshold &&
				IsImpulseLike(get, residualClickWindow, residualClickER, residualClickHR) {
				count++
			}
		}
	}
	return count
}

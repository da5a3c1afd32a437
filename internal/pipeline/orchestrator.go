package pipeline

import (
	"github.com/vinylcore/vinylrestore/internal/engine"
)

// EventType mirrors the root package's DetectedEventType without importing
// it; Run's caller converts at the boundary.
type EventType int

const (
	EventDecrackle EventType = iota
	EventClick
	EventPop
)

// Event is the orchestrator's result-side representation of one detected
// impulse.
type Event struct {
	Frame    int
	Type     EventType
	Strength float64
}

// NoiseProfile is the orchestrator's segment-RMS noise profile, sampleRate
// omitted (the caller already knows it and attaches it on conversion).
type NoiseProfile struct {
	SegmentRMS    []float64
	SegmentFrames int
}

// Diagnostics carries every numeric field the root package's
// ProcessingDiagnostics needs except ElapsedTime, which the caller times
// around the call to Run.
type Diagnostics struct {
	ClicksDetected     int
	PopsDetected       int
	DecracklesDetected int
	ResidualClicks     int

	EstimatedNoiseFloor float64
	ProcessingGainDb    float64
	DeltaRMS            float64

	TransientThresholdSummary string
}

// Result is everything Run produces for one request.
type Result struct {
	Processed    []float64
	Difference   []float64
	Events       []Event
	NoiseProfile NoiseProfile
	Diagnostics  Diagnostics
}

// Resolved is the mode-independent parameter set the orchestrator consumes;
// the root package derives it from whichever ProcessingSettings variant is
// active before calling Run.
type Resolved struct {
	ClickThreshold float64
	ClickIntensity float64
	PopThreshold   float64
	PopIntensity   float64
	NoiseFloor     float64

	NoiseReductionAmount float64

	UseMedianRepair                bool
	UseSpectralNoiseReduction      bool
	UseMultiBandTransientDetection bool
	UseDecrackle                   bool
	UseBandLimitedInterpolation    bool

	DecrackleIntensity      float64
	SpectralMaskingStrength float64
}

// Run sequences C (already done by the caller for NoiseFloor, but re-derived
// here since the orchestrator owns the measured profile) -> D -> E -> F -> G
// over a cloned copy of original, per spec §4.H. original is never mutated.
func Run(original []float64, channels, sampleRate int, r Resolved) Result {
	processed := make([]float64, len(original))
	copy(processed, original)

	noiseFloorResult := engine.EstimateNoiseFloor(processed, channels, sampleRate)

	if r.NoiseReductionAmount > 0 {
		engine.Denoise(processed, channels, sampleRate, r.NoiseReductionAmount, r.UseSpectralNoiseReduction)
	}

	transient := engine.DetectTransients(processed, channels, sampleRate, r.UseMultiBandTransientDetection)

	repairParams := engine.RepairParams{
		ClickThreshold:              r.ClickThreshold,
		ClickIntensity:              r.ClickIntensity,
		PopThreshold:                r.PopThreshold,
		PopIntensity:                r.PopIntensity,
		NoiseFloor:                  r.NoiseFloor,
		UseMedianRepair:             r.UseMedianRepair,
		UseDecrackle:                r.UseDecrackle,
		UseBandLimitedInterpolation: r.UseBandLimitedInterpolation,
		DecrackleIntensity:          r.DecrackleIntensity,
	}
	engineEvents := engine.ClassifyAndRepair(processed, channels, transient.Mask, repairParams)

	events := make([]Event, len(engineEvents))
	var clicks, pops, decrackles int
	for i, e := range engineEvents {
		var t EventType
		switch e.Type {
		case engine.EventClick:
			t = EventClick
			clicks++
		case engine.EventPop:
			t = EventPop
			pops++
		default:
			t = EventDecrackle
			decrackles++
		}
		events[i] = Event{Frame: e.Frame, Type: t, Strength: e.Strength}
	}

	diff, deltaRMS, gainDb := computeDifference(original, processed)
	residual := engine.CountResidualClicks(processed, channels, r.ClickThreshold)

	return Result{
		Processed:  processed,
		Difference: diff,
		Events:     events,
		NoiseProfile: NoiseProfile{
			SegmentRMS:    noiseFloorResult.SegmentRMS,
			SegmentFrames: noiseFloorResult.SegmentFrames,
		},
		Diagnostics: Diagnostics{
			ClicksDetected:            clicks,
			PopsDetected:              pops,
			DecracklesDetected:        decrackles,
			ResidualClicks:            residual,
			EstimatedNoiseFloor:       noiseFloorResult.NoiseFloor,
			ProcessingGainDb:          gainDb,
			DeltaRMS:                  deltaRMS,
			TransientThresholdSummary: transient.Summary,
		},
	}
}

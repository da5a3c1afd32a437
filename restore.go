package restore

import (
	"time"

	"github.com/vinylcore/vinylrestore/internal/engine"
	"github.com/vinylcore/vinylrestore/internal/pipeline"
)

// Request bundles the decoded input buffer and the processing configuration
// for a single Process call.
type Request struct {
	Input    *AudioBuffer
	Settings ProcessingSettings
}

// Process runs the full restoration pipeline (spec §4.H): it validates the
// request, clones the input into a working buffer, derives detection
// thresholds and repair intensities from the settings, runs the spectral
// denoiser and multi-band transient detector as configured, classifies and
// repairs impulses, computes diagnostics, and assembles the result.
//
// Process never mutates request.Input. On error no result is returned.
func Process(request *Request) (*ProcessingResult, error) {
	start := time.Now()

	if request == nil || request.Input == nil {
		return nil, invalidInput("input", nil, "request input must not be nil")
	}
	if err := request.Input.Validate(); err != nil {
		return nil, err
	}
	if err := request.Settings.validate(); err != nil {
		return nil, err
	}

	channels := request.Input.Channels
	sampleRate := request.Input.SampleRate

	measured := engine.EstimateNoiseFloor(request.Input.Samples, channels, sampleRate)
	r := request.Settings.resolve(measured.NoiseFloor)

	result := pipeline.Run(request.Input.Samples, channels, sampleRate, pipeline.Resolved{
		ClickThreshold:                 r.clickThreshold,
		ClickIntensity:                 r.clickIntensity,
		PopThreshold:                   r.popThreshold,
		PopIntensity:                   r.popIntensity,
		NoiseFloor:                     r.noiseFloor,
		NoiseReductionAmount:           r.noiseReductionAmount,
		UseMedianRepair:                r.useMedianRepair,
		UseSpectralNoiseReduction:      r.useSpectralNoiseReduction,
		UseMultiBandTransientDetection: r.useMultiBandTransientDetection,
		UseDecrackle:                   r.useDecrackle,
		UseBandLimitedInterpolation:    r.useBandLimitedInterpolation,
		DecrackleIntensity:             r.decrackleIntensity,
		SpectralMaskingStrength:        r.spectralMaskingStrength,
	})

	events := make([]DetectedEvent, len(result.Events))
	for i, e := range result.Events {
		events[i] = DetectedEvent{Frame: e.Frame, Type: convertEventType(e.Type), Strength: e.Strength}
	}

	return &ProcessingResult{
		Processed: &AudioBuffer{
			Samples:    result.Processed,
			Channels:   channels,
			SampleRate: sampleRate,
		},
		Difference: &AudioBuffer{
			Samples:    result.Difference,
			Channels:   channels,
			SampleRate: sampleRate,
		},
		Diagnostics: ProcessingDiagnostics{
			ElapsedTime:               time.Since(start),
			ClicksDetected:            result.Diagnostics.ClicksDetected,
			PopsDetected:              result.Diagnostics.PopsDetected,
			DecracklesDetected:        result.Diagnostics.DecracklesDetected,
			ResidualClicks:            result.Diagnostics.ResidualClicks,
			EstimatedNoiseFloor:       result.Diagnostics.EstimatedNoiseFloor,
			ProcessingGainDb:          result.Diagnostics.ProcessingGainDb,
			DeltaRMS:                  result.Diagnostics.DeltaRMS,
			TransientThresholdSummary: result.Diagnostics.TransientThresholdSummary,
		},
		Artifacts: ResultArtifacts{
			Events: events,
			NoiseProfile: NoiseProfile{
				SegmentRMS:    result.NoiseProfile.SegmentRMS,
				SegmentFrames: result.NoiseProfile.SegmentFrames,
				SampleRate:    sampleRate,
			},
		},
	}, nil
}

func convertEventType(t pipeline.EventType) DetectedEventType {
	switch t {
	case pipeline.EventClick:
		return Click
	case pipeline.EventPop:
		return Pop
	default:
		return Decrackle
	}
}

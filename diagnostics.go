package restore

import (
	"fmt"
	"time"
)

// ProcessingDiagnostics carries the numeric summary of a single Process
// call: detection counts, the estimated noise floor, and the measured
// effect of the pipeline on the signal.
//
// ProcessingGainDb compares input RMS to the RMS of the difference buffer;
// it measures how much signal was removed, not true signal-to-noise-ratio
// improvement.
type ProcessingDiagnostics struct {
	ElapsedTime time.Duration

	ClicksDetected     int
	PopsDetected       int
	DecracklesDetected int
	ResidualClicks     int

	EstimatedNoiseFloor float64
	ProcessingGainDb    float64
	DeltaRMS            float64

	TransientThresholdSummary string
}

// String renders a one-line human-readable summary, in the manner of the
// reference host's CLI report.
func (d ProcessingDiagnostics) String() string {
	return fmt.Sprintf(
		"clicks=%d pops=%d decrackles=%d residual=%d noiseFloor=%.6f gain=%.2fdB deltaRMS=%.6f elapsed=%s",
		d.ClicksDetected, d.PopsDetected, d.DecracklesDetected, d.ResidualClicks,
		d.EstimatedNoiseFloor, d.ProcessingGainDb, d.DeltaRMS, d.ElapsedTime)
}

// ResultArtifacts bundles the non-audio outputs of a Process call.
type ResultArtifacts struct {
	Events       []DetectedEvent
	NoiseProfile NoiseProfile
}

// ProcessingResult is the complete output of Process.
type ProcessingResult struct {
	Processed   *AudioBuffer
	Difference  *AudioBuffer
	Diagnostics ProcessingDiagnostics
	Artifacts   ResultArtifacts
}

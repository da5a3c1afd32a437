// Package pipeline sequences the vinyl-restoration DSP components
// (noise-floor estimation, spectral denoising, transient detection, impulse
// classification and repair, diagnostics) into the single orchestrated pass
// described by the pipeline orchestrator. It knows nothing about the root
// package's public types; Run and Resolved are the boundary the root
// package's Process converts to and from.
package pipeline

const (
	// epsilon guards the processing-gain ratio against division by zero.
	epsilon = 1e-12

	decibelScale = 20.0
)

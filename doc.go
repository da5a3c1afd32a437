// Package restore implements an offline, block-based DSP pipeline for
// restoring audio captured from vinyl records.
//
// Given a decoded multichannel PCM buffer and a processing configuration,
// Process removes impulsive defects (clicks, pops, and dense crackle) and
// steady background hiss while preserving musical transients, and returns
// the processed buffer alongside the time-domain difference, the detected
// impulse events, a segment-RMS noise profile, and numeric diagnostics.
//
// # Scope
//
// This package is the numeric core only: WAV decode/encode, waveform or
// spectrogram rendering, interactive controls, audio playback, and preset
// persistence are external collaborators (see internal/hostio and
// cmd/vinylrestore for a reference host built on top of this package).
// The core does not perform real-time streaming, sample-rate conversion,
// loudness normalization, or lossy compression.
//
// # Quick start
//
//	settings := restore.AutoSettings{
//	    ClickSensitivity:     0.3,
//	    PopSensitivity:       0.3,
//	    NoiseReductionAmount: 0.2,
//	}
//	result, err := restore.Process(&restore.Request{
//	    Input:    buffer,
//	    Settings: restore.ProcessingSettings{Auto: &settings},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Diagnostics.String())
//
// # Determinism
//
// Given identical input and settings, Process produces bit-identical
// output on the same platform. There is no shared mutable state outside a
// single request's own buffers, so a host may run many requests
// concurrently by giving each its own Request and result.
package restore

package restore

// AudioBuffer holds interleaved signed floating-point samples in [-1, 1].
// It is immutable once constructed: Process clones the input into its own
// working buffer before any mutation, so a caller's AudioBuffer is never
// modified by a call to Process.
type AudioBuffer struct {
	// Samples are interleaved: samples[frame*Channels+ch].
	Samples    []float64
	Channels   int
	SampleRate int
}

// FrameCount returns the number of multi-channel sample instants held by
// the buffer.
func (b *AudioBuffer) FrameCount() int {
	if b == nil || b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Clone returns a deep copy of the buffer, safe for independent mutation.
func (b *AudioBuffer) Clone() *AudioBuffer {
	if b == nil {
		return nil
	}
	samples := make([]float64, len(b.Samples))
	copy(samples, b.Samples)
	return &AudioBuffer{
		Samples:    samples,
		Channels:   b.Channels,
		SampleRate: b.SampleRate,
	}
}

// Validate checks the buffer's structural invariants: at least one channel,
// a positive sample rate, and a sample count that is an exact multiple of
// the channel count.
func (b *AudioBuffer) Validate() error {
	if b == nil || len(b.Samples) == 0 {
		return invalidInput("samples", nil, "input samples must not be empty")
	}
	if b.Channels <= 0 {
		return invalidInput("channels", b.Channels, "channel count must be positive")
	}
	if b.SampleRate <= 0 {
		return invalidInput("sampleRate", b.SampleRate, "sample rate must be positive")
	}
	if len(b.Samples)%b.Channels != 0 {
		return invalidInput("samples", len(b.Samples),
			"sample count must be an exact multiple of the channel count")
	}
	return nil
}

// difference computes a-b element-wise into a new AudioBuffer sharing a's
// channel and sample-rate metadata. a and b must have equal length.
func difference(a, b *AudioBuffer) *AudioBuffer {
	out := make([]float64, len(a.Samples))
	for i := range out {
		out[i] = a.Samples[i] - b.Samples[i]
	}
	return &AudioBuffer{Samples: out, Channels: a.Channels, SampleRate: a.SampleRate}
}

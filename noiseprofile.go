package restore

// NoiseProfile is a segment-RMS description of the input's background
// noise level, computed by the segment-RMS / noise-floor estimator
// (component C).
type NoiseProfile struct {
	// SegmentRMS holds one non-negative RMS value per non-overlapping
	// segment, in segment order.
	SegmentRMS []float64

	// SegmentFrames is the span of each segment, in frames:
	// max(SampleRate*2, 1).
	SegmentFrames int

	SampleRate int
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateNoiseFloor_SilentInputIsZero(t *testing.T) {
	samples := make([]float64, 4410)
	r := EstimateNoiseFloor(samples, 1, 44100)
	assert.Equal(t, 0.0, r.NoiseFloor)
}

func TestEstimateNoiseFloor_SegmentSpan(t *testing.T) {
	assert.Equal(t, 88200, SegmentSpan(44100))
	assert.Equal(t, 1, SegmentSpan(0))
}

func TestEstimateNoiseFloor_ConstantAmplitudeMatchesRMS(t *testing.T) {
	samples := make([]float64, 20000)
	for i := range samples {
		samples[i] = 0.1
	}
	r := EstimateNoiseFloor(samples, 1, 44100)
	assert.InDelta(t, 0.1, r.NoiseFloor, 1e-9)
}

func TestEstimateNoiseFloor_QuietSegmentsDominate(t *testing.T) {
	segFrames := SegmentSpan(1000) // small sample rate to keep the test fast
	samples := make([]float64, segFrames*10)
	for seg := 0; seg < 10; seg++ {
		amp := 0.5
		if seg < 2 {
			amp = 0.01
		}
		for i := seg * segFrames; i < (seg+1)*segFrames; i++ {
			samples[i] = amp
		}
	}
	r := EstimateNoiseFloor(samples, 1, 1000)
	assert.InDelta(t, 0.01, r.NoiseFloor, 1e-9)
	assert.Len(t, r.SegmentRMS, 10)
}

package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silenceResolved() Resolved {
	return Resolved{
		ClickThreshold: math.MaxFloat64,
		PopThreshold:   math.MaxFloat64,
	}
}

func TestRun_SilentInputAllZeroCounts(t *testing.T) {
	samples := make([]float64, 10000)
	result := Run(samples, 1, 44100, silenceResolved())

	assert.Equal(t, 0, result.Diagnostics.ClicksDetected)
	assert.Equal(t, 0, result.Diagnostics.PopsDetected)
	assert.Equal(t, 0, result.Diagnostics.DecracklesDetected)
	assert.Equal(t, 0.0, result.Diagnostics.EstimatedNoiseFloor)
	assert.Equal(t, 0.0, result.Diagnostics.DeltaRMS)
	assert.Equal(t, 0.0, result.Diagnostics.ProcessingGainDb)
}

func TestRun_EverythingDisabledIsBitExact(t *testing.T) {
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = 0.3 * math.Sin(0.05*float64(i))
	}
	r := silenceResolved()
	result := Run(samples, 1, 44100, r)

	require.Len(t, result.Processed, len(samples))
	assert.Equal(t, samples, result.Processed)
	assert.Equal(t, 0, result.Diagnostics.ClicksDetected)
	assert.Equal(t, 0, result.Diagnostics.PopsDetected)
}

func TestRun_ImpulsesAreDetectedAndCounted(t *testing.T) {
	sampleRate := 44100
	n := 10000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.01 * math.Sin(2*math.Pi*441*float64(i)/float64(sampleRate))
	}
	samples[1000] = 0.8
	samples[3000] = -0.7
	samples[5000] = 0.9

	result := Run(samples, 1, sampleRate, Resolved{
		ClickThreshold:                 0.01 * (1 + 8*0.3),
		ClickIntensity:                 0.79,
		PopThreshold:                   0.01 * (1 + 12*0.3),
		PopIntensity:                   0.86,
		NoiseFloor:                     0.01,
		UseMultiBandTransientDetection: true,
	})

	assert.GreaterOrEqual(t, result.Diagnostics.ClicksDetected+result.Diagnostics.PopsDetected, 3)
	assert.Greater(t, result.Diagnostics.ProcessingGainDb, 0.0)
}

func TestRun_PreservesLengthChannelsShape(t *testing.T) {
	n := 5000 * 2
	samples := make([]float64, n)
	for i := 0; i < n/2; i++ {
		samples[i*2] = 0.01 * math.Sin(float64(i)*0.02)
		samples[i*2+1] = 0.01 * math.Cos(float64(i)*0.02)
	}
	samples[1000*2] = 0.8
	samples[1000*2+1] = 0.7

	result := Run(samples, 2, 44100, Resolved{
		ClickThreshold:                 0.01 * (1 + 8*0.3),
		ClickIntensity:                 0.79,
		PopThreshold:                   0.01 * (1 + 12*0.3),
		PopIntensity:                   0.86,
		NoiseFloor:                     0.01,
		UseMultiBandTransientDetection: true,
	})

	assert.Len(t, result.Processed, n)
	assert.Greater(t, result.Diagnostics.ClicksDetected+result.Diagnostics.PopsDetected, 0)
}

func TestRun_DifferenceMatchesInputMinusProcessed(t *testing.T) {
	samples := []float64{0.1, 0.2, 0.9, 0.1, 0.2}
	original := append([]float64(nil), samples...)
	result := Run(samples, 1, 44100, Resolved{
		ClickThreshold: 0.05,
		PopThreshold:   0.5,
		NoiseFloor:     0.01,
	})
	for i := range original {
		assert.InDelta(t, original[i]-result.Processed[i], result.Difference[i], 1e-12)
	}
}

func TestRun_ResidualClicksBoundedWhenDenoiseDisabled(t *testing.T) {
	samples := make([]float64, 4000)
	for i := range samples {
		samples[i] = 0.01 * math.Sin(0.03*float64(i))
	}
	samples[1000] = 0.9
	samples[2000] = -0.85

	result := Run(samples, 1, 44100, Resolved{
		ClickThreshold: 0.05,
		ClickIntensity: 0.8,
		PopThreshold:   0.2,
		PopIntensity:   0.9,
		NoiseFloor:     0.01,
	})

	assert.LessOrEqual(t, result.Diagnostics.ResidualClicks,
		result.Diagnostics.ClicksDetected+result.Diagnostics.PopsDetected)
}

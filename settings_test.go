package restore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessingSettings_Validate(t *testing.T) {
	t.Run("neither set is invalid", func(t *testing.T) {
		s := ProcessingSettings{}
		require.Error(t, s.validate())
	})
	t.Run("both set is invalid", func(t *testing.T) {
		s := ProcessingSettings{Auto: &AutoSettings{}, Manual: &ManualSettings{}}
		require.Error(t, s.validate())
	})
	t.Run("exactly one is valid", func(t *testing.T) {
		s := ProcessingSettings{Auto: &AutoSettings{}}
		require.NoError(t, s.validate())
	})
}

func TestProcessingSettings_Resolve_AutoDerivesFromNoiseFloor(t *testing.T) {
	s := ProcessingSettings{Auto: &AutoSettings{
		ClickSensitivity: 0.3,
		PopSensitivity:   0.3,
	}}
	r := s.resolve(0.01)
	assert.InDelta(t, 0.01*(1+8*0.3), r.clickThreshold, 1e-12)
	assert.InDelta(t, 0.01*(1+12*0.3), r.popThreshold, 1e-12)
	assert.InDelta(t, 0.7+0.3*0.3, r.clickIntensity, 1e-12)
	assert.InDelta(t, 0.8+0.2*0.3, r.popIntensity, 1e-12)
	assert.Equal(t, 0.01, r.noiseFloor)
}

func TestProcessingSettings_Resolve_ManualIgnoresMeasuredFloor(t *testing.T) {
	s := ProcessingSettings{Manual: &ManualSettings{
		ClickThreshold: 0.2,
		PopThreshold:   0.3,
		NoiseFloor:     0.05,
	}}
	r := s.resolve(0.9)
	assert.Equal(t, 0.2, r.clickThreshold)
	assert.Equal(t, 0.3, r.popThreshold)
	assert.Equal(t, 0.05, r.noiseFloor)
}

func TestProcessingSettings_Resolve_ClickThresholdMonotonicInSensitivity(t *testing.T) {
	prevThreshold := -1.0
	for _, sens := range []float64{0, 0.2, 0.5, 0.8, 1.0} {
		s := ProcessingSettings{Auto: &AutoSettings{ClickSensitivity: sens}}
		r := s.resolve(0.02)
		assert.Greater(t, r.clickThreshold, prevThreshold)
		prevThreshold = r.clickThreshold
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-5))
	assert.Equal(t, 1.0, clamp01(5))
	assert.Equal(t, 0.5, clamp01(0.5))
}

func TestProcessingSettings_Resolve_ClampsOutOfRangeIntensities(t *testing.T) {
	s := ProcessingSettings{Manual: &ManualSettings{
		ClickIntensity:     2.0,
		PopIntensity:       -1.0,
		DecrackleIntensity: 5.0,
	}}
	r := s.resolve(0)
	assert.Equal(t, 1.0, r.clickIntensity)
	assert.Equal(t, 0.0, r.popIntensity)
	assert.Equal(t, 1.0, r.decrackleIntensity)
}

package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanczosInterpolate_SmoothSignalNearlyReproduces(t *testing.T) {
	samples := make([]float64, 41)
	for i := range samples {
		samples[i] = float64(i) * 0.01
	}
	fetch := func(offset int) float64 {
		idx := 20 + offset
		if idx < 0 {
			idx = 0
		}
		if idx >= len(samples) {
			idx = len(samples) - 1
		}
		return samples[idx]
	}
	got := LanczosInterpolate(6, fetch)
	assert.InDelta(t, samples[20], got, 0.02)
}

func TestLanczosInterpolate_TinyRadiusStaysFinite(t *testing.T) {
	// A fetch returning a constant for every offset still exercises the
	// normal weighted path; this checks the kernel never panics or divides
	// by exactly zero for a tiny radius.
	fetch := func(offset int) float64 { return 1.0 }
	got := LanczosInterpolate(1, fetch)
	assert.False(t, got != got, "result must not be NaN")
}

func TestSinc_ZeroIsOne(t *testing.T) {
	assert.Equal(t, 1.0, sinc(0))
}

func TestTaperWindow_EdgesNearZero(t *testing.T) {
	assert.InDelta(t, 0.08, taperWindow(6, 6), 1e-9)
	assert.InDelta(t, 1.0, taperWindow(0, 6), 1e-9)
}

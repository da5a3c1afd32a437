package pipeline

import (
	"math"

	"github.com/vinylcore/vinylrestore/internal/mathutil"
)

// computeDifference implements spec §4.G: the parallel difference buffer,
// the RMS delta between processed and original, and the processing gain in
// dB (RMS_original / RMS_difference, not a true SNR measure).
func computeDifference(original, processed []float64) (diff []float64, deltaRMS, gainDb float64) {
	diff = make([]float64, len(original))
	for i := range diff {
		diff[i] = original[i] - processed[i]
	}

	rmsOriginal := mathutil.RMS(original)
	rmsProcessed := mathutil.RMS(processed)
	rmsDiff := mathutil.RMS(diff)

	deltaRMS = rmsProcessed - rmsOriginal

	if rmsDiff == 0 {
		gainDb = 0
		return diff, deltaRMS, gainDb
	}
	gainDb = decibelScale * math.Log10((rmsOriginal+epsilon)/(rmsDiff+epsilon))
	return diff, deltaRMS, gainDb
}

package hostio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restore "github.com/vinylcore/vinylrestore"
)

func TestEncodeDecodeWAV_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tone.wav")

	n := 4410
	samples := make([]float64, n*2)
	for i := 0; i < n; i++ {
		samples[i*2] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
		samples[i*2+1] = -0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	original := &restore.AudioBuffer{Samples: samples, Channels: 2, SampleRate: 44100}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, EncodeWAV(f, original))
	require.NoError(t, f.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	decoded, err := DecodeWAV(r)
	require.NoError(t, err)

	assert.Equal(t, original.Channels, decoded.Channels)
	assert.Equal(t, original.SampleRate, decoded.SampleRate)
	require.Len(t, decoded.Samples, len(original.Samples))
	for i := range original.Samples {
		assert.InDelta(t, original.Samples[i], decoded.Samples[i], 1e-4)
	}
}

func TestDecodeWAV_RejectsNonWAV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = DecodeWAV(f)
	require.Error(t, err)
}

func TestFullScale_DefaultsTo16BitWhenUnset(t *testing.T) {
	assert.Equal(t, fullScale(16), fullScale(0))
}

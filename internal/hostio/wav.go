// Package hostio implements the external collaborators spec §6 names as out
// of scope for the numeric core: WAV decode/encode and detected-event
// export. Nothing here is imported by the root restore package; it is a
// reference host consumed by cmd/vinylrestore.
package hostio

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vinylcore/vinylrestore"
)

// MaxSampleCount is the implementation-configured overflow limit spec §6
// requires the decoder to enforce (reference: 5e8 floats).
const MaxSampleCount = 500_000_000

// wavPCMFormat is the WAV header's audio format code for linear PCM.
const wavPCMFormat = 1

// ErrSampleCountExceeded is returned by DecodeWAV when a file's total
// sample count exceeds MaxSampleCount.
var ErrSampleCountExceeded = fmt.Errorf("hostio: sample count exceeds limit of %d", MaxSampleCount)

// DecodeWAV reads a WAV file from r into a restore.AudioBuffer, normalizing
// integer PCM samples to [-1, 1] using the source bit depth.
func DecodeWAV(r io.ReadSeeker) (*restore.AudioBuffer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("hostio: not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("hostio: reading PCM buffer: %w", err)
	}

	if len(buf.Data) > MaxSampleCount {
		return nil, ErrSampleCountExceeded
	}

	scale := fullScale(buf.SourceBitDepth)
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return &restore.AudioBuffer{
		Samples:    samples,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// EncodeWAV writes buf to w as a 16-bit PCM WAV file. Samples are scaled
// from [-1, 1] back into int16 range; the core does not clip, so hosts
// wishing to prevent wraparound should clip before calling EncodeWAV.
func EncodeWAV(w io.WriteSeeker, buf *restore.AudioBuffer) error {
	const bitDepth = 16
	encoder := wav.NewEncoder(w, buf.SampleRate, bitDepth, buf.Channels, wavPCMFormat)

	scale := fullScale(bitDepth)
	data := make([]int, len(buf.Samples))
	for i, v := range buf.Samples {
		data[i] = int(math.Round(v * scale))
	}

	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: buf.Channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(intBuf); err != nil {
		return fmt.Errorf("hostio: writing PCM buffer: %w", err)
	}
	return encoder.Close()
}

// fullScale returns the full-scale magnitude for a given PCM bit depth, used
// to convert between [-1, 1] floats and the integer sample domain.
func fullScale(bitDepth int) float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return float64(int64(1) << (bitDepth - 1))
}

package hostio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restore "github.com/vinylcore/vinylrestore"
)

func sampleEvents() []restore.DetectedEvent {
	return []restore.DetectedEvent{
		{Frame: 0, Type: restore.Click, Strength: 0.8},
		{Frame: 44100, Type: restore.Pop, Strength: 0.6},
	}
}

func TestWriteEventsJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	meta := EventMetadata{SampleRate: 44100, Channels: 1, FrameCount: 88200}
	require.NoError(t, WriteEventsJSON(&buf, sampleEvents(), meta))

	var doc eventExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, meta, doc.Metadata)
	require.Len(t, doc.Events, 2)
	assert.Equal(t, 0, doc.Events[0].Index)
	assert.Equal(t, 44100, doc.Events[1].Frame)
	assert.InDelta(t, 1.0, doc.Events[1].TimeSeconds, 1e-9)
	assert.Equal(t, "Click", doc.Events[0].Type)
	assert.Equal(t, "Pop", doc.Events[1].Type)
}

func TestWriteEventsCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	meta := EventMetadata{SampleRate: 44100, Channels: 2, FrameCount: 88200}
	require.NoError(t, WriteEventsCSV(&buf, sampleEvents(), meta))

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Index", "Timecode", "Seconds", "Frame", "Type", "Strength", "SampleRate", "Channels"}, rows[0])
	assert.Equal(t, "00:00:00.000", rows[1][1])
	assert.Equal(t, "00:00:01.000", rows[2][1])
	assert.Equal(t, "44100", rows[1][6])
	assert.Equal(t, "2", rows[1][7])
}

func TestFrameSeconds_ZeroSampleRateIsZero(t *testing.T) {
	assert.Equal(t, 0.0, frameSeconds(1000, 0))
}

func TestFormatTimecode_MinutesSecondsMillis(t *testing.T) {
	assert.Equal(t, "00:01:05.500", formatTimecode(65.5))
}

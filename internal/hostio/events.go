package hostio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vinylcore/vinylrestore"
)

// EventMetadata describes the source buffer an exported event list refers
// to.
type EventMetadata struct {
	SampleRate int `json:"sampleRate"`
	Channels   int `json:"channels"`
	FrameCount int `json:"frameCount"`
}

// exportedEvent is one row of the event export shape, carrying both the
// frame index and its derived wall-clock position.
type exportedEvent struct {
	Index       int     `json:"index"`
	Frame       int     `json:"frame"`
	TimeSeconds float64 `json:"timeSeconds"`
	Type        string  `json:"type"`
	Strength    float64 `json:"strength"`
}

type eventExport struct {
	Metadata EventMetadata   `json:"metadata"`
	Events   []exportedEvent `json:"events"`
}

func toExported(events []restore.DetectedEvent, sampleRate int) []exportedEvent {
	out := make([]exportedEvent, len(events))
	for i, e := range events {
		out[i] = exportedEvent{
			Index:       i,
			Frame:       e.Frame,
			TimeSeconds: frameSeconds(e.Frame, sampleRate),
			Type:        e.Type.String(),
			Strength:    e.Strength,
		}
	}
	return out
}

func frameSeconds(frame, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(frame) / float64(sampleRate)
}

// WriteEventsJSON writes events as the metadata-plus-events JSON document.
func WriteEventsJSON(w io.Writer, events []restore.DetectedEvent, meta EventMetadata) error {
	doc := eventExport{Metadata: meta, Events: toExported(events, meta.SampleRate)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteEventsCSV writes events as a CSV with header
// Index,Timecode,Seconds,Frame,Type,Strength,SampleRate,Channels.
func WriteEventsCSV(w io.Writer, events []restore.DetectedEvent, meta EventMetadata) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Index", "Timecode", "Seconds", "Frame", "Type", "Strength", "SampleRate", "Channels"}); err != nil {
		return err
	}
	for i, e := range events {
		seconds := frameSeconds(e.Frame, meta.SampleRate)
		row := []string{
			fmt.Sprintf("%d", i),
			formatTimecode(seconds),
			fmt.Sprintf("%.6f", seconds),
			fmt.Sprintf("%d", e.Frame),
			e.Type.String(),
			fmt.Sprintf("%.6f", e.Strength),
			fmt.Sprintf("%d", meta.SampleRate),
			fmt.Sprintf("%d", meta.Channels),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatTimecode renders seconds as HH:MM:SS.mmm.
func formatTimecode(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	secs := d / time.Second
	d -= secs * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

package restore

// DetectedEventType enumerates the three severity tiers of detected
// impulse, distinguished by threshold bands and repair aggressiveness.
type DetectedEventType int

const (
	Decrackle DetectedEventType = iota
	Click
	Pop
)

// String renders the event type for diagnostics and event export.
func (t DetectedEventType) String() string {
	switch t {
	case Decrackle:
		return "Decrackle"
	case Click:
		return "Click"
	case Pop:
		return "Pop"
	default:
		return "Unknown"
	}
}

// DetectedEvent records one accepted impulse-like sample.
type DetectedEvent struct {
	Frame    int
	Type     DetectedEventType
	Strength float64
}

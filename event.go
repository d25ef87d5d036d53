package miditrack

import "encoding/json"

type (
	// Header converts between ticks and seconds. It owns the tempo map of a
	// file and is shared by all the tracks and events of that file; events
	// only refer to it and never copy its data. Both conversions should be
	// pure functions of the current tempo map, so changing the map changes
	// the time of every event referring to the Header.
	Header interface {
		TicksToSeconds(ticks int) float64
		SecondsToTicks(seconds float64) int
	}

	// TimedEvent is the part shared by all events: a position in ticks and a
	// reference to the Header used to convert it to seconds. Ticks is the
	// source of truth; the time in seconds is never stored.
	TimedEvent struct {
		Ticks  int
		header Header
	}

	// ProgramChange selects the instrument (patch) of the track.
	ProgramChange struct {
		TimedEvent
		Number int // program number, 0-127
	}

	// ControlChange sets the value of a controller, e.g. volume or pan.
	ControlChange struct {
		TimedEvent
		Number int     // controller number, 0-126
		Value  float64 // normalized value, 0.0-1.0
	}

	// ProgramChangeData is the serialized form of a ProgramChange.
	ProgramChangeData struct {
		Number int     `json:"number" yaml:"number"`
		Time   float64 `json:"time" yaml:"time"`
		Ticks  int     `json:"ticks" yaml:"ticks"`
	}

	// ControlChangeData is the serialized form of a ControlChange.
	ControlChangeData struct {
		Number int     `json:"number" yaml:"number"`
		Value  float64 `json:"value" yaml:"value"`
		Time   float64 `json:"time" yaml:"time"`
		Ticks  int     `json:"ticks" yaml:"ticks"`
	}

	// Position is a point in time given either in ticks or in seconds.
	// Positions in seconds are converted to ticks using the Header of the
	// track they are added to.
	Position struct {
		ticks     int
		seconds   float64
		inSeconds bool
	}
)

// Ticks returns a Position in ticks.
func Ticks(ticks int) Position { return Position{ticks: ticks} }

// Seconds returns a Position in seconds. It can only be added to a track
// that has a Header, see NewTrack.
func Seconds(seconds float64) Position { return Position{seconds: seconds, inSeconds: true} }

func (p Position) resolve(h Header) int {
	if p.inSeconds {
		return h.SecondsToTicks(p.seconds)
	}
	return p.ticks
}

// Time returns the time of the event in seconds, computed from Ticks with the
// current state of the Header.
func (e *TimedEvent) Time() float64 {
	return e.header.TicksToSeconds(e.Ticks)
}

// SetTime moves the event to the tick closest to the given time in seconds,
// as decided by the Header.
func (e *TimedEvent) SetTime(seconds float64) {
	e.Ticks = e.header.SecondsToTicks(seconds)
}

// Header returns the Header the event uses for time conversion.
func (e *TimedEvent) Header() Header {
	return e.header
}

func ticksOf[E interface{ ticks() int }](e E) int { return e.ticks() }

func (e *TimedEvent) ticks() int { return e.Ticks }

// NewProgramChange returns a program change at the given tick. The number is
// not validated.
func NewProgramChange(number, ticks int, header Header) *ProgramChange {
	return &ProgramChange{TimedEvent: TimedEvent{Ticks: ticks, header: header}, Number: number}
}

// Validate checks that the program number is within 0-127.
func (p *ProgramChange) Validate() error {
	return checkRange("program number", float64(p.Number), 0, 127, p.Ticks)
}

// Data returns the serialized form of the program change.
func (p *ProgramChange) Data() ProgramChangeData {
	return ProgramChangeData{Number: p.Number, Time: p.Time(), Ticks: p.Ticks}
}

// MarshalJSON marshals the program change as ProgramChangeData.
func (p *ProgramChange) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Data())
}

// MarshalYAML marshals the program change as ProgramChangeData.
func (p *ProgramChange) MarshalYAML() (interface{}, error) {
	return p.Data(), nil
}

// NewControlChange returns a control change at the given tick. Neither the
// controller number nor the value is validated.
func NewControlChange(number, ticks int, value float64, header Header) *ControlChange {
	return &ControlChange{TimedEvent: TimedEvent{Ticks: ticks, header: header}, Number: number, Value: value}
}

// Validate checks that the controller number is within 0-126 and the value
// within 0.0-1.0.
func (c *ControlChange) Validate() error {
	if err := checkRange("controller number", float64(c.Number), 0, MaxController, c.Ticks); err != nil {
		return err
	}
	return checkRange("value", c.Value, 0, 1, c.Ticks)
}

// Data returns the serialized form of the control change.
func (c *ControlChange) Data() ControlChangeData {
	return ControlChangeData{Number: c.Number, Value: c.Value, Time: c.Time(), Ticks: c.Ticks}
}

// MarshalJSON marshals the control change as ControlChangeData.
func (c *ControlChange) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Data())
}

// MarshalYAML marshals the control change as ControlChangeData.
func (c *ControlChange) MarshalYAML() (interface{}, error) {
	return c.Data(), nil
}

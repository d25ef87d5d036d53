package miditrack

// Kinds of raw events understood by NewTrack. Raw events of other kinds are
// ignored.
const (
	TrackNameEvent     = "trackName"
	ControllerEvent    = "controller"
	ProgramChangeEvent = "programChange"
)

// RawEvent is a decoded event as produced by a file decoder, before it is
// sorted into a Track. Only the fields relevant to Type are set.
type RawEvent struct {
	Type           string `json:"type" yaml:"type"`
	AbsoluteTime   int    `json:"absoluteTime" yaml:"absoluteTime"`
	ControllerType int    `json:"controllerType,omitempty" yaml:"controllerType,omitempty"`
	Value          int    `json:"value,omitempty" yaml:"value,omitempty"` // raw controller value, 0-127
	ProgramNumber  int    `json:"programNumber,omitempty" yaml:"programNumber,omitempty"`
	Text           string `json:"text,omitempty" yaml:"text,omitempty"`
	Channel        int    `json:"channel,omitempty" yaml:"channel,omitempty"`
}

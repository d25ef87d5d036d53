package miditrack

import (
	"encoding/json"
	"errors"
	"sort"

	"gopkg.in/yaml.v3"
)

type (
	// Track is the collection of program changes and control changes of one
	// track of a file. Program changes are kept in one slice, control changes
	// in one slice per controller number; every slice is ordered by ticks, and
	// events at the same tick stay in the order they were added.
	Track struct {
		// Name is the text of the first track name event of the track, or "".
		Name string

		// Channel is the MIDI channel of the track. It is not derived from the
		// events; whoever constructs the track sets it.
		Channel int

		ProgramChanges []*ProgramChange

		// ControlChanges maps a controller number to the control changes of
		// that controller. Controllers without events have no entry.
		ControlChanges map[int][]*ControlChange

		header Header
	}

	// TrackData is the serialized form of a Track. ControlChanges only has
	// entries for controller numbers 0-126 that have at least one event.
	TrackData struct {
		Name           string                      `json:"name" yaml:"name"`
		Channel        int                         `json:"channel" yaml:"channel"`
		ControlChanges map[int][]ControlChangeData `json:"controlChanges" yaml:"controlChanges"`
		ProgramChanges []ProgramChangeData         `json:"programChanges" yaml:"programChanges"`
	}
)

// ErrNoHeader is returned when marshaling or unmarshaling a Track that was not
// created with NewTrack.
var ErrNoHeader = errors.New("track has no header")

// NewTrack creates a track from raw decoded events, which do not need to be
// sorted. Controller values are divided by 127. raw can be nil to create an
// empty track.
func NewTrack(raw []RawEvent, header Header) *Track {
	t := &Track{ControlChanges: map[int][]*ControlChange{}, header: header}
	for _, e := range raw {
		if e.Type == TrackNameEvent {
			t.Name = e.Text
			break
		}
	}
	for _, e := range raw {
		if e.Type == ControllerEvent {
			t.AddCC(e.ControllerType, float64(e.Value)/127, Ticks(e.AbsoluteTime))
		}
	}
	for _, e := range raw {
		if e.Type == ProgramChangeEvent {
			t.AddPC(e.ProgramNumber, Ticks(e.AbsoluteTime))
		}
	}
	return t
}

// Header returns the Header shared by the events of the track.
func (t *Track) Header() Header {
	return t.header
}

// AddCC adds a control change for the given controller, keeping the
// controller's events ordered by ticks. Any controller number is accepted.
// Positions in seconds need the Header, so they can only be used on a track
// created with NewTrack.
// Returns the track, so calls can be chained.
func (t *Track) AddCC(number int, value float64, at Position) *Track {
	cc := NewControlChange(number, at.resolve(t.header), value, t.header)
	if t.ControlChanges == nil {
		t.ControlChanges = map[int][]*ControlChange{}
	}
	t.ControlChanges[number] = Insert(t.ControlChanges[number], cc, ticksOf[*ControlChange])
	return t
}

// AddPC adds a program change, keeping the program changes ordered by ticks.
// Returns the track, so calls can be chained.
func (t *Track) AddPC(number int, at Position) *Track {
	pc := NewProgramChange(number, at.resolve(t.header), t.header)
	t.ProgramChanges = Insert(t.ProgramChanges, pc, ticksOf[*ProgramChange])
	return t
}

// Controllers returns the controller numbers that have at least one control
// change, in ascending order.
func (t *Track) Controllers() []int {
	ret := make([]int, 0, len(t.ControlChanges))
	for number, ccs := range t.ControlChanges {
		if len(ccs) > 0 {
			ret = append(ret, number)
		}
	}
	sort.Ints(ret)
	return ret
}

// ControlChangesFor returns the control changes of a controller, ordered by
// ticks, or nil if the controller has no events.
func (t *Track) ControlChangesFor(number int) []*ControlChange {
	if ccs := t.ControlChanges[number]; len(ccs) > 0 {
		return ccs
	}
	return nil
}

// ControlValueAt returns the value of a controller in effect at the given
// tick, i.e. the value of its last control change at or before the tick. ok
// is false if the controller has no event at or before the tick.
func (t *Track) ControlValueAt(number, ticks int) (value float64, ok bool) {
	ccs := t.ControlChanges[number]
	i := sort.Search(len(ccs), func(i int) bool { return ccs[i].Ticks > ticks })
	if i == 0 {
		return 0, false
	}
	return ccs[i-1].Value, true
}

// ProgramAt returns the program in effect at the given tick.
func (t *Track) ProgramAt(ticks int) (number int, ok bool) {
	pcs := t.ProgramChanges
	i := sort.Search(len(pcs), func(i int) bool { return pcs[i].Ticks > ticks })
	if i == 0 {
		return 0, false
	}
	return pcs[i-1].Number, true
}

// Duration returns the tick of the last event of the track, or 0 for an empty
// track.
func (t *Track) Duration() int {
	ret := 0
	if n := len(t.ProgramChanges); n > 0 {
		ret = t.ProgramChanges[n-1].Ticks
	}
	for _, ccs := range t.ControlChanges {
		if n := len(ccs); n > 0 && ccs[n-1].Ticks > ret {
			ret = ccs[n-1].Ticks
		}
	}
	return ret
}

// Validate checks every event of the track and returns all the range errors
// joined, or nil if all the events are valid.
func (t *Track) Validate() error {
	var errs []error
	for _, pc := range t.ProgramChanges {
		if err := pc.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, number := range t.Controllers() {
		for _, cc := range t.ControlChanges[number] {
			if err := cc.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Copy makes a deep copy of a Track. The copy shares the Header.
func (t *Track) Copy() *Track {
	ret := &Track{
		Name:           t.Name,
		Channel:        t.Channel,
		ProgramChanges: make([]*ProgramChange, len(t.ProgramChanges)),
		ControlChanges: make(map[int][]*ControlChange, len(t.ControlChanges)),
		header:         t.header,
	}
	for i, pc := range t.ProgramChanges {
		c := *pc
		ret.ProgramChanges[i] = &c
	}
	for number, ccs := range t.ControlChanges {
		n := make([]*ControlChange, len(ccs))
		for i, cc := range ccs {
			c := *cc
			n[i] = &c
		}
		ret.ControlChanges[number] = n
	}
	return ret
}

// ToJSON returns the serialized form of the track. Control changes of
// controller numbers above 126 are not included. The times of the events are
// computed with the Header, so a track with events must have been created
// with NewTrack.
func (t *Track) ToJSON() TrackData {
	ret := TrackData{
		Name:           t.Name,
		Channel:        t.Channel,
		ControlChanges: map[int][]ControlChangeData{},
		ProgramChanges: make([]ProgramChangeData, len(t.ProgramChanges)),
	}
	for number := 0; number <= MaxController; number++ {
		ccs := t.ControlChanges[number]
		if len(ccs) == 0 {
			continue
		}
		data := make([]ControlChangeData, len(ccs))
		for i, cc := range ccs {
			data[i] = cc.Data()
		}
		ret.ControlChanges[number] = data
	}
	for i, pc := range t.ProgramChanges {
		ret.ProgramChanges[i] = pc.Data()
	}
	return ret
}

// FromJSON replaces the contents of the track with the serialized track: the
// name and channel are overwritten, existing events are discarded and the
// serialized control changes and program changes are added again. Serialized
// times are ignored; ticks are the source of truth.
func (t *Track) FromJSON(data TrackData) *Track {
	t.ProgramChanges = nil
	t.ControlChanges = map[int][]*ControlChange{}
	return t.Merge(data)
}

// Merge is like FromJSON, but keeps the existing events of the track: the
// serialized events are added to them. Name and channel are still
// overwritten.
func (t *Track) Merge(data TrackData) *Track {
	t.Name = data.Name
	t.Channel = data.Channel
	numbers := make([]int, 0, len(data.ControlChanges))
	for number := range data.ControlChanges {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	for _, number := range numbers {
		for _, cc := range data.ControlChanges[number] {
			t.AddCC(cc.Number, cc.Value, Ticks(cc.Ticks))
		}
	}
	for _, pc := range data.ProgramChanges {
		t.AddPC(pc.Number, Ticks(pc.Ticks))
	}
	return t
}

// MarshalJSON returns ErrNoHeader for a track that was not created with
// NewTrack.
func (t *Track) MarshalJSON() ([]byte, error) {
	if t.header == nil {
		return nil, ErrNoHeader
	}
	return json.Marshal(t.ToJSON())
}

// UnmarshalJSON replaces the contents of the track, see FromJSON. The track
// must have been created with NewTrack, so that it has a Header.
func (t *Track) UnmarshalJSON(b []byte) error {
	if t.header == nil {
		return ErrNoHeader
	}
	var data TrackData
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	t.FromJSON(data)
	return nil
}

// MarshalYAML is the yaml counterpart of MarshalJSON.
func (t *Track) MarshalYAML() (interface{}, error) {
	if t.header == nil {
		return nil, ErrNoHeader
	}
	return t.ToJSON(), nil
}

// UnmarshalYAML is the yaml counterpart of UnmarshalJSON.
func (t *Track) UnmarshalYAML(node *yaml.Node) error {
	if t.header == nil {
		return ErrNoHeader
	}
	var data TrackData
	if err := node.Decode(&data); err != nil {
		return err
	}
	t.FromJSON(data)
	return nil
}

// Package tempo implements a tempo map: a list of tempo changes on the tick
// axis of a file, used to convert between ticks and seconds.
package tempo

import (
	"fmt"
	"math"
	"sync"

	"github.com/vsariola/miditrack"
)

// DefaultBPM is the tempo in effect before the first tempo change, as in
// Standard MIDI Files.
const DefaultBPM = 120

type (
	// Change sets the tempo from Ticks onwards.
	Change struct {
		Ticks int     `json:"ticks" yaml:"ticks"`
		BPM   float64 `json:"bpm" yaml:"bpm"`
	}

	// Map is a tempo map. It implements miditrack.Header and can be shared by
	// the tracks of a file; it is safe for concurrent use.
	Map struct {
		mu         sync.RWMutex
		resolution int      // ticks per quarter note
		changes    []Change // ordered by ticks, changes[0].Ticks == 0
	}

	// Data is the serialized form of a Map.
	Data struct {
		Resolution int      `json:"resolution" yaml:"resolution"`
		Tempos     []Change `json:"tempos" yaml:"tempos,flow"`
	}
)

var _ miditrack.Header = (*Map)(nil)

// New returns a Map with the given resolution, in ticks per quarter note, and
// a constant tempo of DefaultBPM.
func New(resolution int) *Map {
	return &Map{resolution: resolution, changes: []Change{{Ticks: 0, BPM: DefaultBPM}}}
}

// FromData creates a Map from its serialized form.
func FromData(d Data) (*Map, error) {
	if d.Resolution <= 0 {
		return nil, fmt.Errorf("invalid resolution %d", d.Resolution)
	}
	m := New(d.Resolution)
	for _, c := range d.Tempos {
		if err := m.SetTempo(c.Ticks, c.BPM); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Data returns the serialized form of the map.
func (m *Map) Data() Data {
	return Data{Resolution: m.Resolution(), Tempos: m.Changes()}
}

// Resolution returns the number of ticks per quarter note.
func (m *Map) Resolution() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolution
}

// Changes returns a copy of the tempo changes, ordered by ticks.
func (m *Map) Changes() []Change {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ret := make([]Change, len(m.changes))
	copy(ret, m.changes)
	return ret
}

// SetTempo sets the tempo from the given tick onwards, until the next tempo
// change. A tempo change already at the same tick is replaced.
func (m *Map) SetTempo(ticks int, bpm float64) error {
	if bpm <= 0 || math.IsInf(bpm, 0) || math.IsNaN(bpm) {
		return fmt.Errorf("invalid tempo %v BPM", bpm)
	}
	if ticks < 0 {
		return fmt.Errorf("invalid tempo position %d", ticks)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.changes {
		if m.changes[i].Ticks == ticks {
			m.changes[i].BPM = bpm
			return nil
		}
	}
	m.changes = miditrack.Insert(m.changes, Change{Ticks: ticks, BPM: bpm}, func(c Change) int { return c.Ticks })
	return nil
}

// BPMAt returns the tempo in effect at the given tick.
func (m *Map) BPMAt(ticks int) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bpm := m.changes[0].BPM
	for _, c := range m.changes[1:] {
		if c.Ticks > ticks {
			break
		}
		bpm = c.BPM
	}
	return bpm
}

// TicksToSeconds converts a tick position to seconds from the start of the
// file. Negative ticks are extrapolated with the first tempo.
func (m *Map) TicksToSeconds(ticks int) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seconds := 0.0
	for i, c := range m.changes {
		end := ticks
		if i+1 < len(m.changes) && m.changes[i+1].Ticks < ticks {
			end = m.changes[i+1].Ticks
		}
		seconds += float64(end-c.Ticks) * 60 / (c.BPM * float64(m.resolution))
		if end == ticks {
			break
		}
	}
	return seconds
}

// SecondsToTicks converts a time in seconds to the nearest tick.
func (m *Map) SecondsToTicks(seconds float64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	elapsed := 0.0
	for i, c := range m.changes {
		ticksPerSecond := c.BPM * float64(m.resolution) / 60
		if i+1 < len(m.changes) {
			next := m.changes[i+1].Ticks
			segment := float64(next-c.Ticks) / ticksPerSecond
			if elapsed+segment <= seconds {
				elapsed += segment
				continue
			}
		}
		return c.Ticks + int(math.Round((seconds-elapsed)*ticksPerSecond))
	}
	return 0 // unreachable, changes is never empty
}

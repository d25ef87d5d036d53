package midifile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/vsariola/miditrack"
	"github.com/vsariola/miditrack/tempo"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type timedMessage struct {
	ticks int
	msg   []byte
}

// WriteFile encodes the tracks to a Standard MIDI File at path.
func WriteFile(path string, header *tempo.Map, tracks ...*miditrack.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, header, tracks...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes a format 1 Standard MIDI File: the first track has the tempo
// changes of header, followed by one track per Track with its name, program
// changes and control changes. Controller values are scaled back to 0-127.
// Events with numbers that do not fit in a MIDI message are reported as
// *miditrack.ValidationError.
func Encode(w io.Writer, header *tempo.Map, tracks ...*miditrack.Track) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(header.Resolution())
	var tempoTrack []timedMessage
	for _, c := range header.Changes() {
		tempoTrack = append(tempoTrack, timedMessage{ticks: c.Ticks, msg: smf.MetaTempo(c.BPM)})
	}
	if err := s.Add(closeTrack(tempoTrack)); err != nil {
		return err
	}
	for i, t := range tracks {
		msgs, err := trackMessages(t)
		if err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
		if err := s.Add(closeTrack(msgs)); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
	}
	_, err := s.WriteTo(w)
	return err
}

func trackMessages(t *miditrack.Track) ([]timedMessage, error) {
	if t.Channel < 0 || t.Channel > 15 {
		return nil, &miditrack.ValidationError{Field: "channel", Value: float64(t.Channel), Min: 0, Max: 15}
	}
	ch := uint8(t.Channel)
	var ret []timedMessage
	add := func(m timedMessage) {
		ret = miditrack.Insert(ret, m, func(m timedMessage) int { return m.ticks })
	}
	if t.Name != "" {
		add(timedMessage{ticks: 0, msg: smf.MetaTrackSequenceName(t.Name)})
	}
	for _, pc := range t.ProgramChanges {
		if err := pc.Validate(); err != nil {
			return nil, err
		}
		add(timedMessage{ticks: pc.Ticks, msg: midi.ProgramChange(ch, uint8(pc.Number))})
	}
	for _, number := range t.Controllers() {
		if number < 0 || number > 127 {
			return nil, &miditrack.ValidationError{Field: "controller number", Value: float64(number), Min: 0, Max: 127}
		}
		for _, cc := range t.ControlChanges[number] {
			if math.IsNaN(cc.Value) {
				return nil, &miditrack.ValidationError{Field: "value", Value: cc.Value, Min: 0, Max: 1, Ticks: cc.Ticks}
			}
			value := math.Round(math.Max(0, math.Min(1, cc.Value)) * 127)
			add(timedMessage{ticks: cc.Ticks, msg: midi.ControlChange(ch, uint8(number), uint8(value))})
		}
	}
	return ret, nil
}

func closeTrack(msgs []timedMessage) smf.Track {
	var track smf.Track
	last := 0
	for _, m := range msgs {
		ticks := max(m.ticks, last)
		track.Add(uint32(ticks-last), m.msg)
		last = ticks
	}
	track.Close(0)
	return track
}

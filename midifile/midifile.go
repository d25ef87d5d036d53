// Package midifile reads and writes Standard MIDI Files, converting them to
// and from miditrack tracks and a tempo map.
package midifile

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vsariola/miditrack"
	"github.com/vsariola/miditrack/tempo"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// File is a decoded Standard MIDI File: the tempo map and, for every track of
// the file, its raw events in file order.
type File struct {
	Header *tempo.Map

	// Raw has the raw events of each track, with absolute times in ticks.
	Raw [][]miditrack.RawEvent

	// Channels has the channel of the first channel message of each track, or
	// 0 if the track has none.
	Channels []int
}

// ReadFile decodes the Standard MIDI File at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a Standard MIDI File. Only files with metric time (ticks per
// quarter note) are supported. Tempo changes of all the tracks go to the
// tempo map.
func Decode(r io.Reader) (*File, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("could not read midi file: %w", err)
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v, only metric ticks are supported", s.TimeFormat)
	}
	ret := &File{
		Header:   tempo.New(int(ticks.Resolution())),
		Raw:      make([][]miditrack.RawEvent, len(s.Tracks)),
		Channels: make([]int, len(s.Tracks)),
	}
	for i, track := range s.Tracks {
		raw, channel, err := decodeTrack(track, ret.Header)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		ret.Raw[i] = raw
		ret.Channels[i] = channel
	}
	return ret, nil
}

func decodeTrack(track smf.Track, header *tempo.Map) (raw []miditrack.RawEvent, channel int, err error) {
	var abs int
	channel = -1
	for _, ev := range track {
		abs += int(ev.Delta)
		var bpm float64
		var text string
		var ch, controller, value, program uint8
		msg := midi.Message(ev.Message)
		switch {
		case ev.Message.GetMetaTempo(&bpm):
			if err := header.SetTempo(abs, bpm); err != nil {
				return nil, 0, err
			}
		case ev.Message.GetMetaTrackName(&text):
			raw = append(raw, miditrack.RawEvent{Type: miditrack.TrackNameEvent, AbsoluteTime: abs, Text: text})
		case msg.GetControlChange(&ch, &controller, &value):
			raw = append(raw, miditrack.RawEvent{
				Type:           miditrack.ControllerEvent,
				AbsoluteTime:   abs,
				ControllerType: int(controller),
				Value:          int(value),
				Channel:        int(ch),
			})
		case msg.GetProgramChange(&ch, &program):
			raw = append(raw, miditrack.RawEvent{
				Type:          miditrack.ProgramChangeEvent,
				AbsoluteTime:  abs,
				ProgramNumber: int(program),
				Channel:       int(ch),
			})
		}
		if channel < 0 && msg.GetChannel(&ch) {
			channel = int(ch)
		}
	}
	if channel < 0 {
		channel = 0
	}
	return raw, channel, nil
}

// Tracks builds a miditrack.Track for every track of the file. The tracks
// are built concurrently; they share nothing but the tempo map.
func (f *File) Tracks() []*miditrack.Track {
	ret := make([]*miditrack.Track, len(f.Raw))
	var wg sync.WaitGroup
	for i := range f.Raw {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			t := miditrack.NewTrack(f.Raw[i], f.Header)
			t.Channel = f.Channels[i]
			ret[i] = t
		}(i)
	}
	wg.Wait()
	return ret
}

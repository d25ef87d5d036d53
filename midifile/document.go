package midifile

import (
	"fmt"

	"github.com/vsariola/miditrack"
	"github.com/vsariola/miditrack/tempo"
)

// Document is the .json/.yml form of a whole file: the tempo map and the
// serialized tracks.
type Document struct {
	Header tempo.Data            `json:"header" yaml:"header"`
	Tracks []miditrack.TrackData `json:"tracks" yaml:"tracks"`
}

// NewDocument serializes the tempo map and the tracks.
func NewDocument(header *tempo.Map, tracks []*miditrack.Track) Document {
	ret := Document{Header: header.Data(), Tracks: make([]miditrack.TrackData, len(tracks))}
	for i, t := range tracks {
		ret.Tracks[i] = t.ToJSON()
	}
	return ret
}

// Load rebuilds the tempo map and the tracks of the document.
func (d Document) Load() (*tempo.Map, []*miditrack.Track, error) {
	header, err := tempo.FromData(d.Header)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid header: %w", err)
	}
	tracks := make([]*miditrack.Track, len(d.Tracks))
	for i, data := range d.Tracks {
		tracks[i] = miditrack.NewTrack(nil, header).FromJSON(data)
	}
	return header, tracks, nil
}

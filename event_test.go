package miditrack_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/vsariola/miditrack"
	"github.com/vsariola/miditrack/tempo"
)

// ratioHeader has a constant number of ticks per second.
type ratioHeader float64

func (h ratioHeader) TicksToSeconds(ticks int) float64 { return float64(ticks) / float64(h) }
func (h ratioHeader) SecondsToTicks(s float64) int     { return int(math.Round(s * float64(h))) }

const identity = ratioHeader(1)

func TestTimeFollowsHeader(t *testing.T) {
	header := tempo.New(480)
	pc := miditrack.NewProgramChange(3, 960, header)
	if got := pc.Time(); got != 1 {
		t.Fatalf("expected 1 second at 120 bpm, got %v", got)
	}
	if err := header.SetTempo(0, 60); err != nil {
		t.Fatalf("SetTempo failed: %v", err)
	}
	if got := pc.Time(); got != 2 {
		t.Fatalf("expected 2 seconds after tempo change, got %v", got)
	}
	if pc.Ticks != 960 {
		t.Fatalf("ticks changed to %d", pc.Ticks)
	}
}

func TestSetTime(t *testing.T) {
	cc := miditrack.NewControlChange(7, 0, 0.5, identity)
	cc.SetTime(42)
	if cc.Ticks != 42 || cc.Time() != 42 {
		t.Fatalf("identity header did not round trip: ticks %d, time %v", cc.Ticks, cc.Time())
	}
	quantized := ratioHeader(10)
	cc = miditrack.NewControlChange(7, 0, 0.5, quantized)
	cc.SetTime(0.123)
	expected := quantized.TicksToSeconds(quantized.SecondsToTicks(0.123))
	if cc.Time() != expected {
		t.Fatalf("got %v, expected %v", cc.Time(), expected)
	}
}

func TestEventMarshalJSON(t *testing.T) {
	header := ratioHeader(480)
	pc, err := json.Marshal(miditrack.NewProgramChange(40, 240, header))
	if err != nil {
		t.Fatalf("cannot marshal program change: %v", err)
	}
	if string(pc) != `{"number":40,"time":0.5,"ticks":240}` {
		t.Fatalf("unexpected program change json: %s", pc)
	}
	cc, err := json.Marshal(miditrack.NewControlChange(10, 480, 0.25, header))
	if err != nil {
		t.Fatalf("cannot marshal control change: %v", err)
	}
	if string(cc) != `{"number":10,"value":0.25,"time":1,"ticks":480}` {
		t.Fatalf("unexpected control change json: %s", cc)
	}
}

func TestEventValidate(t *testing.T) {
	valid := []interface{ Validate() error }{
		miditrack.NewProgramChange(0, 0, identity),
		miditrack.NewProgramChange(127, 0, identity),
		miditrack.NewControlChange(0, 0, 0, identity),
		miditrack.NewControlChange(126, 0, 1, identity),
	}
	for i, e := range valid {
		if err := e.Validate(); err != nil {
			t.Errorf("event %d should be valid, got %v", i, err)
		}
	}
	invalid := []interface{ Validate() error }{
		miditrack.NewProgramChange(128, 0, identity),
		miditrack.NewProgramChange(-1, 0, identity),
		miditrack.NewControlChange(127, 0, 0, identity),
		miditrack.NewControlChange(200, 0, 0, identity),
		miditrack.NewControlChange(7, 0, 1.5, identity),
		miditrack.NewControlChange(7, 0, -0.1, identity),
	}
	for i, e := range invalid {
		var verr *miditrack.ValidationError
		if err := e.Validate(); !errors.As(err, &verr) {
			t.Errorf("event %d should be invalid, got %v", i, err)
		}
	}
}

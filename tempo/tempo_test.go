package tempo_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/vsariola/miditrack/tempo"
)

func TestConstantTempo(t *testing.T) {
	m := tempo.New(480)
	for _, c := range []struct {
		ticks   int
		seconds float64
	}{{0, 0}, {480, 0.5}, {960, 1}, {-480, -0.5}} {
		if got := m.TicksToSeconds(c.ticks); got != c.seconds {
			t.Errorf("TicksToSeconds(%d) = %v, expected %v", c.ticks, got, c.seconds)
		}
		if got := m.SecondsToTicks(c.seconds); got != c.ticks {
			t.Errorf("SecondsToTicks(%v) = %d, expected %d", c.seconds, got, c.ticks)
		}
	}
}

func TestTempoChanges(t *testing.T) {
	m := tempo.New(100)
	// 60 bpm for the first 200 ticks (2 s), then 120 bpm (0.5 s per 100 ticks)
	if err := m.SetTempo(0, 60); err != nil {
		t.Fatalf("SetTempo failed: %v", err)
	}
	if err := m.SetTempo(200, 120); err != nil {
		t.Fatalf("SetTempo failed: %v", err)
	}
	for _, c := range []struct {
		ticks   int
		seconds float64
	}{{100, 1}, {200, 2}, {300, 2.5}, {400, 3}} {
		if got := m.TicksToSeconds(c.ticks); got != c.seconds {
			t.Errorf("TicksToSeconds(%d) = %v, expected %v", c.ticks, got, c.seconds)
		}
		if got := m.SecondsToTicks(c.seconds); got != c.ticks {
			t.Errorf("SecondsToTicks(%v) = %d, expected %d", c.seconds, got, c.ticks)
		}
	}
	if bpm := m.BPMAt(199); bpm != 60 {
		t.Errorf("BPMAt(199) = %v", bpm)
	}
	if bpm := m.BPMAt(200); bpm != 120 {
		t.Errorf("BPMAt(200) = %v", bpm)
	}
}

func TestSetTempoReplacesAndOrders(t *testing.T) {
	m := tempo.New(96)
	for _, c := range []tempo.Change{{Ticks: 500, BPM: 90}, {Ticks: 100, BPM: 140}, {Ticks: 500, BPM: 100}, {Ticks: 0, BPM: 80}} {
		if err := m.SetTempo(c.Ticks, c.BPM); err != nil {
			t.Fatalf("SetTempo failed: %v", err)
		}
	}
	expected := []tempo.Change{{Ticks: 0, BPM: 80}, {Ticks: 100, BPM: 140}, {Ticks: 500, BPM: 100}}
	if got := m.Changes(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("got %v, expected %v", got, expected)
	}
	for _, bad := range []struct {
		ticks int
		bpm   float64
	}{{0, 0}, {0, -10}, {-1, 120}} {
		if err := m.SetTempo(bad.ticks, bad.bpm); err == nil {
			t.Errorf("SetTempo(%d, %v) should fail", bad.ticks, bad.bpm)
		}
	}
}

func TestDataRoundTrip(t *testing.T) {
	m := tempo.New(960)
	m.SetTempo(1920, 90)
	got, err := tempo.FromData(m.Data())
	if err != nil {
		t.Fatalf("FromData failed: %v", err)
	}
	if !reflect.DeepEqual(got.Data(), m.Data()) {
		t.Fatalf("got %v, expected %v", got.Data(), m.Data())
	}
	if _, err := tempo.FromData(tempo.Data{}); err == nil {
		t.Fatal("FromData should fail without a resolution")
	}
}

func TestConcurrentReads(t *testing.T) {
	m := tempo.New(480)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.TicksToSeconds(j * i)
				m.SecondsToTicks(float64(j))
			}
		}(i)
	}
	for j := 1; j < 100; j++ {
		m.SetTempo(j*480, float64(60+j))
	}
	wg.Wait()
}

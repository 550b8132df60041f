package clock

import (
	"testing"
	"time"
)

func TestFixedOffsetZone(t *testing.T) {
	c := NewFixedOffset("WAT", 1)

	now := c.Now()
	_, offset := now.Zone()
	if offset != 3600 {
		t.Errorf("expected UTC+1 offset (3600s), got %d", offset)
	}
}

func TestNewWATMatchesUTCPlusOne(t *testing.T) {
	c := NewWAT()

	utc := time.Now().UTC()
	wat := c.Now()

	diff := wat.Sub(utc)
	if diff < -time.Second || diff > time.Second {
		t.Errorf("WAT clock disagrees with UTC by %v; expected same instant", diff)
	}

	name, _ := wat.Zone()
	if name != "WAT" {
		t.Errorf("expected zone name WAT, got %s", name)
	}
}

func TestFrozen(t *testing.T) {
	instant := time.Date(2025, 3, 10, 10, 0, 0, 0, time.FixedZone("WAT", 3600))
	f := &Frozen{Instant: instant}

	if !f.Now().Equal(instant) {
		t.Errorf("frozen clock moved: got %v, want %v", f.Now(), instant)
	}
	if !f.Now().Equal(f.Now()) {
		t.Error("two reads of a frozen clock differ")
	}
}

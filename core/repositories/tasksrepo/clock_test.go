package tasksrepo

import (
	"testing"
	"time"
)

func TestClockNeverRepeats(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 123456789, time.UTC)
	c := newClock(func() time.Time { return fixed })

	first := c.next(time.Time{})
	if !first.Equal(fixed.Truncate(time.Millisecond)) {
		t.Fatalf("first = %v", first)
	}
	second := c.next(time.Time{})
	if !second.After(first) {
		t.Fatalf("second %v not after first %v", second, first)
	}
	if d := second.Sub(first); d != time.Millisecond {
		t.Fatalf("step = %v, want 1ms", d)
	}
}

func TestClockRespectsFloor(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c := newClock(func() time.Time { return now })

	floor := now.Add(time.Hour)
	got := c.next(floor)
	if !got.After(floor) {
		t.Fatalf("next(%v) = %v, want after floor", floor, got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("location = %v", got.Location())
	}
}

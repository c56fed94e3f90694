package sampler

import (
	"testing"
	"time"
)

func TestCursorSkipsLongGaps(t *testing.T) {
	start := time.Date(2017, 1, 3, 10, 0, 0, 0, time.UTC)
	c := newCursor(HR, start, time.Second)

	c.push(Measurement{Time: start.Add(500 * time.Millisecond), Channel: HR, Value: 1})
	c.push(Measurement{Time: start.Add(365 * 24 * time.Hour), Channel: HR, Value: 2})
	c.push(Measurement{Time: start.Add(365*24*time.Hour + 1500*time.Millisecond), Channel: HR, Value: 3})

	out := c.finish()

	want := []time.Time{
		start.Add(time.Second),
		start.Add(365 * 24 * time.Hour),
		start.Add(365*24*time.Hour + 2*time.Second),
	}

	if len(out) != len(want) {
		t.Fatalf("got %d measurements, want %d: %v", len(out), len(want), out)
	}
	for i := range want {
		if !out[i].Time.Equal(want[i]) {
			t.Errorf("measurement %d at %v, want %v", i, out[i].Time, want[i])
		}
		if out[i].Value != float64(i+1) {
			t.Errorf("measurement %d has value %v, want %v", i, out[i].Value, i+1)
		}
	}
}

func TestCursorFinishWithoutPending(t *testing.T) {
	start := time.Date(2017, 1, 3, 10, 0, 0, 0, time.UTC)
	c := newCursor(TEMP, start, 5*time.Minute)

	c.push(Measurement{Time: start.Add(5 * time.Minute), Channel: TEMP, Value: 36})

	if out := c.finish(); len(out) != 1 {
		t.Errorf("boundary reading should be emitted exactly once, got %v", out)
	}
}

func TestCursorRepeatedBoundaryReading(t *testing.T) {
	start := time.Date(2017, 1, 3, 10, 0, 0, 0, time.UTC)
	c := newCursor(HR, start, 5*time.Minute)

	boundary := start.Add(5 * time.Minute)
	c.push(Measurement{Time: boundary, Channel: HR, Value: 70})
	c.push(Measurement{Time: boundary, Channel: HR, Value: 71})
	c.push(Measurement{Time: boundary, Channel: HR, Value: 72})

	out := c.finish()
	if len(out) != 1 {
		t.Fatalf("expected a single measurement, got %v", out)
	}
	if !out[0].Time.Equal(boundary) || out[0].Value != 72 {
		t.Errorf("got %v, want value 72 at %v", out[0], boundary)
	}
}

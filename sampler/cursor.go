package sampler

import (
	"time"
)

// cursor walks the intervals of a single channel. the current interval is
// (end-width, end], intervals are only generated when a measurement needs them
type cursor struct {
	channel Channel
	width   time.Duration
	end     time.Time

	pending    float64
	hasPending bool

	out []Measurement
}

func newCursor(channel Channel, start time.Time, width time.Duration) cursor {
	return cursor{
		channel: channel,
		width:   width,
		end:     start.Add(width),
	}
}

// emit closes the current interval, writing the pending value (if any) at the interval end
func (c *cursor) emit() {
	if c.hasPending {
		c.out = append(c.out, Measurement{
			Time:    c.end,
			Channel: c.channel,
			Value:   c.pending,
		})
		c.hasPending = false
	}
	c.end = c.end.Add(c.width)
}

// push feeds the next measurement in ascending time order
func (c *cursor) push(m Measurement) {
	// another reading on the boundary that was just closed replaces the emitted value
	if n := len(c.out); n > 0 && c.out[n-1].Time.Equal(m.Time) {
		c.out[n-1].Value = m.Value
		return
	}

	for m.Time.After(c.end) {
		if c.hasPending {
			c.emit()
			continue
		}
		// skip all empty intervals at once
		gap := m.Time.Sub(c.end)
		n := gap / c.width
		if gap%c.width != 0 {
			n++
		}
		c.end = c.end.Add(n * c.width)
	}

	// a measurement at the exact interval end belongs to the interval it closes
	// and replaces whatever was pending in that interval
	c.pending = m.Value
	c.hasPending = true

	if m.Time.Equal(c.end) {
		c.emit()
	}
}

// finish emits the trailing pending value and returns the result
func (c *cursor) finish() []Measurement {
	if c.hasPending {
		c.emit()
	}
	return c.out
}

package sampler

import (
	"time"
)

// Measurement is a single reading of one channel
type Measurement struct {
	Time    time.Time
	Channel Channel
	Value   float64
}

// Series maps every channel present in the input to its resampled measurements,
// sorted by ascending time
type Series map[Channel][]Measurement

// Len returns the total number of measurements across all channels
func (s Series) Len() int {
	n := 0
	for _, ms := range s {
		n += len(ms)
	}
	return n
}

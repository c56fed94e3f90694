package apiclient

import (
	"time"
)

type Point struct {
	Time  time.Time
	Value float64
}

// Result is the decoded response of a sample query, keyed by channel name
type Result struct {
	Start    time.Time
	Interval string
	Series   map[string][]Point
}

type ChannelInfo struct {
	Channel string
	Count   int
	First   time.Time
	Last    time.Time
}

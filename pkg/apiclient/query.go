package apiclient

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Query describes a sample request, zero values use the server defaults
type Query struct {
	Start    time.Time
	Interval time.Duration
	Channels []string
}

type queryYaml struct {
	Start    *time.Time `yaml:",omitempty"`
	Interval string     `yaml:",omitempty"`
	Channels []string   `yaml:",omitempty"`
}

// Build encodes the query as yaml
func (q Query) Build() ([]byte, error) {
	y := queryYaml{
		Channels: q.Channels,
	}
	if !q.Start.IsZero() {
		start := q.Start.UTC()
		y.Start = &start
	}
	if q.Interval != 0 {
		y.Interval = q.Interval.String()
	}
	return yaml.Marshal(&y)
}

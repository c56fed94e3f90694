package api

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/martin2250/vitalsampler/sampler"
)

// minInterval is the smallest interval a query may request
const minInterval = time.Second

type sampleQuery struct {
	// Start is the instant the grid is anchored at, defaults to the grid start before the earliest measurement
	Start *time.Time
	// Interval overrides the configured interval duration
	Interval time.Duration
	// Channels restricts the result, all channels are returned when empty
	Channels []string
}

type parsedQuery struct {
	Start    *time.Time
	Interval time.Duration
	Channels []sampler.Channel
}

func parseQuery(r io.Reader, defaultInterval time.Duration) (parsedQuery, error) {
	desc := sampleQuery{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil && err != io.EOF {
		return parsedQuery{}, errors.Wrap(err, "could not parse query")
	}

	q := parsedQuery{
		Start:    desc.Start,
		Interval: desc.Interval,
	}

	if q.Interval == 0 {
		q.Interval = defaultInterval
	}
	if q.Interval < minInterval {
		return parsedQuery{}, errors.New("interval smaller than 1s")
	}

	for _, name := range desc.Channels {
		c, err := sampler.ParseChannel(name)
		if err != nil {
			return parsedQuery{}, errors.Wrapf(err, "channel %q", name)
		}
		q.Channels = append(q.Channels, c)
	}

	return q, nil
}

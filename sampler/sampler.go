// Package sampler downsamples irregular multi-channel measurements onto a
// fixed grid, keeping the last measurement of every interval.
package sampler

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Sampler resamples measurements with a fixed set of options
type Sampler struct {
	opts Options
}

// New creates a Sampler, returning an error if the options are invalid
func New(opts Options) (*Sampler, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	return &Sampler{opts: opts}, nil
}

// Options returns the options of the sampler
func (s *Sampler) Options() Options {
	return s.opts
}

// Sample resamples measurements with the default options
func Sample(start time.Time, measurements []Measurement) (Series, error) {
	s := Sampler{opts: DefaultOptions()}
	return s.Sample(start, measurements)
}

// Sample groups measurements by channel and resamples every channel onto
// the intervals (start+k*d, start+(k+1)*d]. Every non-empty interval yields one
// measurement at its end carrying the value of the latest measurement inside it.
// The input slice is not modified.
func (s *Sampler) Sample(start time.Time, measurements []Measurement) (Series, error) {
	if err := s.opts.Check(); err != nil {
		return nil, err
	}

	groups, err := group(measurements)
	if err != nil {
		return nil, err
	}

	result := make(Series, len(groups))

	if s.opts.Workers < 2 || len(groups) < 2 {
		for channel, ms := range groups {
			result[channel] = s.sampleChannel(channel, start, ms)
		}
		return result, nil
	}

	var (
		mux sync.Mutex
		eg  errgroup.Group
	)
	eg.SetLimit(s.opts.Workers)

	for channel, ms := range groups {
		channel, ms := channel, ms
		eg.Go(func() error {
			out := s.sampleChannel(channel, start, ms)
			mux.Lock()
			result[channel] = out
			mux.Unlock()
			return nil
		})
	}

	return result, eg.Wait()
}

// group partitions measurements by channel, keeping input order inside every
// channel so the following stable sort decides ties by input order
func group(measurements []Measurement) (map[Channel][]Measurement, error) {
	groups := make(map[Channel][]Measurement)

	for i, m := range measurements {
		if m.Time.IsZero() {
			return nil, errors.Wrapf(ErrUnorderableInput, "measurement %d", i)
		}
		if !m.Channel.Valid() {
			return nil, errors.Wrapf(ErrUnknownChannel, "measurement %d has channel %d", i, m.Channel)
		}
		groups[m.Channel] = append(groups[m.Channel], m)
	}

	return groups, nil
}

func (s *Sampler) sampleChannel(channel Channel, start time.Time, ms []Measurement) []Measurement {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Time.Before(ms[j].Time)
	})

	c := newCursor(channel, start, s.opts.IntervalDuration)
	for _, m := range ms {
		c.push(m)
	}
	return c.finish()
}

package sampler

import (
	"time"

	"github.com/pkg/errors"
)

// DefaultIntervalDuration is the bucket width used when none is configured
const DefaultIntervalDuration = 5 * time.Minute

// Options controls how measurements are resampled
type Options struct {
	// IntervalDuration is the width of every bucket
	IntervalDuration time.Duration
	// Workers is the number of channels processed in parallel, values below 2 disable parallelism
	Workers int
}

// DefaultOptions returns the options used by the package level Sample
func DefaultOptions() Options {
	return Options{
		IntervalDuration: DefaultIntervalDuration,
		Workers:          1,
	}
}

// Check checks options for errors
func (o Options) Check() error {
	if o.IntervalDuration <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "got %v", o.IntervalDuration)
	}
	if o.Workers < 0 {
		return errors.New("worker count must not be negative")
	}
	return nil
}

package ingest

import "github.com/martin2250/vitalsampler/sampler"

// MeasurementSink can store incoming measurements for later resampling
type MeasurementSink interface {
	// AddMeasurement stores a measurement in the sink
	AddMeasurement(m sampler.Measurement)
}

// MeasurementSource returns measurements that should be stored
type MeasurementSource interface {
	// GetMeasurement returns the oldest measurement and removes it from the source
	// returns false if no measurement is available
	GetMeasurement() (sampler.Measurement, bool)
}

// ChanSink forwards measurements to a channel
type ChanSink chan<- sampler.Measurement

func (cs ChanSink) AddMeasurement(m sampler.Measurement) {
	cs <- m
}

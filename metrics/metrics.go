// Package metrics holds the prometheus collectors of the sampling service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/martin2250/vitalsampler/sampler"
)

// Metrics bundles every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Ingested       prometheus.Counter
	Rejected       prometheus.Counter
	Expired        prometheus.Counter
	Emissions      *prometheus.CounterVec
	SampleDuration prometheus.Histogram
	Stored         prometheus.Gauge
}

// New creates all collectors and registers them with reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Ingested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vitalsampler_measurements_ingested_total",
			Help: "Total measurements accepted by the listeners.",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vitalsampler_lines_rejected_total",
			Help: "Total input lines that could not be parsed.",
		}),
		Expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vitalsampler_measurements_expired_total",
			Help: "Total measurements dropped from the store by retention.",
		}),
		Emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalsampler_emissions_total",
			Help: "Total resampled measurements returned, by channel.",
		}, []string{"channel"}),
		SampleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vitalsampler_sample_duration_seconds",
			Help:    "Time spent resampling a query.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		Stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalsampler_measurements_stored",
			Help: "Current number of measurements held in the store.",
		}),
	}

	collectors := []prometheus.Collector{m.Ingested, m.Rejected, m.Expired, m.Emissions, m.SampleDuration, m.Stored}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) AddIngested(n int) {
	if m != nil {
		m.Ingested.Add(float64(n))
	}
}

func (m *Metrics) AddRejected(n int) {
	if m != nil {
		m.Rejected.Add(float64(n))
	}
}

func (m *Metrics) AddExpired(n int) {
	if m != nil {
		m.Expired.Add(float64(n))
	}
}

func (m *Metrics) SetStored(n int) {
	if m != nil {
		m.Stored.Set(float64(n))
	}
}

// ObserveSample records the duration and per-channel emission counts of one query
func (m *Metrics) ObserveSample(d time.Duration, result sampler.Series) {
	if m == nil {
		return
	}
	m.SampleDuration.Observe(d.Seconds())
	for c, ms := range result {
		m.Emissions.WithLabelValues(c.String()).Add(float64(len(ms)))
	}
}

package api

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/database"
	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/ingest/pointlistener"
	"github.com/martin2250/vitalsampler/metrics"
	"github.com/martin2250/vitalsampler/sampler"
)

// Config holds everything the API handlers need
type Config struct {
	Database *database.Database
	// Sink receives measurements posted to /insert
	Sink    ingest.MeasurementSink
	Options sampler.Options
	Metrics *metrics.Metrics
	Log     logrus.FieldLogger
}

// Register adds all API handlers to r
func Register(r *mux.Router, c Config) {
	r.Handle("/sample", handleSample{
		db:      c.Database,
		opts:    c.Options,
		metrics: c.Metrics,
		log:     c.Log,
	}).Methods("POST")

	r.Handle("/channels", handleChannels{db: c.Database, log: c.Log}).Methods("GET")

	r.Handle("/insert", pointlistener.HTTPLineProtocolHandler{
		Sink:    c.Sink,
		Log:     c.Log,
		Metrics: c.Metrics,
	})
}

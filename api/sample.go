package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/database"
	"github.com/martin2250/vitalsampler/metrics"
	"github.com/martin2250/vitalsampler/sampler"
	"github.com/martin2250/vitalsampler/util"
)

type handleSample struct {
	db      *database.Database
	opts    sampler.Options
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

type samplePoint struct {
	Time  time.Time
	Value float64
}

type sampleResponse struct {
	Start    time.Time
	Interval string
	Series   map[sampler.Channel][]samplePoint
}

func (h handleSample) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.Body, h.opts.IntervalDuration)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := sampleResponse{
		Interval: q.Interval.String(),
		Series:   make(map[sampler.Channel][]samplePoint),
	}

	var start time.Time
	if q.Start != nil {
		start = *q.Start
	} else if first, ok := h.db.Earliest(q.Channels...); ok {
		start = util.GridStart(first, q.Interval)
	} else {
		// nothing stored, nothing to sample
		writeJSON(w, h.log, resp)
		return
	}
	resp.Start = start

	opts := h.opts
	opts.IntervalDuration = q.Interval

	s, err := sampler.New(opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	timeStart := time.Now()
	result, err := s.Sample(start, h.db.Snapshot(q.Channels...))
	if err != nil {
		h.log.WithError(err).Warning("sampling failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.metrics.ObserveSample(time.Since(timeStart), result)

	for c, ms := range result {
		points := make([]samplePoint, len(ms))
		for i, m := range ms {
			points[i] = samplePoint{Time: m.Time, Value: m.Value}
		}
		resp.Series[c] = points
	}

	h.log.WithFields(logrus.Fields{
		"start":    start,
		"interval": q.Interval,
		"channels": len(result),
		"points":   result.Len(),
	}).Debug("sample query")

	writeJSON(w, h.log, resp)
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(data); err != nil {
		log.WithError(err).Warning("could not write response")
	}
}

package pointlistener

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/metrics"
	"github.com/martin2250/vitalsampler/pkg/lineprotocol"
	"github.com/martin2250/vitalsampler/sampler"
)

// maxBodySize limits the size of a single insert request
const maxBodySize = 32 << 20

// HTTPLineProtocolHandler handles http POST requests and stores incoming measurements to a sink.
// a request is stored completely or not at all
type HTTPLineProtocolHandler struct {
	Sink    ingest.MeasurementSink
	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
}

// ServeHTTP processes a POST request with line protocol data
func (h HTTPLineProtocolHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scanner := bufio.NewScanner(http.MaxBytesReader(writer, request.Body, maxBodySize))
	scanner.Buffer(make([]byte, 0, 4096), lineprotocol.MaxLength+2)

	var batch []sampler.Measurement
	lineno := 0

	for scanner.Scan() {
		lineno++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		m, err := ingest.ParseLine(line)
		if err != nil {
			h.Metrics.AddRejected(1)
			h.Log.WithError(err).WithField("line", lineno).Warning("rejected insert request")
			http.Error(writer, fmt.Sprintf("line %d: %v", lineno, err), http.StatusBadRequest)
			return
		}

		batch = append(batch, m)
	}

	if err := scanner.Err(); err != nil {
		h.Log.WithError(err).Warning("http read error")
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	for _, m := range batch {
		h.Sink.AddMeasurement(m)
	}
	h.Metrics.AddIngested(len(batch))

	writer.WriteHeader(http.StatusNoContent)
}

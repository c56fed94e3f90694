package pointlistener

import (
	"net"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/metrics"
)

// TCPLineProtocolListener listens for TCP connections, receives measurements in line protocol format and stores them in the sink
type TCPLineProtocolListener struct {
	Sink    ingest.MeasurementSink
	Address string
	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
}

// Listen loops endlessly, accepting tcp connections
func (tl TCPLineProtocolListener) Listen() error {
	l, err := net.Listen("tcp", tl.Address)
	if err != nil {
		return err
	}

	return tl.Serve(l)
}

// Serve accepts connections on l until l fails or is closed
func (tl TCPLineProtocolListener) Serve(l net.Listener) error {
	defer l.Close()

	for {
		c, err := l.Accept()
		if err != nil {
			return err
		}

		go tl.handleTCP(c)
	}
}

// handleTCP reads lines until the connection is closed, parse errors don't close the connection
func (tl TCPLineProtocolListener) handleTCP(c net.Conn) {
	defer c.Close()

	log := tl.Log.WithField("remote", c.RemoteAddr().String())

	accepted, rejected, err := ingest.ParseLines(c, tl.Sink, log)
	if err != nil {
		log.WithError(err).Warning("connection error")
	}

	tl.Metrics.AddIngested(accepted)
	tl.Metrics.AddRejected(rejected)

	log.WithFields(logrus.Fields{"accepted": accepted, "rejected": rejected}).Debug("connection closed")
}

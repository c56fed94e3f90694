package pointlistener

import (
	"bytes"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/metrics"
)

// maxDatagramSize is the largest UDP payload
const maxDatagramSize = 64 * 1024

// UDPLineProtocolListener receives datagrams containing one or more lines in line protocol format
type UDPLineProtocolListener struct {
	Sink    ingest.MeasurementSink
	Address string
	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
}

// Listen loops endlessly, reading datagrams
func (ul UDPLineProtocolListener) Listen() error {
	conn, err := net.ListenPacket("udp", ul.Address)
	if err != nil {
		return err
	}

	return ul.Serve(conn)
}

// Serve reads datagrams from conn until it fails or is closed
func (ul UDPLineProtocolListener) Serve(conn net.PacketConn) error {
	defer conn.Close()

	buf := make([]byte, maxDatagramSize)

	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return err
		}

		log := ul.Log.WithField("remote", addr.String())

		accepted, rejected, err := ingest.ParseLines(bytes.NewReader(buf[:n]), ul.Sink, log)
		if err != nil {
			log.WithError(err).Warning("datagram read error")
		}

		ul.Metrics.AddIngested(accepted)
		ul.Metrics.AddRejected(rejected)
	}
}

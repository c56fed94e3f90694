package ingest

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/pkg/lineprotocol"
	"github.com/martin2250/vitalsampler/sampler"
)

// FromPoint converts a parsed line into a measurement
func FromPoint(p lineprotocol.Point) (sampler.Measurement, error) {
	c, err := sampler.ParseChannel(p.Channel())
	if err != nil {
		return sampler.Measurement{}, errors.Wrapf(err, "channel %q", p.Channel())
	}

	return sampler.Measurement{
		Time:    time.Unix(p.Time, 0).UTC(),
		Channel: c,
		Value:   p.Value,
	}, nil
}

// ParseLine parses a single line into a measurement
func ParseLine(line []byte) (sampler.Measurement, error) {
	p, err := lineprotocol.Parse(bytes.TrimSpace(line))
	if err != nil {
		return sampler.Measurement{}, err
	}
	return FromPoint(p)
}

// ParseLines reads line protocol from r and adds every valid measurement to sink.
// empty lines are ignored, malformed and over-long lines are logged and counted as rejected.
// the returned error is only set when reading from r fails
func ParseLines(r io.Reader, sink MeasurementSink, log logrus.FieldLogger) (accepted, rejected int, err error) {
	reader := bufio.NewReaderSize(r, lineprotocol.MaxLength+2)

	lineno := 0
	for {
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			return accepted, rejected, ignoreEOF(err)
		}
		lineno++

		if isPrefix {
			// skip the remainder of the line and keep reading
			for isPrefix && err == nil {
				_, isPrefix, err = reader.ReadLine()
			}
			rejected++
			log.WithError(lineprotocol.ErrTooLong).WithField("line", lineno).Warning("could not parse measurement")
			if err != nil {
				return accepted, rejected, ignoreEOF(err)
			}
			continue
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		m, err := ParseLine(line)
		if err != nil {
			rejected++
			log.WithError(err).WithField("line", lineno).Warning("could not parse measurement")
			continue
		}

		sink.AddMeasurement(m)
		accepted++
	}
}

func ignoreEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

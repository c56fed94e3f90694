package ingest

import (
	"errors"
	"io/ioutil"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/pkg/lineprotocol"
	"github.com/martin2250/vitalsampler/sampler"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}

type sliceSink []sampler.Measurement

func (s *sliceSink) AddMeasurement(m sampler.Measurement) {
	*s = append(*s, m)
}

func TestFromPoint(t *testing.T) {
	m, err := FromPoint(lineprotocol.Point{
		Tags:  []lineprotocol.KVP{{Key: "channel", Value: "spo2"}},
		Value: 98.78,
		Time:  1483437678,
	})
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	want := sampler.Measurement{
		Time:    time.Date(2017, 1, 3, 10, 1, 18, 0, time.UTC),
		Channel: sampler.SPO2,
		Value:   98.78,
	}
	if m != want {
		t.Errorf("got %v, want %v", m, want)
	}

	_, err = FromPoint(lineprotocol.Point{
		Tags: []lineprotocol.KVP{{Key: "channel", Value: "bloodpressure"}},
		Time: 1,
	})
	if !errors.Is(err, sampler.ErrUnknownChannel) {
		t.Errorf("expected unknown channel error, got %v", err)
	}
}

func TestParseLines(t *testing.T) {
	input := strings.Join([]string{
		"channel:temp|35.79|1483437885",
		"",
		"channel:spo2|98.78|1483437678",
		"channel:bp|120|1483437678",
		"garbage",
		"  channel:hr|72|1483437700  ",
	}, "\n")

	var sink sliceSink
	accepted, rejected, err := ParseLines(strings.NewReader(input), &sink, discardLogger())
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if accepted != 3 || rejected != 2 {
		t.Errorf("expected 3 accepted and 2 rejected lines, got %d and %d", accepted, rejected)
	}
	if len(sink) != 3 || sink[0].Channel != sampler.TEMP || sink[2].Channel != sampler.HR {
		t.Errorf("unexpected measurements: %v", sink)
	}
}

func TestChanSink(t *testing.T) {
	c := make(chan sampler.Measurement, 1)
	var sink MeasurementSink = ChanSink(c)

	m := sampler.Measurement{Time: time.Unix(10, 0), Channel: sampler.TEMP, Value: 1}
	sink.AddMeasurement(m)

	if got := <-c; got != m {
		t.Errorf("got %v, want %v", got, m)
	}
}

func TestParseLinesSkipsLongLines(t *testing.T) {
	long := "channel:temp foo:" + strings.Repeat("x", 3*lineprotocol.MaxLength) + "|1|1483437885"
	input := strings.Join([]string{
		"channel:temp|35.79|1483437885",
		long,
		"channel:hr|72|1483437700",
		long,
	}, "\n")

	var sink sliceSink
	accepted, rejected, err := ParseLines(strings.NewReader(input), &sink, discardLogger())
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if accepted != 2 || rejected != 2 {
		t.Errorf("expected 2 accepted and 2 rejected lines, got %d and %d", accepted, rejected)
	}
	if len(sink) != 2 || sink[1].Channel != sampler.HR {
		t.Errorf("lines after a long line were lost: %v", sink)
	}
}

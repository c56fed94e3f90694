package pointlistener

import (
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/pkg/lineprotocol"
	"github.com/martin2250/vitalsampler/sampler"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}

func TestHTTPLineProtocolHandler(t *testing.T) {
	q := ingest.NewQueue()
	h := HTTPLineProtocolHandler{Sink: q, Log: discardLogger()}

	body := "channel:temp|35.79|1483437885\nchannel:spo2|98.78|1483437678\n"
	req := httptest.NewRequest(http.MethodPost, "/insert", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if q.Len() != 2 {
		t.Errorf("expected 2 measurements, got %d", q.Len())
	}
}

func TestHTTPLineProtocolHandlerRejectsBatch(t *testing.T) {
	q := ingest.NewQueue()
	h := HTTPLineProtocolHandler{Sink: q, Log: discardLogger()}

	body := "channel:temp|35.79|1483437885\nchannel:temp|x|1483437885\n"
	req := httptest.NewRequest(http.MethodPost, "/insert", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "line 2:") {
		t.Errorf("error should name the line: %s", rec.Body.String())
	}
	if q.Len() != 0 {
		t.Errorf("nothing should be stored, got %d measurements", q.Len())
	}
}

func TestHTTPLineProtocolHandlerMethod(t *testing.T) {
	h := HTTPLineProtocolHandler{Sink: ingest.NewQueue(), Log: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insert", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestTCPLineProtocolListener(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c := make(chan sampler.Measurement, 16)
	tl := TCPLineProtocolListener{Sink: ingest.ChanSink(c), Log: discardLogger()}
	go tl.Serve(l)
	defer l.Close()

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	fmt.Fprint(conn, "channel:hr|72|1483437700\nnot a point\nchannel:hr|75|1483437760\n")
	conn.Close()

	for i, want := range []float64{72, 75} {
		select {
		case m := <-c:
			if m.Value != want || m.Channel != sampler.HR {
				t.Errorf("measurement %d: got %v", i, m)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for measurement %d", i)
		}
	}
}

func TestUDPLineProtocolListener(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c := make(chan sampler.Measurement, 16)
	ul := UDPLineProtocolListener{Sink: ingest.ChanSink(c), Log: discardLogger()}
	go ul.Serve(pc)
	defer pc.Close()

	conn, err := net.Dial("udp", pc.LocalAddr().String())
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	defer conn.Close()
	fmt.Fprint(conn, "channel:spo2|98.5|1483437700\nchannel:temp|36.2|1483437760")

	got := map[sampler.Channel]float64{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-c:
			got[m.Channel] = m.Value
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for measurement %d", i)
		}
	}

	if got[sampler.SPO2] != 98.5 || got[sampler.TEMP] != 36.2 {
		t.Errorf("unexpected measurements: %v", got)
	}
}

func TestTCPLineProtocolListenerLongLine(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c := make(chan sampler.Measurement, 16)
	tl := TCPLineProtocolListener{Sink: ingest.ChanSink(c), Log: discardLogger()}
	go tl.Serve(l)
	defer l.Close()

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	defer conn.Close()

	long := "channel:hr note:" + strings.Repeat("x", 2*lineprotocol.MaxLength) + "|1|1483437700"
	fmt.Fprintf(conn, "%s\nchannel:hr|75|1483437760\n", long)

	select {
	case m := <-c:
		if m.Value != 75 {
			t.Errorf("got %v, want the measurement after the long line", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("connection stopped reading after a long line")
	}
}

func TestUDPLineProtocolListenerLongLine(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c := make(chan sampler.Measurement, 16)
	ul := UDPLineProtocolListener{Sink: ingest.ChanSink(c), Log: discardLogger()}
	go ul.Serve(pc)
	defer pc.Close()

	conn, err := net.Dial("udp", pc.LocalAddr().String())
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	defer conn.Close()

	long := "channel:hr note:" + strings.Repeat("x", 2*lineprotocol.MaxLength) + "|1|1483437700"
	fmt.Fprintf(conn, "%s\nchannel:temp|36.2|1483437760", long)

	select {
	case m := <-c:
		if m.Channel != sampler.TEMP || m.Value != 36.2 {
			t.Errorf("got %v, want the measurement after the long line", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("datagram lines after a long line were dropped")
	}
}

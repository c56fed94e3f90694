package main

import (
	"strings"
	"testing"
	"time"

	"github.com/martin2250/vitalsampler/sampler"
)

func TestDecodeConfiguration(t *testing.T) {
	conf, err := decodeConfiguration(strings.NewReader(`
apilistenaddress: ":9090"
retention: 2h
sampling:
  intervalduration: 1m
  workers: 3
logging:
  level: debug
  format: json
`))
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if conf.ApiListenAddress != ":9090" || conf.Retention != 2*time.Hour {
		t.Errorf("values not applied: %+v", conf)
	}
	if conf.Sampling.IntervalDuration != time.Minute || conf.Sampling.Workers != 3 {
		t.Errorf("sampling options not applied: %+v", conf.Sampling)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "json" {
		t.Errorf("logging not applied: %+v", conf.Logging)
	}
	// untouched values keep their defaults
	if conf.ApiPath != "/api/" || conf.TcpListenAddress != ":8081" {
		t.Errorf("defaults lost: %+v", conf)
	}
}

func TestDecodeConfigurationEmpty(t *testing.T) {
	conf, err := decodeConfiguration(strings.NewReader(""))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if conf.Sampling != sampler.DefaultOptions() {
		t.Errorf("expected default sampling options, got %+v", conf.Sampling)
	}
}

func TestDecodeConfigurationErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field":      "nosuchfield: 1\n",
		"zero interval":      "sampling:\n  intervalduration: 0s\n",
		"negative workers":   "sampling:\n  workers: -1\n",
		"bad level":          "logging:\n  level: loud\n",
		"bad format":         "logging:\n  format: xml\n",
		"no listener":        "apilistenaddress: \"\"\ntcplistenaddress: \"\"\n",
		"no workers":         "ingestionworkercount: 0\n",
		"short flush":        "flushinterval: 1ms\n",
		"negative retention": "retention: -1h\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := decodeConfiguration(strings.NewReader(text)); err == nil {
				t.Errorf("expected an error for %q", text)
			}
		})
	}
}

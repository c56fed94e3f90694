package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/martin2250/vitalsampler/sampler"
)

type Configuration struct {
	ApiListenAddress string
	ApiPath          string
	ApiTimeout       time.Duration

	MetricsPath string

	TcpListenAddress string
	UdpListenAddress string

	IngestBatchSize      int
	IngestionWorkerCount uint

	// FlushInterval is the time between moving queued measurements into the database
	FlushInterval time.Duration
	// Retention drops measurements older than this, zero keeps everything
	Retention time.Duration

	ShutdownTimeout time.Duration

	Sampling sampler.Options

	Logging struct {
		Level  string
		Format string
	}
}

// defaultConfiguration is used for every value not set in the configuration file
func defaultConfiguration() Configuration {
	conf := Configuration{
		ApiListenAddress: ":8080",
		ApiPath:          "/api/",
		ApiTimeout:       10 * time.Second,

		MetricsPath: "/metrics",

		TcpListenAddress: ":8081",

		IngestBatchSize:      8192,
		IngestionWorkerCount: 1,

		FlushInterval: 1 * time.Second,
		Retention:     24 * time.Hour,

		ShutdownTimeout: 5 * time.Second,

		Sampling: sampler.DefaultOptions(),
	}
	conf.Logging.Level = "info"
	conf.Logging.Format = "text"
	return conf
}

// decodeConfiguration reads yaml from r on top of the defaults
func decodeConfiguration(r io.Reader) (Configuration, error) {
	conf := defaultConfiguration()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&conf); err != nil && err != io.EOF {
		return Configuration{}, err
	}

	if err := conf.Check(); err != nil {
		return Configuration{}, err
	}

	return conf, nil
}

// Check checks config for errors
func (c *Configuration) Check() error {
	if c.ApiListenAddress == "" && c.TcpListenAddress == "" && c.UdpListenAddress == "" {
		return errors.New("no API, TCP or UDP listen address is configured")
	}

	if c.ApiTimeout <= 0 {
		return errors.New("api timeout must be positive")
	}

	if c.IngestBatchSize < 1 {
		return errors.New("ingest batch size must be at least one")
	}

	if c.IngestionWorkerCount < 1 {
		return errors.New("ingestion worker count must be at least one")
	}

	if c.FlushInterval < 10*time.Millisecond {
		return errors.New("flush interval must be greater than or equal to 10ms")
	}

	if c.Retention < 0 {
		return errors.New("retention must not be negative")
	}

	if err := c.Sampling.Check(); err != nil {
		return errors.Wrap(err, "sampling")
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Logging.Format)
	}

	return nil
}

// readConfigurationFile does what the name implies
// kills the application when there is an error
func readConfigurationFile(confpath string) Configuration {
	if confpath == "" {
		return defaultConfiguration()
	}

	log.WithField("path", confpath).Info("Loading configuration file")

	f, err := os.Open(confpath)
	if err != nil {
		log.WithError(err).Fatal("could not open configuration file")
	}
	defer f.Close()

	conf, err := decodeConfiguration(f)
	if err != nil {
		log.WithError(err).Fatal("could not parse configuration file")
	}

	return conf
}

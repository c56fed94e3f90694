package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/api"
	"github.com/martin2250/vitalsampler/database"
	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/ingest/pointlistener"
	"github.com/martin2250/vitalsampler/metrics"
)

func main() {
	// command line
	opts := readCommandLineOptions()

	// profiling
	if opts.Profile != "" {
		p, err := debugStartProfile(opts.Profile, opts.ProfilePath)
		if err != nil {
			log.WithError(err).Fatal("could not start profile")
		}
		defer p.Stop()
	}

	// configuration
	conf := readConfigurationFile(opts.ConfigPath)
	configureLogging(conf)

	// shutdown
	shutdown := make(chan struct{})
	var shutdownOnce sync.Once
	triggerShutdown := func() {
		shutdownOnce.Do(func() { close(shutdown) })
	}
	go gracefulShutdown(triggerShutdown, conf.ShutdownTimeout)

	// metrics
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		log.WithError(err).Fatal("could not register metrics")
	}

	// database and ingestion
	db := database.NewDatabase()
	queue := ingest.NewQueue()

	// http
	if conf.ApiListenAddress != "" {
		r := mux.NewRouter()

		routerApi := r.PathPrefix(conf.ApiPath).Subrouter()
		api.Register(routerApi, api.Config{
			Database: db,
			Sink:     queue,
			Options:  conf.Sampling,
			Metrics:  m,
			Log:      log.WithField("component", "api"),
		})

		if conf.MetricsPath != "" {
			r.Handle(conf.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		}

		srv := &http.Server{
			Addr:    conf.ApiListenAddress,
			Handler: r,

			ReadHeaderTimeout: conf.ApiTimeout,
			ReadTimeout:       conf.ApiTimeout,
			WriteTimeout:      conf.ApiTimeout,
			IdleTimeout:       conf.ApiTimeout,
		}
		log.WithField("address", conf.ApiListenAddress).Info("Starting HTTP server")
		go shutdownOnError(srv.ListenAndServe, triggerShutdown, "HTTP server failed")
	}

	// tcp
	if conf.TcpListenAddress != "" {
		tcpl := pointlistener.TCPLineProtocolListener{
			Sink:    queue,
			Address: conf.TcpListenAddress,
			Log:     log.WithField("component", "tcp"),
			Metrics: m,
		}
		log.WithField("address", conf.TcpListenAddress).Info("Starting TCP listener")
		go shutdownOnError(tcpl.Listen, triggerShutdown, "TCP listener failed")
	}

	// udp
	if conf.UdpListenAddress != "" {
		udpl := pointlistener.UDPLineProtocolListener{
			Sink:    queue,
			Address: conf.UdpListenAddress,
			Log:     log.WithField("component", "udp"),
			Metrics: m,
		}
		log.WithField("address", conf.UdpListenAddress).Info("Starting UDP listener")
		go shutdownOnError(udpl.Listen, triggerShutdown, "UDP listener failed")
	}

	timerFlush := time.NewTicker(conf.FlushInterval)
	defer timerFlush.Stop()

	log.WithFields(log.Fields{
		"interval": conf.Sampling.IntervalDuration,
		"workers":  conf.Sampling.Workers,
	}).Info("Ready")

LoopMain:
	for {
		select {
		case <-timerFlush.C:
			flushQueue(queue, db, conf.IngestionWorkerCount, conf.IngestBatchSize)
			expire(db, conf.Retention, m)
			m.SetStored(db.Len())
		case <-shutdown:
			break LoopMain
		}
	}

	log.Info("Flushing buffers")
	flushQueue(queue, db, conf.IngestionWorkerCount, conf.IngestBatchSize)

	log.WithField("measurements", db.Len()).Info("Terminating")
}

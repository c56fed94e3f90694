package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

// gracefulShutdown waits for a SIGINT or SIGTERM signal
// when a signal was received, it closes the shutdown channel
// after the timeout, it will force a shutdown
func gracefulShutdown(shutdown func(), timeout time.Duration) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	<-sigs

	log.Warning("Received shutdown signal")
	shutdown()
	time.Sleep(timeout)
	log.Fatal("Graceful shutdown timed out")
}

// shutdownOnError calls the function f, which should never return in normal operation
// when it does, shutdownOnError logs the error and triggers a shutdown
func shutdownOnError(f func() error, shutdown func(), message string) {
	err := f()

	log.WithError(err).Warning(message)
	shutdown()
}

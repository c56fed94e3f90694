package main

import (
	log "github.com/sirupsen/logrus"
)

// configureLogging applies the logging section of the configuration to the standard logger
func configureLogging(conf Configuration) {
	level, err := log.ParseLevel(conf.Logging.Level)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	if conf.Logging.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

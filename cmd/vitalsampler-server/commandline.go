package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
)

type CommandLineOptions struct {
	ConfigPath string `short:"c" long:"config" description:"configuration file"`

	Profile     string `long:"profile" description:"the type of profile to record (cpu, mem, mutex, block, thread, trace)"`
	ProfilePath string `long:"profilepath" description:"path for the profile"`
}

func readCommandLineOptions() CommandLineOptions {
	opts := CommandLineOptions{}
	_, err := flags.Parse(&opts)

	switch errt := err.(type) {
	case *flags.Error:
		if errt.Type == flags.ErrHelp {
			os.Exit(0)
		}
	}

	if err != nil {
		log.WithError(err).Fatal("could not parse command line arguments")
	}

	return opts
}

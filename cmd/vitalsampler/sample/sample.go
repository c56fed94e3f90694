package sample

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/sampler"
	"github.com/martin2250/vitalsampler/util"
)

// timeLayout is used for --start without a zone and for printing
const timeLayout = "2006-01-02T15:04:05"

var sampleflags = struct {
	input    string
	start    string
	interval time.Duration
	order    string
	workers  int
}{}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Resample measurements from a line protocol file",
		Long: `
This command reads measurements in line protocol format
(channel:temp|35.79|1483437885) from a file or stdin and prints
the last measurement of every interval for each channel.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&sampleflags.input, "input", "i", "", "path to input file, stdin if empty")
	cmd.Flags().StringVarP(&sampleflags.start, "start", "s", "", "start of sampling (RFC3339 or 2006-01-02T15:04:05 in UTC), defaults to the interval before the first measurement")
	cmd.Flags().DurationVarP(&sampleflags.interval, "interval", "d", sampler.DefaultIntervalDuration, "interval duration")
	cmd.Flags().StringVarP(&sampleflags.order, "order", "o", "TEMP,SPO2,HR", "order in which channels are printed")
	cmd.Flags().IntVarP(&sampleflags.workers, "workers", "w", 1, "number of channels processed in parallel")

	return cmd
}

// parseStart accepts RFC3339 or a zoneless time interpreted as UTC
func parseStart(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(timeLayout, s)
}

// readMeasurements reads every valid measurement from r
func readMeasurements(r io.Reader) ([]sampler.Measurement, error) {
	q := ingest.NewQueue()

	accepted, rejected, err := ingest.ParseLines(r, q, logrus.StandardLogger())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"accepted": accepted, "rejected": rejected}).Debug("read input")

	return q.Drain(0), nil
}

func run(cmd *cobra.Command, args []string) error {
	order, err := ParseOrder(sampleflags.order)
	if err != nil {
		return err
	}

	s, err := sampler.New(sampler.Options{
		IntervalDuration: sampleflags.interval,
		Workers:          sampleflags.workers,
	})
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if sampleflags.input != "" {
		if stat, err := os.Stat(sampleflags.input); os.IsNotExist(err) {
			return errors.New("input points to a nonexisting file")
		} else if err == nil && stat.IsDir() {
			return errors.New("input points to a directory")
		}

		f, err := os.Open(sampleflags.input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	measurements, err := readMeasurements(r)
	if err != nil {
		return err
	}

	var start time.Time
	if sampleflags.start != "" {
		start, err = parseStart(sampleflags.start)
		if err != nil {
			return err
		}
	} else if len(measurements) > 0 {
		first := measurements[0].Time
		for _, m := range measurements[1:] {
			if m.Time.Before(first) {
				first = m.Time
			}
		}
		start = util.GridStart(first, sampleflags.interval)
	}

	series, err := s.Sample(start, measurements)
	if err != nil {
		return err
	}

	return Print(cmd.OutOrStdout(), series, order)
}

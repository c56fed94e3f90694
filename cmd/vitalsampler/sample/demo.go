package sample

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/martin2250/vitalsampler/sampler"
)

func demoAt(hour, min, sec int) time.Time {
	return time.Date(2017, 1, 3, hour, min, sec, 0, time.UTC)
}

// demoMeasurements is a short, unsorted recording of two channels
var demoMeasurements = []sampler.Measurement{
	{Time: demoAt(10, 4, 45), Channel: sampler.TEMP, Value: 35.79},
	{Time: demoAt(10, 1, 18), Channel: sampler.SPO2, Value: 98.78},
	{Time: demoAt(10, 9, 7), Channel: sampler.TEMP, Value: 35.01},
	{Time: demoAt(10, 3, 34), Channel: sampler.SPO2, Value: 96.49},
	{Time: demoAt(10, 2, 1), Channel: sampler.TEMP, Value: 35.82},
	{Time: demoAt(10, 5, 0), Channel: sampler.SPO2, Value: 97.17},
	{Time: demoAt(10, 5, 1), Channel: sampler.SPO2, Value: 95.08},
}

func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Resample a built-in example recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := sampler.Sample(demoAt(10, 0, 0), demoMeasurements)
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), series, DefaultOrder)
		},
	}
}

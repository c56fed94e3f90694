package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/martin2250/vitalsampler/cmd/vitalsampler/sample"
)

var rootCmd = &cobra.Command{
	Use:   "vitalsampler",
	Short: "Resample vital sign measurements onto a fixed grid",
}

func init() {
	rootCmd.InitDefaultHelpCmd()

	rootCmd.AddCommand(sample.NewCommand())
	rootCmd.AddCommand(sample.NewDemoCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

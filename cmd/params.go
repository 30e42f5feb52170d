package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ising-sim/ising-sim/sim/params"
)

var paramsOut string // Destination of the parameter record ("-" = stdout)

// paramsCmd writes a parameter record that `run --params` can consume.
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Write a parameter record (Net Size, J, B, iterations, repeats)",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		p := flagSettings.Params()
		if paramsOut == "-" {
			if err := p.Write(os.Stdout); err != nil {
				logrus.Fatalf("Writing parameter record: %v", err)
			}
			return
		}
		if err := params.Save(paramsOut, p); err != nil {
			logrus.Fatalf("Writing parameter record: %v", err)
		}
		logrus.Infof("Wrote parameter record %s", paramsOut)
	},
}

func init() {
	addModelFlags(paramsCmd)
	paramsCmd.Flags().StringVar(&paramsOut, "out", params.DefaultFileName, "Output file (\"-\" for stdout)")
}

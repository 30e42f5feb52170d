package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/output"
)

var (
	showNetSize int     // Side length of the snapshot
	showJ       float64 // Coupling for the reported energy
	showB       float64 // Field for the reported energy
)

// showCmd prints a binary snapshot as text together with its observables.
var showCmd = &cobra.Command{
	Use:   "show <spins_N.bin>",
	Short: "Print a lattice snapshot and its energy and magnetization",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if showNetSize <= 0 {
			logrus.Fatalf("net size must be > 0, got %d", showNetSize)
		}
		grid, err := output.LoadGrid(args[0], showNetSize)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Println("Model grid:")
		if err := output.WriteGridText(os.Stdout, grid, showNetSize, showNetSize); err != nil {
			logrus.Fatalf("%v", err)
		}
		mean := sim.AvgMagnetism(grid)
		fmt.Printf("Energy        : %f\n", sim.Energy(grid, sim.Coupling{J: showJ, B: showB}, showNetSize))
		fmt.Printf("Magnetization : %f (physical %f)\n", mean, sim.PhysicalMagnetization(mean))
	},
}

func init() {
	d := DefaultRunSettings()
	showCmd.Flags().IntVar(&showNetSize, "net-size", d.NetSize, "Lattice side length of the snapshot")
	showCmd.Flags().Float64Var(&showJ, "J", d.J, "Coupling constant J")
	showCmd.Flags().Float64Var(&showB, "B", d.B, "External field B")
}

// Package cmd - sweep command
package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-tem/internal/logging"
	"github.com/edp1096/toy-tem/pkg/analysis"
	"github.com/edp1096/toy-tem/pkg/deck"
	"github.com/edp1096/toy-tem/pkg/tem"
	"github.com/edp1096/toy-tem/pkg/util"
)

var plotFile string

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep <deck>",
	Short: "Sweep one capacitance entry and track the coupling coefficient",
	Long: `Run the deck's .sweep command: step the named capacitance entry
through its range, recompute the coupling coefficient at every point,
and print the trajectory. Singular points are skipped with a warning.

Examples:
  tem sweep examples/mutual_sweep.cap
  tem sweep examples/mutual_sweep.cap --plot coupling.png`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&plotFile, "plot", "o", "", "write an image of |k| over the sweep (png, svg, pdf)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	// 1. Open and read deck
	fmt.Printf("[1] Reading deck file: %s\n", args[0])
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading deck file: %w", err)
	}

	// 2. Parse deck
	fmt.Println("\n[2] Parsing deck")
	d, err := deck.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parsing deck: %w", err)
	}
	fmt.Printf("Deck title: %s\n", d.Title)

	// 3. Set up sweep
	s, err := analysis.NewSweep(d)
	if err != nil {
		return err
	}
	sw := d.Sweep
	fmt.Printf("\n[3] Sweeping %s %s over [%s, %s] F, %d points\n",
		s.TargetName(), sw.Scale,
		util.FormatScientific(sw.Start), util.FormatScientific(sw.Stop), sw.Points)

	// 4. Run sweep
	fmt.Println("\n[4] Executing sweep")
	if err := s.Execute(); err != nil {
		return err
	}

	// 5. Print trajectory
	results := s.GetResults()
	values := results["SWEEP"]
	ks := results["K"]

	fmt.Printf("\n[5] Sweep results (%d points):\n", len(values))
	fmt.Printf("%-15s  %-14s  %s\n", s.TargetName()+" (F)", "k", "band")
	fmt.Println("---------------------------------------------")
	for n := range values {
		band := tem.Classify(ks[n]).String()
		if math.IsNaN(ks[n]) {
			band = "n/a"
		}
		fmt.Printf("%-15s  %-14s  %s\n",
			util.FormatScientific(values[n]), util.FormatScientific(ks[n]), band)
	}

	if plotFile != "" {
		if err := s.SavePlot(plotFile); err != nil {
			return err
		}
		logging.Sugar.Debugf("plot saved to %s", plotFile)
		fmt.Printf("\nPlot written to %s\n", plotFile)
	}

	return nil
}

// Package cmd provides the CLI commands for tem.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-tem/internal/logging"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tem",
	Short: "Coupling coefficient calculator for coupled conductors",
	Long: `tem derives the inductance matrix of a coupled-conductor pair from
its capacitance matrix under the TEM approximation, [L] = mu0*eps0*[C]^-1,
and reports the mutual coupling coefficient k = M / sqrt(L11*L22).

Examples:
  tem compute
  tem compute examples/microstrip3.cap
  tem compute --pair 2,3 examples/microstrip3.cap
  tem sweep examples/mutual_sweep.cap --plot coupling.png`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	cfg := logging.DefaultConfig()
	if verbose {
		cfg.Level = "debug"
	}
	if err := logging.Initialize(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tem version 0.1.0")
	},
}

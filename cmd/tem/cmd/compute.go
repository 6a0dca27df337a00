// Package cmd - compute command
package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-tem/internal/logging"
	"github.com/edp1096/toy-tem/pkg/deck"
	"github.com/edp1096/toy-tem/pkg/matrix"
	"github.com/edp1096/toy-tem/pkg/tem"
	"github.com/edp1096/toy-tem/pkg/util"
)

var pairFlag string

// exampleDeck is used when no deck file is given.
const exampleDeck = `* Three coupled microstrip conductors (field solver extraction)
c11 1 1 1.25e-10
c12 1 2 -4.90e-16
c13 1 3 -1.25e-10
c22 2 2 1.23e-10
c23 2 3 -1.22e-10
.pair 1 2
`

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute [deck]",
	Short: "Compute the coupling coefficient for a capacitance deck",
	Long: `Invert the deck's 2x2 capacitance matrix, scale by mu0*eps0 to get
the TEM inductance matrix, and report the coupling coefficient with an
interpretation of its strength.

Without a deck file the built-in microstrip example is used.

Examples:
  tem compute
  tem compute examples/microstrip3.cap
  tem compute --pair 2,3 examples/microstrip3.cap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&pairFlag, "pair", "p", "", "conductor pair to report, e.g. 1,2 (overrides .pair)")
}

func runCompute(cmd *cobra.Command, args []string) error {
	// 1. Open and read deck
	var content string
	if len(args) > 0 {
		fmt.Printf("[1] Reading deck file: %s\n", args[0])
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading deck file: %w", err)
		}
		content = string(raw)
	} else {
		fmt.Println("[1] No deck file given, using the built-in example")
		content = exampleDeck
	}

	// 2. Parse deck
	fmt.Println("\n[2] Parsing deck")
	d, err := deck.Parse(content)
	if err != nil {
		return fmt.Errorf("parsing deck: %w", err)
	}
	if pairFlag != "" {
		pair, err := parsePairFlag(pairFlag)
		if err != nil {
			return err
		}
		d.Pair = pair
	}
	fmt.Printf("Deck title: %s\n", d.Title)
	fmt.Printf("Capacitance entries: %d, conductors: %d\n", len(d.Entries), d.N)
	logging.Sugar.Debugf("reporting pair (%d,%d)", d.Pair[0], d.Pair[1])

	// 3. Assemble pair matrix
	c, err := d.PairMatrix()
	if err != nil {
		return err
	}
	i, j := d.Pair[0], d.Pair[1]
	fmt.Printf("\n[3] Capacitance matrix for pair (%d,%d) [F]:\n", i, j)
	fmt.Printf("C%d%d = %s  C%d%d = %s\n", i, i, util.FormatScientific(c[0][0]), i, j, util.FormatScientific(c[0][1]))
	fmt.Printf("C%d%d = %s  C%d%d = %s\n", j, i, util.FormatScientific(c[1][0]), j, j, util.FormatScientific(c[1][1]))

	// 4. Extract inductances
	res, err := tem.Extract(c)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			fmt.Println("\nError: capacitance matrix is singular and cannot be inverted.")
			return nil
		}
		return err
	}

	fmt.Println("\n[4] TEM consistency check:")
	fmt.Printf("mu0*eps0 = %.17e\n", res.MuEps)
	fmt.Printf("1/c^2    = %.17e\n", res.InvC2)

	for _, w := range res.Warnings {
		fmt.Printf("\nWarning: %s\n", w)
	}

	// 5. Report
	fmt.Println("\n[5] Results:")
	fmt.Printf("Self-inductance of conductor %d (L11) = %s H (%s)\n",
		i, util.FormatScientific(res.L11), util.FormatValueFactor(res.L11, "H"))
	fmt.Printf("Self-inductance of conductor %d (L22) = %s H (%s)\n",
		j, util.FormatScientific(res.L22), util.FormatValueFactor(res.L22, "H"))
	fmt.Printf("Mutual inductance (M) = %s H (%s)\n",
		util.FormatScientific(res.M), util.FormatValueFactor(res.M, "H"))
	fmt.Printf("Coupling coefficient (k) = %s\n", util.FormatScientific(res.K))

	fmt.Printf("\nInterpretation: %s\n", tem.Classify(res.K).Interpretation())

	if math.Abs(res.K) > 1 {
		fmt.Println("\nWarning: |k| > 1, which is physically impossible.")
		fmt.Println("This suggests an error in the data or calculations.")
	}

	return nil
}

func parsePairFlag(s string) ([2]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("invalid pair %q, want i,j", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid pair index: %v", err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid pair index: %v", err)
	}
	if a < 1 || b < 1 {
		return [2]int{}, fmt.Errorf("conductor indices start at 1")
	}
	if a == b {
		return [2]int{}, fmt.Errorf("pair indices must name two different conductors")
	}
	return [2]int{a, b}, nil
}

package main

import (
	"fmt"
	"log"
	"math"

	"github.com/edp1096/toy-tem/pkg/analysis"
	"github.com/edp1096/toy-tem/pkg/deck"
	"github.com/edp1096/toy-tem/pkg/tem"
	"github.com/edp1096/toy-tem/pkg/util"
)

func buildDeck() (*deck.Deck, error) {
	// Edge-coupled pair: the mutual capacitance grows as the gap closes.
	input := `Edge coupled pair, shrinking gap
c11 1 1 1.25e-10
c22 2 2 1.23e-10
cm 1 2 -0.5p
.sweep cm DEC 25 -0.5p -110p
`
	return deck.Parse(input)
}

func main() {
	fmt.Print("===== Edge Coupled Pair Example =====\n\n")

	fmt.Println("Building deck...")
	d, err := buildDeck()
	if err != nil {
		log.Fatalf("error building deck: %v", err)
	}

	fmt.Println("Deck information:")
	fmt.Printf("  Title: %s\n", d.Title)
	fmt.Printf("  Entries: %d\n\n", len(d.Entries))

	fmt.Println("Setting up capacitance sweep...")
	sweep, err := analysis.NewSweep(d)
	if err != nil {
		log.Fatalf("error setting up sweep: %v", err)
	}

	fmt.Println("Running sweep...")
	if err := sweep.Execute(); err != nil {
		log.Fatalf("error running sweep: %v", err)
	}
	fmt.Println()

	results := sweep.GetResults()

	fmt.Println("Sweep Results:")
	fmt.Print("==============\n\n")

	points := len(results["SWEEP"])
	fmt.Printf("Number of sweep points: %d\n\n", points)

	fmt.Println("cm(pF)        M(nH)        |k|          band")
	fmt.Println("--------------------------------------------------")

	for i := range points {
		cm := results["SWEEP"][i]
		m := results["M"][i]
		k := results["K"][i]
		fmt.Printf("%8.3f     %9.4f     %s     %s\n", cm*1e12, m*1e9, util.FormatMagnitude(math.Abs(k)), tem.Classify(k))
	}

	fmt.Println("\nCoupling Analysis:")

	strongIdx := -1
	for i := range points {
		if tem.Classify(results["K"][i]) == tem.BandStrong {
			strongIdx = i
			break
		}
	}
	if strongIdx >= 0 {
		fmt.Printf("  Coupling turns strong at cm = %.3f pF\n", results["SWEEP"][strongIdx]*1e12)
	}

	maxK := 0.0
	maxIdx := 0
	for i := range points {
		if math.Abs(results["K"][i]) > math.Abs(maxK) {
			maxK = results["K"][i]
			maxIdx = i
		}
	}
	fmt.Printf("  Maximum coupling: k = %.6e at cm = %.3f pF\n", maxK, results["SWEEP"][maxIdx]*1e12)

	fmt.Println("\nDone!")
}

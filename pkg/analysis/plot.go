package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot writes |k| against the swept capacitance. The image format
// follows the file extension (png, svg, pdf).
func (s *Sweep) SavePlot(path string) error {
	sweep := s.results["SWEEP"]
	ks := s.results["K"]
	if len(sweep) == 0 {
		return fmt.Errorf("no sweep results to plot, run Execute first")
	}

	pts := make(plotter.XYs, 0, len(sweep))
	for i := range sweep {
		if math.IsNaN(ks[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: sweep[i], Y: math.Abs(ks[i])})
	}
	if len(pts) == 0 {
		return fmt.Errorf("no finite coupling values to plot")
	}

	p := plot.New()
	p.Title.Text = s.dk.Title
	p.X.Label.Text = fmt.Sprintf("%s (F)", s.target.Name)
	p.Y.Label.Text = "|k|"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building plot line: %v", err)
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %v", err)
	}
	return nil
}

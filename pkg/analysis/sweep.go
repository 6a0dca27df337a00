package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/edp1096/toy-tem/internal/logging"
	"github.com/edp1096/toy-tem/pkg/deck"
	"github.com/edp1096/toy-tem/pkg/matrix"
	"github.com/edp1096/toy-tem/pkg/tem"
)

// Sweep recomputes the coupling coefficient while one deck entry steps
// through a range of capacitance values. Points that fail to invert
// are recorded as NaN and skipped.
type Sweep struct {
	dk      *deck.Deck
	param   *deck.SweepParam
	target  *deck.Entry
	values  []float64
	results map[string][]float64
}

func NewSweep(d *deck.Deck) (*Sweep, error) {
	if d.Sweep == nil {
		return nil, fmt.Errorf("deck has no .sweep command")
	}

	target := d.FindEntry(d.Sweep.Target)
	if target == nil {
		return nil, fmt.Errorf("sweep target %s is not an entry in the deck", d.Sweep.Target)
	}

	s := &Sweep{
		dk:      d,
		param:   d.Sweep,
		target:  target,
		results: make(map[string][]float64),
	}

	if err := s.generatePoints(); err != nil {
		return nil, err
	}
	return s, nil
}

// TargetName returns the name of the swept entry.
func (s *Sweep) TargetName() string {
	return s.target.Name
}

// Points returns the capacitance values the sweep visits.
func (s *Sweep) Points() []float64 {
	return s.values
}

func (s *Sweep) generatePoints() error {
	start, stop := s.param.Start, s.param.Stop
	s.values = make([]float64, s.param.Points)

	if s.param.Points == 1 {
		s.values[0] = start
		return nil
	}

	switch s.param.Scale {
	case "DEC", "OCT":
		// Mutual capacitances are negative, so the log scale runs on
		// magnitudes and the sign is put back afterwards.
		if start == 0 || stop == 0 || (start < 0) != (stop < 0) {
			return fmt.Errorf("%s sweep needs nonzero start and stop of the same sign", s.param.Scale)
		}
		sign := 1.0
		if start < 0 {
			sign = -1.0
		}
		base := 10.0
		logOf := math.Log10
		if s.param.Scale == "OCT" {
			base = 2.0
			logOf = math.Log2
		}
		logStart := logOf(math.Abs(start))
		logStop := logOf(math.Abs(stop))
		step := (logStop - logStart) / float64(s.param.Points-1)
		for i := range s.param.Points {
			s.values[i] = sign * math.Pow(base, logStart+float64(i)*step)
		}

	case "LIN":
		step := (stop - start) / float64(s.param.Points-1)
		for i := range s.param.Points {
			s.values[i] = start + float64(i)*step
		}

	default:
		return fmt.Errorf("invalid sweep scale: %s", s.param.Scale)
	}

	return nil
}

func (s *Sweep) Execute() error {
	base, err := s.dk.PairMatrix()
	if err != nil {
		return err
	}

	row, col, ok := s.targetPosition()
	if !ok {
		return fmt.Errorf("sweep target %s does not touch pair (%d,%d)",
			s.target.Name, s.dk.Pair[0], s.dk.Pair[1])
	}

	for _, value := range s.values {
		c := base
		c[row][col] = value
		if row != col {
			c[col][row] = value
		}

		res, err := tem.Extract(c)
		if err != nil {
			if !errors.Is(err, matrix.ErrSingular) {
				return fmt.Errorf("at %s = %g: %w", s.target.Name, value, err)
			}
			logging.Sugar.Warnf("skipping %s = %g: %v", s.target.Name, value, err)
			s.storePoint(value, math.NaN(), math.NaN(), math.NaN(), math.NaN())
			continue
		}
		for _, w := range res.Warnings {
			logging.Sugar.Warnf("%s = %g: %s", s.target.Name, value, w)
		}
		s.storePoint(value, res.K, res.L11, res.L22, res.M)
	}

	return nil
}

// targetPosition maps the swept entry's conductor indices onto the
// reported pair's 2x2 positions.
func (s *Sweep) targetPosition() (row, col int, ok bool) {
	pos := func(idx int) int {
		switch idx {
		case s.dk.Pair[0]:
			return 0
		case s.dk.Pair[1]:
			return 1
		}
		return -1
	}
	row, col = pos(s.target.I), pos(s.target.J)
	return row, col, row >= 0 && col >= 0
}

func (s *Sweep) storePoint(value, k, l11, l22, m float64) {
	s.results["SWEEP"] = append(s.results["SWEEP"], value)
	s.results["K"] = append(s.results["K"], k)
	s.results["L11"] = append(s.results["L11"], l11)
	s.results["L22"] = append(s.results["L22"], l22)
	s.results["M"] = append(s.results["M"], m)
}

func (s *Sweep) GetResults() map[string][]float64 {
	return s.results
}

package tem

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/edp1096/toy-tem/internal/consts"
	"github.com/edp1096/toy-tem/pkg/matrix"
)

// ErrNotFinite is returned when a capacitance entry is NaN or infinite.
var ErrNotFinite = errors.New("capacitance entry is not finite")

// Mutual-term symmetry tolerance. L12 and L21 come out of the same
// inversion, so anything past 1e-8 relative means the input itself was
// asymmetric.
const (
	symAbsTol = 1e-24
	symRelTol = 1e-8
)

// Result holds the inductance values derived from one 2x2 capacitance
// matrix under the TEM approximation. Built once per call, never
// cached.
type Result struct {
	K   float64 // coupling coefficient, M / sqrt(L11*L22)
	L11 float64 // self-inductance of conductor 1 (H)
	L22 float64 // self-inductance of conductor 2 (H)
	L12 float64 // mutual term from row 1 (H)
	L21 float64 // mutual term from row 2 (H)
	M   float64 // mutual inductance, taken from L12 (H)

	MuEps float64 // mu0*eps0 product used for scaling
	InvC2 float64 // 1/c^2, the cross-check value

	Warnings []string
}

// Extract inverts the capacitance matrix c (farads) and scales it by
// mu0*eps0 to obtain the TEM inductance matrix, [L] = mu0*eps0*[C]^-1.
// A singular matrix yields an error satisfying
// errors.Is(err, matrix.ErrSingular) and no result. Asymmetric mutual
// terms only append a warning; L12 is used as M regardless. k is not
// range-checked here, and a non-positive L11*L22 product propagates as
// NaN.
func Extract(c [2][2]float64) (*Result, error) {
	res := &Result{
		MuEps: consts.MU0 * consts.EPSILON0,
		InvC2: 1 / (consts.LIGHTSPEED * consts.LIGHTSPEED),
	}

	for i := range c {
		for j := range c[i] {
			if math.IsNaN(c[i][j]) || math.IsInf(c[i][j], 0) {
				return nil, fmt.Errorf("entry C%d%d: %w", i+1, j+1, ErrNotFinite)
			}
		}
	}

	mat, err := matrix.NewMatrix(2)
	if err != nil {
		return nil, fmt.Errorf("building capacitance matrix: %v", err)
	}
	defer mat.Destroy()

	for i := range c {
		for j := range c[i] {
			mat.AddElement(i+1, j+1, c[i][j])
		}
	}

	inverse, err := mat.Invert()
	if err != nil {
		return nil, fmt.Errorf("inverting capacitance matrix: %w", err)
	}

	res.L11 = res.MuEps * inverse[0][0]
	res.L12 = res.MuEps * inverse[0][1]
	res.L21 = res.MuEps * inverse[1][0]
	res.L22 = res.MuEps * inverse[1][1]
	res.M = res.L12

	if !scalar.EqualWithinAbsOrRel(res.L12, res.L21, symAbsTol, symRelTol) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"mutual inductances L12 and L21 are not equal: L12 = %g, L21 = %g",
			res.L12, res.L21))
	}

	res.K = res.M / math.Sqrt(res.L11*res.L22)

	return res, nil
}

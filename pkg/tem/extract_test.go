package tem

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/edp1096/toy-tem/pkg/matrix"
)

// Two coupled microstrip conductors, extracted field-solver values.
var refMatrix = [2][2]float64{
	{1.25e-10, -4.90e-16},
	{-4.90e-16, 1.23e-10},
}

func TestExtractReference(t *testing.T) {
	res, err := Extract(refMatrix)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"K", res.K, 3.951741e-06},
		{"L11", res.L11, 8.901200e-08},
		{"L22", res.L22, 9.045935e-08},
		{"M", res.M, 3.546007e-13},
	}
	for _, c := range checks {
		if !scalar.EqualWithinAbsOrRel(c.got, c.want, 0, 1e-6) {
			t.Errorf("%s = %.6e, want %.6e", c.name, c.got, c.want)
		}
	}

	if res.M != res.L12 {
		t.Errorf("M = %g, want L12 = %g", res.M, res.L12)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestExtractConstants(t *testing.T) {
	res, err := Extract(refMatrix)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	// mu0*eps0 and 1/c^2 disagree only in eps0's rounded mantissa.
	if !scalar.EqualWithinAbsOrRel(res.MuEps, res.InvC2, 0, 1e-9) {
		t.Errorf("MuEps = %.17e and InvC2 = %.17e differ beyond 1e-9", res.MuEps, res.InvC2)
	}
}

func TestExtractRoundTrip(t *testing.T) {
	res, err := Extract(refMatrix)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	// [L][C] must equal mu0*eps0 times the identity.
	l := [2][2]float64{{res.L11, res.L12}, {res.L21, res.L22}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sum := 0.0
			for n := 0; n < 2; n++ {
				sum += l[i][n] * refMatrix[n][j]
			}
			want := 0.0
			if i == j {
				want = res.MuEps
			}
			if !scalar.EqualWithinAbsOrRel(sum, want, res.MuEps*1e-9, 1e-9) {
				t.Errorf("(L*C)[%d][%d] = %g, want %g", i, j, sum, want)
			}
		}
	}
}

func TestExtractMatchesDense(t *testing.T) {
	c := [2][2]float64{
		{9.4e-11, -2.1e-11},
		{-2.1e-11, 8.7e-11},
	}

	res, err := Extract(c)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	dense := mat.NewDense(2, 2, []float64{c[0][0], c[0][1], c[1][0], c[1][1]})
	var inv mat.Dense
	if err := inv.Inverse(dense); err != nil {
		t.Fatalf("dense inverse: %v", err)
	}
	l11 := res.MuEps * inv.At(0, 0)
	l22 := res.MuEps * inv.At(1, 1)
	m := res.MuEps * inv.At(0, 1)
	want := m / math.Sqrt(l11*l22)

	if !scalar.EqualWithinAbsOrRel(res.K, want, 0, 1e-7) {
		t.Errorf("K = %.9e, dense reference %.9e", res.K, want)
	}
}

func TestExtractStrongCoupling(t *testing.T) {
	c := [2][2]float64{
		{1.25e-10, -9.5e-11},
		{-9.5e-11, 1.23e-10},
	}

	res, err := Extract(c)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !scalar.EqualWithinAbsOrRel(res.K, 7.661539e-01, 0, 1e-6) {
		t.Errorf("K = %.6e, want 7.661539e-01", res.K)
	}
	if Classify(res.K) != BandStrong {
		t.Errorf("Classify(%g) = %v, want strong", res.K, Classify(res.K))
	}
}

func TestExtractSingular(t *testing.T) {
	c := [2][2]float64{
		{1e-10, 1e-10},
		{1e-10, 1e-10},
	}

	if _, err := Extract(c); !errors.Is(err, matrix.ErrSingular) {
		t.Errorf("Extract on singular matrix: got %v, want ErrSingular", err)
	}
}

func TestExtractNotFinite(t *testing.T) {
	tests := []struct {
		name string
		c    [2][2]float64
	}{
		{"nan", [2][2]float64{{math.NaN(), 0}, {0, 1e-10}}},
		{"inf", [2][2]float64{{1e-10, 0}, {math.Inf(1), 1e-10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Extract(tt.c); !errors.Is(err, ErrNotFinite) {
				t.Errorf("got %v, want ErrNotFinite", err)
			}
		})
	}
}

func TestExtractAsymmetricWarns(t *testing.T) {
	c := [2][2]float64{
		{1.25e-10, -4.90e-16},
		{-9.80e-16, 1.23e-10},
	}

	res, err := Extract(c)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "L12") || !strings.Contains(res.Warnings[0], "L21") {
		t.Errorf("warning %q does not name both mutual terms", res.Warnings[0])
	}
	if res.M != res.L12 {
		t.Errorf("M = %g, want L12 = %g even under asymmetry", res.M, res.L12)
	}
}

func TestExtractNegativeDiagonal(t *testing.T) {
	c := [2][2]float64{
		{-1.25e-10, -4.90e-16},
		{-4.90e-16, 1.23e-10},
	}

	res, err := Extract(c)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !math.IsNaN(res.K) {
		t.Errorf("K = %g, want NaN for a negative inductance product", res.K)
	}
}

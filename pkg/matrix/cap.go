package matrix

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"
	"go.uber.org/zap"

	"github.com/edp1096/toy-tem/internal/logging"
)

// ErrSingular is returned when LU factorization hits a zero pivot.
var ErrSingular = errors.New("matrix is singular")

// CapMatrix is a real-valued capacitance system matrix backed by a
// sparse LU solver. Indices are 1-based, as are the rhs and solution
// vectors (length Size+1).
type CapMatrix struct {
	Size   int
	matrix *sparse.Matrix
	config *sparse.Configuration
}

func NewMatrix(size int) (*CapMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &CapMatrix{
		Size:   size,
		matrix: mat,
		config: config,
	}, nil
}

func (m *CapMatrix) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		logging.Warn("matrix index out of bounds",
			zap.Int("i", i), zap.Int("j", j), zap.Int("size", m.Size))
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
}

func (m *CapMatrix) Element(i, j int) float64 {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		logging.Warn("matrix index out of bounds",
			zap.Int("i", i), zap.Int("j", j), zap.Int("size", m.Size))
		return 0
	}
	return m.matrix.GetElement(int64(i), int64(j)).Real
}

func (m *CapMatrix) Clear() {
	m.matrix.Clear()
}

// Factor runs the LU decomposition. A rank-deficient matrix reports
// ErrSingular; the solver's own message (pivot step) is preserved in
// the chain.
func (m *CapMatrix) Factor() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %w: %v", ErrSingular, err)
	}
	return nil
}

// Solve computes x for Ax = rhs against the factored matrix. rhs must
// be 1-based with length Size+1; the returned solution uses the same
// convention. Factor must have succeeded first.
func (m *CapMatrix) Solve(rhs []float64) ([]float64, error) {
	solution, err := m.matrix.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}
	return solution, nil
}

// Invert factors the matrix once and back-substitutes the unit vectors,
// assembling the inverse column by column. The result is 0-based.
func (m *CapMatrix) Invert() ([][]float64, error) {
	if err := m.Factor(); err != nil {
		return nil, err
	}

	inverse := make([][]float64, m.Size)
	for i := range inverse {
		inverse[i] = make([]float64, m.Size)
	}

	rhs := make([]float64, m.Size+1) // 1-based indexing
	for col := 1; col <= m.Size; col++ {
		for i := range rhs {
			rhs[i] = 0
		}
		rhs[col] = 1

		solution, err := m.Solve(rhs)
		if err != nil {
			return nil, err
		}
		for row := 1; row <= m.Size; row++ {
			inverse[row-1][col-1] = solution[row]
		}
	}

	return inverse, nil
}

func (m *CapMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}

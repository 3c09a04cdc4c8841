package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"nleigen/pkg/solver"
)

func TestSolveSPD(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	want := []float64{1, 2, 3}
	b := []float64{4*1 + 1*2, 1*1 + 3*2 + 1*3, 1*2 + 2*3}

	res := solver.Solve(a, b, 1e-12, 0)
	require.True(t, res.Converged)
	require.Len(t, res.X, 3)
	for i := range want {
		assert.InDelta(t, want[i], res.X[i], 1e-8, "x[%d]", i)
	}
}

func TestSolveStallSurfacesError(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	b := []float64{1, 0, 0}

	// One iteration cannot reach an unreachable tolerance; the stall
	// must be reported with its underlying error, not swallowed.
	res := solver.Solve(a, b, 1e-16, 1)
	assert.False(t, res.Converged)
	assert.Error(t, res.Err)
	require.Len(t, res.X, 3, "the best approximation is still returned")
}

func TestSolveDiagonal(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 5})
	res := solver.Solve(a, []float64{4, 10}, 1e-12, 10)
	require.True(t, res.Converged)
	assert.InDelta(t, 2.0, res.X[0], 1e-10)
	assert.InDelta(t, 2.0, res.X[1], 1e-10)
}

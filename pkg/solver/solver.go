// Package solver wraps the conjugate-gradient iterative linear solve used by
// the correction step of the eigenvalue iteration.
package solver

import (
	"github.com/vladimir-ch/iterative"
	"gonum.org/v1/gonum/mat"
)

// Result carries the outcome of one correction solve. Converged reports
// whether the relative residual dropped below the requested tolerance within
// the iteration budget; a false value is a recoverable status, and X still
// holds the best available approximation. Err retains the underlying solver
// error so callers can tell an exhausted iteration budget from a breakdown.
type Result struct {
	X          []float64
	Iterations int
	Residual   float64
	Converged  bool
	Err        error
}

// Solve runs conjugate gradients on a*x = b. The operator is expected to be
// symmetric. A maxIter of zero or less selects the default budget of 2n.
func Solve(a mat.Matrix, b []float64, tol float64, maxIter int) Result {
	n := len(b)
	if maxIter <= 0 {
		maxIter = 2 * n
	}

	ops := iterative.MatrixOps{
		MatVec: func(dst, src []float64) {
			v := mat.NewVecDense(n, dst)
			v.MulVec(a, mat.NewVecDense(n, src))
		},
	}

	res, err := iterative.LinearSolve(ops, b, &iterative.CG{}, iterative.Settings{
		Tolerance:     tol,
		MaxIterations: maxIter,
	})

	out := Result{
		X:          make([]float64, n),
		Iterations: res.Stats.Iterations,
		Residual:   res.Stats.ResidualNorm,
		Converged:  err == nil,
		Err:        err,
	}
	if res.X != nil {
		copy(out.X, res.X)
	}
	return out
}

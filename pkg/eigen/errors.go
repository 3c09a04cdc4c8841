package eigen

import (
	"errors"
	"fmt"
)

// ErrNonPositiveMass reports a non-positive generalized mass quadratic form
// for a candidate eigenvector. It means the problem formulation itself is
// unphysical, so Execute aborts the whole run; match with errors.Is.
var ErrNonPositiveMass = errors.New("eigen: non-positive generalized mass quadratic form")

// WarningKind classifies the recoverable conditions recorded during a run.
type WarningKind int

const (
	// WarnIterationCap marks an eigenpair whose inner loop exceeded the
	// iteration cap before meeting the convergence tolerance. The last
	// estimate is accepted and the run continues.
	WarnIterationCap WarningKind = iota
	// WarnSolverStall marks a correction solve whose residual did not drop
	// below the solver tolerance within its budget. The approximate
	// correction is used anyway.
	WarnSolverStall
)

// Warning records one recoverable condition. Value holds the relative
// eigenvalue change for WarnIterationCap and the solver residual norm for
// WarnSolverStall; Err carries the underlying solver error for
// WarnSolverStall, distinguishing an exhausted iteration budget from a
// breakdown.
type Warning struct {
	Kind      WarningKind
	Index     int
	Iteration int
	Value     float64
	Err       error
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnIterationCap:
		return fmt.Sprintf("eigenpair %d: iteration cap reached after %d iterations, rel. change %g", w.Index, w.Iteration, w.Value)
	case WarnSolverStall:
		msg := fmt.Sprintf("eigenpair %d: correction solve stalled at iteration %d, residual %g", w.Index, w.Iteration, w.Value)
		if w.Err != nil {
			msg += fmt.Sprintf(": %v", w.Err)
		}
		return msg
	default:
		return fmt.Sprintf("eigenpair %d: unknown warning", w.Index)
	}
}

package consts

const (
	EigenTolerance  = 1e-12 // relative eigenvalue change accepted as converged
	MaxIterations   = 20    // correction iterations per eigenpair
	SolverTolerance = 1e-12 // relative residual target for the CG correction solve
)

// Package eigen extracts the lowest eigenpairs of a nonlinear generalized
// eigenvalue problem with polynomially frequency-dependent mass, one pair at
// a time, using a Jacobi-Davidson correction iteration with deflation
// against the modes already found.
package eigen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"nleigen/internal/consts"
	"nleigen/pkg/operator"
	"nleigen/pkg/problem"
	"nleigen/pkg/solver"
)

// Config bundles the convergence parameters of one run. The zero value is
// usable but converges nothing; start from DefaultConfig.
type Config struct {
	Tolerance           float64 // relative eigenvalue change accepted as converged
	MaxIterations       int     // inner correction iterations per eigenpair
	SolverTolerance     float64 // relative residual target of the correction solve
	SolverMaxIterations int     // correction solve budget, 0 selects 2n
	InitialOmega        float64 // frequency seed for the first eigenpair
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() Config {
	return Config{
		Tolerance:       consts.EigenTolerance,
		MaxIterations:   consts.MaxIterations,
		SolverTolerance: consts.SolverTolerance,
	}
}

// Engine owns the state of one extraction run: the read-only problem, the
// solution arenas, the deflation basis, and preallocated scratch operators.
// It is not safe for concurrent use; one run per engine.
type Engine struct {
	prob *problem.Problem
	cfg  Config

	omega    []float64  // accepted (or capped) frequencies, one per index
	phi      *mat.Dense // mode shapes, one column per index; nil when r == 0
	basis    *Basis
	accepted int

	warnings []Warning

	// scratch, reused every inner iteration
	keff *mat.Dense
	kn   *mat.Dense
	mn   *mat.Dense
	u    *mat.VecDense // current candidate
	rk   *mat.VecDense // residual
}

// New builds an engine for p. The problem must not be mutated for the
// lifetime of the engine.
func New(p *problem.Problem, cfg Config) *Engine {
	e := &Engine{
		prob:  p,
		cfg:   cfg,
		omega: make([]float64, p.NumEigen),
		basis: NewBasis(p),
		keff:  mat.NewDense(p.Dim, p.Dim, nil),
		kn:    mat.NewDense(p.Dim, p.Dim, nil),
		mn:    mat.NewDense(p.Dim, p.Dim, nil),
		u:     mat.NewVecDense(p.Dim, nil),
		rk:    mat.NewVecDense(p.Dim, nil),
	}
	if p.NumEigen > 0 {
		e.phi = mat.NewDense(p.Dim, p.NumEigen, nil)
	}
	return e
}

// Omega returns the frequency of each processed eigenpair. Valid entries are
// 0..Accepted()-1.
func (e *Engine) Omega() []float64 { return e.omega }

// Phi returns the mode shape matrix, one column per processed eigenpair,
// each normalized so its generalized mass quadratic form equals one. It is
// nil when zero eigenpairs were requested.
func (e *Engine) Phi() *mat.Dense { return e.phi }

// Accepted returns how many eigenpairs have been processed so far.
func (e *Engine) Accepted() int { return e.accepted }

// Warnings returns the recoverable conditions recorded during the run, in
// the order they occurred.
func (e *Engine) Warnings() []Warning { return e.warnings }

// Execute runs the extraction for all requested eigenpairs, strictly in
// order. It returns nil on completion, possibly with warnings recorded, and
// an error wrapping ErrNonPositiveMass when the problem turns out
// unphysical, in which case the run stops at the offending index.
func (e *Engine) Execute() error {
	for ie := 0; ie < e.prob.NumEigen; ie++ {
		if err := e.solveIndex(ie); err != nil {
			return err
		}
		e.accepted = ie + 1
	}
	return nil
}

// solveIndex runs the inner correction loop for eigenpair ie:
// seed, deflate, residual, project, solve, correct, Rayleigh quotient,
// normalize, convergence check.
func (e *Engine) solveIndex(ie int) error {
	e.seedOmega(ie)
	e.seedCandidate()

	iter := 0
	for {
		e.basis.Rebuild(ie, e.omega, e.phi)
		if ie > 0 {
			e.basis.OrthogonalizeCandidate(e.u, ie)
			e.ensureCandidate(ie)
		}

		w := e.omega[ie]
		operator.EffectiveStiffness(e.keff, e.prob, w)
		operator.FreqDependentStiffness(e.kn, e.prob, w)
		operator.FreqDependentMass(e.mn, e.prob, w)

		e.basis.SetCurrent(ie, e.u, e.mn)

		// Residual of the effective stiffness, before the operator is
		// deflated.
		e.rk.MulVec(e.keff, e.u)
		e.rk.ScaleVec(-1, e.rk)

		e.basis.ProjectOperator(e.keff, ie)

		res := solver.Solve(e.keff, e.rk.RawVector().Data, e.cfg.SolverTolerance, e.cfg.SolverMaxIterations)
		if !res.Converged {
			e.warnings = append(e.warnings, Warning{
				Kind:      WarnSolverStall,
				Index:     ie,
				Iteration: iter,
				Value:     res.Residual,
				Err:       res.Err,
			})
		}

		du := mat.NewVecDense(e.prob.Dim, res.X)
		e.basis.ProjectVector(du, ie)
		e.u.AddVec(e.u, du)

		ptmp := mat.Inner(e.u, e.mn, e.u)
		if ptmp <= 0 {
			return fmt.Errorf("eigenpair %d: %w: phi'*M*phi = %g", ie, ErrNonPositiveMass, ptmp)
		}
		ptkp := mat.Inner(e.u, e.kn, e.u)
		theta := ptkp / ptmp

		e.u.ScaleVec(1/math.Sqrt(ptmp), e.u)

		conv := theta - e.omega[ie]
		if theta != 0 {
			conv /= theta
		}
		e.omega[ie] = theta
		iter++

		if math.Abs(conv) <= e.cfg.Tolerance {
			break
		}
		if iter > e.cfg.MaxIterations {
			e.warnings = append(e.warnings, Warning{
				Kind:      WarnIterationCap,
				Index:     ie,
				Iteration: iter,
				Value:     conv,
			})
			break
		}
	}

	e.phi.SetCol(ie, e.u.RawVector().Data)
	return nil
}

// seedOmega starts the frequency for index ie from the previously accepted
// value, so the sequence of unknowns is monotone-seeded; the first index
// starts from the configured initial guess.
func (e *Engine) seedOmega(ie int) {
	if ie > 0 {
		e.omega[ie] = e.omega[ie-1]
	} else {
		e.omega[ie] = e.cfg.InitialOmega
	}
}

// seedCandidate starts the candidate from the normalized all-ones vector. A
// zero start would make the first residual vanish and the Rayleigh quotient
// indeterminate.
func (e *Engine) seedCandidate() {
	n := e.prob.Dim
	v := 1 / math.Sqrt(float64(n))
	for i := 0; i < n; i++ {
		e.u.SetVec(i, v)
	}
}

// ensureCandidate reseeds the candidate from canonical basis vectors when
// deflation has annihilated it, keeping the iteration inside the orthogonal
// complement of the accepted modes.
func (e *Engine) ensureCandidate(ie int) {
	const minNorm = 1e-8
	if mat.Norm(e.u, 2) >= minNorm {
		return
	}
	n := e.prob.Dim
	for k := 0; k < n; k++ {
		e.u.Zero()
		e.u.SetVec((ie+k)%n, 1)
		e.basis.OrthogonalizeCandidate(e.u, ie)
		if mat.Norm(e.u, 2) >= minNorm {
			return
		}
	}
}

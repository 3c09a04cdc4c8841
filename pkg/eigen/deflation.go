package eigen

import (
	"gonum.org/v1/gonum/mat"

	"nleigen/pkg/operator"
	"nleigen/pkg/problem"
)

// degenerateNorm is the Euclidean norm below which a deflation candidate is
// considered annihilated and its column left zero.
const degenerateNorm = 1e-14

// Basis holds the deflation directions of the eigenvalue iteration: one
// column per previously accepted mode, plus a working column for the index
// currently being refined. Columns 0..i-1 are the generalized-mass images of
// the accepted modes, sequentially projected against the earlier columns and
// unit-normalized. Projections against a zero (degenerate) column are no-ops.
type Basis struct {
	prob *problem.Problem
	cols []*mat.VecDense

	mlrls *mat.Dense    // scratch for the generalized mass operator
	work  *mat.VecDense // scratch for candidates and operator images
}

// NewBasis allocates a basis with room for p.NumEigen columns.
func NewBasis(p *problem.Problem) *Basis {
	cols := make([]*mat.VecDense, p.NumEigen)
	for i := range cols {
		cols[i] = mat.NewVecDense(p.Dim, nil)
	}
	return &Basis{
		prob:  p,
		cols:  cols,
		mlrls: mat.NewDense(p.Dim, p.Dim, nil),
		work:  mat.NewVecDense(p.Dim, nil),
	}
}

// Rebuild refreshes columns 0..i-1 from the accepted modes. Column is holds
// GeneralizedMass(omega[i], omega[is]) * phi[:,is], orthogonalized against
// columns 0..is-1 and normalized. The basis is rebuilt every inner iteration
// because omega[i] keeps moving while the earlier omegas are fixed.
func (b *Basis) Rebuild(i int, omega []float64, phi *mat.Dense) {
	for is := 0; is < i; is++ {
		operator.GeneralizedMass(b.mlrls, b.prob, omega[i], omega[is])
		b.work.MulVec(b.mlrls, phi.ColView(is))

		b.orthonormalize(b.work, is)
		b.cols[is].CopyVec(b.work)
	}
}

// SetCurrent stores the working column for index i: the image mn*v of the
// current candidate, orthogonalized against columns 0..i-1 and normalized.
// mn must be the frequency-derivative mass operator at the current omega,
// which equals the generalized mass operator taken at equal arguments.
func (b *Basis) SetCurrent(i int, v *mat.VecDense, mn *mat.Dense) {
	b.work.MulVec(mn, v)
	b.orthonormalize(b.work, i)
	b.cols[i].CopyVec(b.work)
}

// OrthogonalizeCandidate removes from v its components along columns 0..i-1,
// enforcing orthogonality of the evolving candidate against the accepted
// modes before the residual is assembled.
func (b *Basis) OrthogonalizeCandidate(v *mat.VecDense, i int) {
	for is := 0; is < i; is++ {
		v.AddScaledVec(v, -mat.Dot(b.cols[is], v), b.cols[is])
	}
}

// ProjectVector removes from v its components along columns 0..i inclusive,
// the working column included. Applied to the correction returned by the
// linear solve.
func (b *Basis) ProjectVector(v *mat.VecDense, i int) {
	for is := 0; is <= i; is++ {
		v.AddScaledVec(v, -mat.Dot(b.cols[is], v), b.cols[is])
	}
}

// ProjectOperator deflates a against columns 0..i inclusive and regularizes
// it: for each unit column c it applies a <- (I-cc')a(I-cc') + cc', which
// leaves the operator symmetric, acts as the identity on the basis, and
// keeps the deflated operator on the orthogonal complement nonsingular for
// the correction solve.
func (b *Basis) ProjectOperator(a *mat.Dense, i int) {
	for is := 0; is <= i; is++ {
		c := b.cols[is]
		if mat.Norm(c, 2) < degenerateNorm {
			continue
		}
		b.work.MulVec(a, c)
		alpha := mat.Dot(c, b.work)
		a.RankOne(a, -1, c, b.work)
		a.RankOne(a, -1, b.work, c)
		a.RankOne(a, alpha+1, c, c)
	}
}

// orthonormalize projects v against columns 0..limit-1 and scales it to unit
// Euclidean norm, zeroing it when degenerate.
func (b *Basis) orthonormalize(v *mat.VecDense, limit int) {
	for el := 0; el < limit; el++ {
		v.AddScaledVec(v, -mat.Dot(b.cols[el], v), b.cols[el])
	}
	nrm := mat.Norm(v, 2)
	if nrm < degenerateNorm {
		v.Zero()
		return
	}
	v.ScaleVec(1/nrm, v)
}

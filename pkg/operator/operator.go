// Package operator assembles the dense frequency-dependent operators of the
// nonlinear eigenvalue problem at given scalar frequency arguments. All
// functions are pure: they write into a caller-preallocated n x n dst and
// read only from the Problem, which guarantees well-formed inputs.
package operator

import (
	"gonum.org/v1/gonum/mat"

	"nleigen/pkg/problem"
)

// EffectiveStiffness assembles K0 - sum_{j=0}^{m-1} w^{j+1} * M_j, the
// operator whose near-null space the correction step solves against.
func EffectiveStiffness(dst *mat.Dense, p *problem.Problem, omega float64) {
	dst.Copy(p.K0)

	var term mat.Dense
	wj := omega // w^(j+1)
	for j := 0; j < p.NumMass; j++ {
		term.Scale(wj, p.Mass[j])
		dst.Sub(dst, &term)
		wj *= omega
	}
}

// FreqDependentStiffness assembles K0 + sum_{j=1}^{m-1} j * w^{j+1} * M_j,
// the numerator operator of the Rayleigh quotient.
func FreqDependentStiffness(dst *mat.Dense, p *problem.Problem, omega float64) {
	dst.Copy(p.K0)

	var term mat.Dense
	wj := omega * omega // w^(j+1)
	for j := 1; j < p.NumMass; j++ {
		term.Scale(float64(j)*wj, p.Mass[j])
		dst.Add(dst, &term)
		wj *= omega
	}
}

// FreqDependentMass assembles M_0 + sum_{j=1}^{m-1} (j+1) * w^j * M_j, the
// denominator operator of the Rayleigh quotient. It equals
// GeneralizedMass(p, w, w).
func FreqDependentMass(dst *mat.Dense, p *problem.Problem, omega float64) {
	dst.Copy(p.Mass[0])

	var term mat.Dense
	wj := omega // w^j
	for j := 1; j < p.NumMass; j++ {
		term.Scale(float64(j+1)*wj, p.Mass[j])
		dst.Add(dst, &term)
		wj *= omega
	}
}

// GeneralizedMass assembles the bilinear mass operator
// sum_{j=0}^{m-1} sum_{k=0}^{j} wa^k * wb^{j-k} * M_j used to build
// deflation vectors between modes at frequencies wa and wb.
func GeneralizedMass(dst *mat.Dense, p *problem.Problem, wa, wb float64) {
	dst.Zero()

	var term mat.Dense
	for j := 0; j < p.NumMass; j++ {
		// c = sum_{k=0}^{j} wa^k * wb^(j-k)
		c := 0.0
		wak := 1.0
		for k := 0; k <= j; k++ {
			wbjk := 1.0
			for l := 0; l < j-k; l++ {
				wbjk *= wb
			}
			c += wak * wbjk
			wak *= wa
		}
		term.Scale(c, p.Mass[j])
		dst.Add(dst, &term)
	}
}

package problem

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Problem is the immutable description of one nonlinear eigenvalue problem
// K(w)*phi = w*M(w)*phi where the mass operator is a polynomial in w:
// K(w) = K0 and M(w) = sum_j w^j * Mass[j]. It is built once, by Parse or
// New, and treated as read-only afterwards.
type Problem struct {
	Dim      int // matrix dimension n
	NumMass  int // number of mass expansion terms m
	NumEigen int // number of requested eigenpairs r

	K0   *mat.Dense   // n x n stiffness matrix, symmetric
	Mass []*mat.Dense // m dense n x n polynomial coefficients, Mass[0] is the baseline
}

// New validates the operators and wraps them into a Problem. The builders in
// pkg/operator rely on these checks and perform none of their own.
func New(k0 *mat.Dense, masses []*mat.Dense, numEigen int) (*Problem, error) {
	if k0 == nil {
		return nil, fmt.Errorf("problem: stiffness matrix is nil")
	}
	n, c := k0.Dims()
	if n != c {
		return nil, fmt.Errorf("problem: stiffness matrix is %dx%d, want square", n, c)
	}
	if len(masses) < 1 {
		return nil, fmt.Errorf("problem: need at least one mass matrix, got %d", len(masses))
	}
	for i, m := range masses {
		if m == nil {
			return nil, fmt.Errorf("problem: mass matrix %d is nil", i)
		}
		mr, mc := m.Dims()
		if mr != n || mc != n {
			return nil, fmt.Errorf("problem: mass matrix %d is %dx%d, want %dx%d", i, mr, mc, n, n)
		}
	}
	if numEigen < 0 || numEigen > n {
		return nil, fmt.Errorf("problem: requested %d eigenpairs for dimension %d", numEigen, n)
	}

	return &Problem{
		Dim:      n,
		NumMass:  len(masses),
		NumEigen: numEigen,
		K0:       k0,
		Mass:     masses,
	}, nil
}

package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"nleigen/pkg/operator"
	"nleigen/pkg/problem"
)

func twoTermProblem(t *testing.T) *problem.Problem {
	t.Helper()
	k0 := mat.NewDense(2, 2, []float64{
		4, 1,
		1, 3,
	})
	m0 := mat.NewDense(2, 2, []float64{
		2, 0,
		0, 1,
	})
	m1 := mat.NewDense(2, 2, []float64{
		0.5, 0,
		0, 0.25,
	})
	p, err := problem.New(k0, []*mat.Dense{m0, m1}, 1)
	require.NoError(t, err)
	return p
}

func assertMatrix(t *testing.T, want []float64, got *mat.Dense) {
	t.Helper()
	r, c := got.Dims()
	require.Equal(t, len(want), r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.InDelta(t, want[i*c+j], got.At(i, j), 1e-14, "entry (%d,%d)", i, j)
		}
	}
}

func TestEffectiveStiffness(t *testing.T) {
	p := twoTermProblem(t)
	dst := mat.NewDense(2, 2, nil)

	// K0 - w*M0 - w^2*M1 at w=2
	operator.EffectiveStiffness(dst, p, 2)
	assertMatrix(t, []float64{
		4 - 4 - 2, 1,
		1, 3 - 2 - 1,
	}, dst)

	// w=0 leaves the bare stiffness
	operator.EffectiveStiffness(dst, p, 0)
	assertMatrix(t, []float64{4, 1, 1, 3}, dst)
}

func TestFreqDependentStiffness(t *testing.T) {
	p := twoTermProblem(t)
	dst := mat.NewDense(2, 2, nil)

	// K0 + 1*w^2*M1 at w=2
	operator.FreqDependentStiffness(dst, p, 2)
	assertMatrix(t, []float64{
		4 + 4*0.5, 1,
		1, 3 + 4*0.25,
	}, dst)

	// The j=1 term grows quadratically in w, pinning the j*w^(j+1)
	// exponent.
	operator.FreqDependentStiffness(dst, p, 3)
	assertMatrix(t, []float64{
		4 + 9*0.5, 1,
		1, 3 + 9*0.25,
	}, dst)
}

func TestFreqDependentMass(t *testing.T) {
	p := twoTermProblem(t)
	dst := mat.NewDense(2, 2, nil)

	// M0 + 2*w*M1 at w=2
	operator.FreqDependentMass(dst, p, 2)
	assertMatrix(t, []float64{
		2 + 4*0.5, 0,
		0, 1 + 4*0.25,
	}, dst)
}

func TestGeneralizedMass(t *testing.T) {
	p := twoTermProblem(t)
	dst := mat.NewDense(2, 2, nil)

	// sum over j of (sum_k wa^k wb^(j-k)) * Mj; for m=2 the j=1
	// coefficient is wa+wb.
	operator.GeneralizedMass(dst, p, 1, 2)
	assertMatrix(t, []float64{
		2 + 3*0.5, 0,
		0, 1 + 3*0.25,
	}, dst)

	// symmetric in its arguments
	swapped := mat.NewDense(2, 2, nil)
	operator.GeneralizedMass(swapped, p, 2, 1)
	assert.True(t, mat.EqualApprox(dst, swapped, 1e-14))
}

func TestGeneralizedMassMatchesDerivativeMassAtEqualArguments(t *testing.T) {
	k0 := mat.NewDense(2, 2, []float64{5, 0, 0, 7})
	m0 := mat.NewDense(2, 2, []float64{1, 0.1, 0.1, 2})
	m1 := mat.NewDense(2, 2, []float64{0.3, 0, 0, 0.4})
	m2 := mat.NewDense(2, 2, []float64{0.05, 0.02, 0.02, 0.01})
	p, err := problem.New(k0, []*mat.Dense{m0, m1, m2}, 1)
	require.NoError(t, err)

	gen := mat.NewDense(2, 2, nil)
	der := mat.NewDense(2, 2, nil)
	for _, w := range []float64{0, 0.5, 1.3, 4} {
		operator.GeneralizedMass(gen, p, w, w)
		operator.FreqDependentMass(der, p, w)
		assert.True(t, mat.EqualApprox(gen, der, 1e-12), "w=%g", w)
	}
}

package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func diagSym(values ...float64) *mat.SymDense {
	s := mat.NewSymDense(len(values), nil)
	for i, v := range values {
		s.SetSym(i, i, v)
	}
	return s
}

func TestNewProblemValidation(t *testing.T) {
	mu := []float64{0.1, 0.05, 0.08}
	sigma := diagSym(0.04, 0.01, 0.02)

	_, err := NewProblem([]float64{0.1}, diagSym(0.04), 0.5, 1)
	require.ErrorIs(t, err, ErrTooFewAssets)

	_, err = NewProblem(mu, sigma, 0.5, 0)
	require.ErrorIs(t, err, ErrInvalidBudget)

	_, err = NewProblem(mu, sigma, 0.5, 3)
	require.ErrorIs(t, err, ErrInvalidBudget)

	_, err = NewProblem(mu, diagSym(0.04, 0.01), 0.5, 1)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	p, err := NewProblem(mu, sigma, 0.5, 2)
	require.NoError(t, err)
	require.Equal(t, 3, p.Size())
}

func TestNewProblemClampsRiskFactor(t *testing.T) {
	mu := []float64{0.1, 0.05}
	sigma := diagSym(0.04, 0.01)

	p, err := NewProblem(mu, sigma, -3.0, 1)
	require.NoError(t, err)
	require.Equal(t, MinRiskFactor, p.RiskFactor)

	p, err = NewProblem(mu, sigma, 7.5, 1)
	require.NoError(t, err)
	require.Equal(t, MaxRiskFactor, p.RiskFactor)
}

func TestObjectiveArithmetic(t *testing.T) {
	// Off-diagonal terms must be counted twice in xᵀ·Σ·x.
	sigma := mat.NewSymDense(2, []float64{
		0.04, 0.01,
		0.01, 0.02,
	})
	p, err := NewProblem([]float64{0.10, 0.05}, sigma, 0.5, 1)
	require.NoError(t, err)

	both := []int{0, 1}
	wantVar := 0.04 + 0.02 + 2*0.01
	wantRet := 0.10 + 0.05
	require.InDelta(t, 0.5*wantVar-0.5*wantRet, p.Objective(both), 1e-12)

	require.InDelta(t, 0.5*0.04-0.5*0.10, p.Objective([]int{0}), 1e-12)
}

func TestForEachCombinationLexicographic(t *testing.T) {
	var got [][]int
	forEachCombination(4, 2, func(sel []int) {
		got = append(got, append([]int(nil), sel...))
	})
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	require.Equal(t, want, got)
}

func TestBitstring(t *testing.T) {
	require.Equal(t, "0101", bitstring(4, []int{1, 3}))
	require.Equal(t, "0000", bitstring(4, nil))
}

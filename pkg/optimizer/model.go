// Package optimizer implements cardinality-constrained mean-variance
// portfolio selection: an exact enumeration solver, a pluggable variational
// solver contract with a simulated-annealing implementation, and the
// assembly of solver output into display-ready portfolios.
package optimizer

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewAssets rejects problems over fewer than two assets.
	ErrTooFewAssets = errors.New("optimizer: at least two assets required")
	// ErrInvalidBudget rejects budgets outside [1, n-1].
	ErrInvalidBudget = errors.New("optimizer: budget must be between 1 and n-1")
	// ErrDimensionMismatch rejects mu/sigma of inconsistent sizes.
	ErrDimensionMismatch = errors.New("optimizer: mu and sigma dimensions differ")
)

// Risk factor bounds; values outside are clamped, not rejected.
const (
	MinRiskFactor = 0.01
	MaxRiskFactor = 1.0
)

// Problem encodes the selection objective for a given market snapshot:
//
//	minimize  riskFactor * xᵀ·Σ·x − (1−riskFactor) * μᵀ·x
//	subject to x ∈ {0,1}ⁿ, Σxᵢ = budget
//
// Lower is better. The problem is solver-agnostic; any Solver consumes it
// and returns a feasible selection.
type Problem struct {
	Mu         []float64
	Sigma      *mat.SymDense
	RiskFactor float64
	Budget     int
}

// NewProblem validates inputs and builds a Problem. The risk factor is
// clamped to [MinRiskFactor, MaxRiskFactor]; budget and dimensions are hard
// preconditions.
func NewProblem(mu []float64, sigma *mat.SymDense, riskFactor float64, budget int) (*Problem, error) {
	n := len(mu)
	if n < 2 {
		return nil, ErrTooFewAssets
	}
	if sigma == nil || sigma.SymmetricDim() != n {
		return nil, ErrDimensionMismatch
	}
	if budget < 1 || budget >= n {
		return nil, ErrInvalidBudget
	}
	return &Problem{
		Mu:         mu,
		Sigma:      sigma,
		RiskFactor: ClampRiskFactor(riskFactor),
		Budget:     budget,
	}, nil
}

// ClampRiskFactor bounds a risk factor to the supported range.
func ClampRiskFactor(rf float64) float64 {
	return math.Max(MinRiskFactor, math.Min(MaxRiskFactor, rf))
}

// Size returns the number of assets n.
func (p *Problem) Size() int {
	return len(p.Mu)
}

// Objective evaluates the selection objective for the given index set.
// With binary x, xᵀ·Σ·x reduces to the pairwise sum over selected indices.
func (p *Problem) Objective(selected []int) float64 {
	variance := 0.0
	ret := 0.0
	for _, i := range selected {
		ret += p.Mu[i]
		for _, j := range selected {
			variance += p.Sigma.At(i, j)
		}
	}
	return p.RiskFactor*variance - (1.0-p.RiskFactor)*ret
}

// equalWeightStats returns the expected return and standard-deviation risk
// of the equal-weight portfolio over the selected indices.
func (p *Problem) equalWeightStats(selected []int) (expReturn, risk float64) {
	k := len(selected)
	if k == 0 {
		return 0, 0
	}
	w := 1.0 / float64(k)
	variance := 0.0
	for _, i := range selected {
		expReturn += p.Mu[i] * w
		for _, j := range selected {
			variance += w * w * p.Sigma.At(i, j)
		}
	}
	if variance < 0 {
		variance = 0
	}
	return expReturn, math.Sqrt(variance)
}

// forEachCombination invokes fn with every k-combination of {0..n-1} in
// lexicographic order. fn must not retain the slice.
func forEachCombination(n, k int, fn func(selected []int)) {
	if k <= 0 || k > n {
		return
	}
	sel := make([]int, k)
	for i := range sel {
		sel[i] = i
	}
	for {
		fn(sel)
		// Advance to the next combination.
		i := k - 1
		for i >= 0 && sel[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		sel[i]++
		for j := i + 1; j < k; j++ {
			sel[j] = sel[j-1] + 1
		}
	}
}

// bitstring renders an index set as a 0/1 string of length n, index 0 first.
func bitstring(n int, selected []int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = '0'
	}
	for _, i := range selected {
		buf[i] = '1'
	}
	return string(buf)
}

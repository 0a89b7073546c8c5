package optimizer

import (
	"math"
	"time"
)

// ExactSolver enumerates every C(n, budget) selection and keeps the
// minimizer. Exponential in n, so only ever invoked for small n (a dozen or
// so assets); within that range it is the deterministic baseline every other
// solver is measured against.
//
// Ties are broken by keeping the first minimizer in lexicographic
// enumeration order, i.e. the lowest index set, because only strict
// improvements replace the incumbent.
type ExactSolver struct{}

// Solve never fails on a validated Problem.
func (ExactSolver) Solve(p *Problem) (*Result, error) {
	start := time.Now()
	best := math.Inf(1)
	var bestSel []int
	forEachCombination(p.Size(), p.Budget, func(selected []int) {
		obj := p.Objective(selected)
		if obj < best {
			best = obj
			bestSel = append(bestSel[:0], selected...)
		}
	})

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	res := newResult(p, bestSel, best, MethodExact, elapsed)
	// Degenerate point mass: the exact solver is certain of its answer.
	res.ProbabilityDistribution[bitstring(p.Size(), bestSel)] = 1.0
	return res, nil
}

package optimizer

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"
)

// AnnealConfig parameterizes the simulated-annealing solver.
type AnnealConfig struct {
	// MaxIterations bounds the total optimizer steps across all chains.
	MaxIterations int `json:",default=100"`
	// Depth is the number of independent annealing chains; the iteration
	// budget is split across them and the best chain wins.
	Depth int `json:",default=2"`
	// Seed fixes the random source for reproducible runs.
	Seed int64 `json:",default=42"`
	// InitialTemp is the starting temperature; zero auto-scales it from the
	// magnitude of the initial objective.
	InitialTemp float64 `json:",default=0"`
	// Cooling is the per-step geometric temperature decay.
	Cooling float64 `json:",default=0.95"`
}

// DefaultAnnealConfig returns the configuration used when none is supplied.
func DefaultAnnealConfig() AnnealConfig {
	return AnnealConfig{
		MaxIterations: 100,
		Depth:         2,
		Seed:          42,
		Cooling:       0.95,
	}
}

// Validate checks the configuration invariants.
func (c *AnnealConfig) Validate() error {
	if c.MaxIterations < 1 {
		return errors.New("optimizer: anneal MaxIterations must be positive")
	}
	if c.Depth < 1 {
		return errors.New("optimizer: anneal Depth must be positive")
	}
	if c.Cooling <= 0 || c.Cooling >= 1 {
		return errors.New("optimizer: anneal Cooling must be in (0, 1)")
	}
	return nil
}

// Annealer is the stochastic alternative to exact enumeration: a seeded
// simulated-annealing search over budget-sized subsets. It honors the
// variational-solver contract — bounded iterations, a per-iteration
// convergence trace, and an outcome-probability distribution over the
// candidates it visited — and is explicitly allowed to land off the optimum.
type Annealer struct {
	cfg AnnealConfig
}

// NewAnnealer builds an annealing solver; a nil config selects defaults.
func NewAnnealer(cfg *AnnealConfig) (*Annealer, error) {
	c := DefaultAnnealConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Annealer{cfg: c}, nil
}

// Solve runs the annealing chains. Every intermediate state keeps exactly
// budget assets selected, so the returned selection is always feasible.
func (a *Annealer) Solve(p *Problem) (*Result, error) {
	start := time.Now()
	n := p.Size()
	rng := rand.New(rand.NewSource(a.cfg.Seed))

	chains := a.cfg.Depth
	if chains > a.cfg.MaxIterations {
		chains = a.cfg.MaxIterations
	}
	itersPerChain := a.cfg.MaxIterations / chains

	history := make([]float64, 0, chains*itersPerChain)
	visits := make(map[string]int)
	totalVisits := 0

	bestObj := math.Inf(1)
	var bestSel []int

	for chain := 0; chain < chains; chain++ {
		state := newAnnealState(p, rng)
		temp := a.cfg.InitialTemp
		if temp <= 0 {
			temp = math.Max(1e-3, math.Abs(state.objective))
		}

		for it := 0; it < itersPerChain; it++ {
			state.step(rng, temp)
			temp = math.Max(temp*a.cfg.Cooling, 1e-9)

			// The trace records the current objective, not the running best,
			// so regressions of the underlying search remain visible.
			history = append(history, state.objective)
			visits[bitstring(n, state.selected())]++
			totalVisits++

			if state.objective < bestObj {
				bestObj = state.objective
				bestSel = append(bestSel[:0], state.selected()...)
			}
		}
	}

	sort.Ints(bestSel)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	res := newResult(p, bestSel, bestObj, MethodAnnealing, elapsed)
	res.ConvergenceHistory = history
	for bits, count := range visits {
		res.ProbabilityDistribution[bits] = float64(count) / float64(totalVisits)
	}
	return res, nil
}

// annealState is one chain's current selection with O(1) swap proposals.
type annealState struct {
	p         *Problem
	sel       []int  // selected indices, unordered
	inSet     []bool // membership per index
	objective float64
}

func newAnnealState(p *Problem, rng *rand.Rand) *annealState {
	n, k := p.Size(), p.Budget
	perm := rng.Perm(n)
	s := &annealState{
		p:     p,
		sel:   append([]int(nil), perm[:k]...),
		inSet: make([]bool, n),
	}
	for _, i := range s.sel {
		s.inSet[i] = true
	}
	s.objective = p.Objective(s.sel)
	return s
}

// step proposes swapping one selected asset for one unselected asset and
// accepts by the Metropolis rule, preserving the cardinality constraint.
func (s *annealState) step(rng *rand.Rand, temp float64) {
	n, k := s.p.Size(), s.p.Budget
	outPos := rng.Intn(k)
	candidate := rng.Intn(n - k)
	// Map the candidate ordinal to the candidate-th unselected index.
	in := -1
	for i := 0; i < n; i++ {
		if s.inSet[i] {
			continue
		}
		candidate--
		if candidate < 0 {
			in = i
			break
		}
	}
	if in < 0 {
		return
	}

	out := s.sel[outPos]
	s.sel[outPos] = in
	proposed := s.p.Objective(s.sel)
	delta := proposed - s.objective
	if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
		s.inSet[out] = false
		s.inSet[in] = true
		s.objective = proposed
		return
	}
	s.sel[outPos] = out
}

func (s *annealState) selected() []int {
	return s.sel
}

package optimizer

// Solver turns a Problem into a feasible selection. Implementations are free
// to be exact or stochastic; callers compare them on ObjectiveValue.
type Solver interface {
	Solve(p *Problem) (*Result, error)
}

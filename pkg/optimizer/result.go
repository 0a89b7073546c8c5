package optimizer

// Solver method labels.
const (
	MethodExact     = "classical (exact)"
	MethodAnnealing = "variational (simulated annealing)"
)

// Result is the immutable outcome of one solver run.
type Result struct {
	// SelectedIndices lists the chosen asset indices in ascending order.
	SelectedIndices []int `json:"selectedIndices"`
	// Weights holds the per-index portfolio weight: equal among selected
	// assets, zero elsewhere. len(Weights) == n.
	Weights        []float64 `json:"weights"`
	ObjectiveValue float64   `json:"objectiveValue"`
	ExpectedReturn float64   `json:"expectedReturn"`
	// Risk is the portfolio standard deviation of the equal-weight selection.
	Risk              float64 `json:"risk"`
	ComputationTimeMs float64 `json:"computationTimeMs"`
	Method            string  `json:"methodUsed"`
	// ProbabilityDistribution maps candidate bitstrings to the estimated
	// likelihood each is the optimum. Exact solvers produce a point mass.
	ProbabilityDistribution map[string]float64 `json:"probabilityDistribution"`
	// ConvergenceHistory records the objective estimate per optimizer
	// iteration; empty for exact solvers, not necessarily monotone for
	// stochastic ones.
	ConvergenceHistory []float64 `json:"convergenceHistory"`
}

// newResult assembles the common Result fields for a selection.
func newResult(p *Problem, selected []int, objective float64, method string, elapsedMs float64) *Result {
	n := p.Size()
	weights := make([]float64, n)
	if k := len(selected); k > 0 {
		w := 1.0 / float64(k)
		for _, i := range selected {
			weights[i] = w
		}
	}
	expReturn, risk := p.equalWeightStats(selected)
	return &Result{
		SelectedIndices:         selected,
		Weights:                 weights,
		ObjectiveValue:          objective,
		ExpectedReturn:          expReturn,
		Risk:                    risk,
		ComputationTimeMs:       elapsedMs,
		Method:                  method,
		ProbabilityDistribution: map[string]float64{},
		ConvergenceHistory:      []float64{},
	}
}

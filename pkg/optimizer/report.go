package optimizer

import "fmt"

// riskEpsilon is the risk below which a Sharpe ratio is undefined rather
// than a division blow-up.
const riskEpsilon = 1e-12

// Portfolio is a display-ready view of a solver result with symbols and
// names attached in selection order.
type Portfolio struct {
	*Result
	SelectedSymbols []string `json:"selectedSymbols"`
	SelectedNames   []string `json:"selectedNames"`
	// SharpeRatio is (expected return − risk-free rate) / risk; nil when the
	// portfolio risk is effectively zero.
	SharpeRatio *float64 `json:"sharpeRatio,omitempty"`
}

// NewPortfolio attaches symbols/names to a result and derives the Sharpe
// ratio. symbols must cover every selected index; names falls back to the
// symbol when missing.
func NewPortfolio(res *Result, symbols, names []string, riskFreeRate float64) (*Portfolio, error) {
	if res == nil {
		return nil, fmt.Errorf("optimizer: nil result")
	}
	pf := &Portfolio{
		Result:          res,
		SelectedSymbols: make([]string, 0, len(res.SelectedIndices)),
		SelectedNames:   make([]string, 0, len(res.SelectedIndices)),
	}
	for _, i := range res.SelectedIndices {
		if i < 0 || i >= len(symbols) {
			return nil, fmt.Errorf("optimizer: selected index %d out of range for %d symbols", i, len(symbols))
		}
		pf.SelectedSymbols = append(pf.SelectedSymbols, symbols[i])
		if i < len(names) && names[i] != "" {
			pf.SelectedNames = append(pf.SelectedNames, names[i])
		} else {
			pf.SelectedNames = append(pf.SelectedNames, symbols[i])
		}
	}
	if res.Risk > riskEpsilon {
		sharpe := (res.ExpectedReturn - riskFreeRate) / res.Risk
		pf.SharpeRatio = &sharpe
	}
	return pf, nil
}

// ObjectiveGap reports how far a candidate result lands from the exact
// optimum, relative to the optimum's magnitude. ok is false when the exact
// objective is zero and the gap is undefined.
func ObjectiveGap(exact, candidate *Result) (gap float64, ok bool) {
	if exact == nil || candidate == nil || exact.ObjectiveValue == 0 {
		return 0, false
	}
	return (candidate.ObjectiveValue - exact.ObjectiveValue) / abs(exact.ObjectiveValue), true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

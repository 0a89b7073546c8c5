// Package logic orchestrates one optimization request end to end: validate
// the symbol set, pull statistics, run both solvers, and assemble the
// comparison the caller sees.
package logic

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"quanport/internal/svc"
	"quanport/pkg/backtest"
	"quanport/pkg/frontier"
	"quanport/pkg/market"
	"quanport/pkg/optimizer"
)

// OptimizeRequest is a validated-on-entry optimization request.
type OptimizeRequest struct {
	Symbols        []string
	Budget         int     // 0 selects the configured default
	RiskFactor     float64 // clamped to [0.01, 1.0]
	UseVariational bool
	Frontier       bool
	BacktestDays   int // 0 disables the backtest
}

// OptimizeResponse mirrors what a caller-facing surface would serialize.
type OptimizeResponse struct {
	Symbols     []string             `json:"symbols"`
	Assets      []*market.Asset      `json:"assets"`
	Exact       *optimizer.Portfolio `json:"exact"`
	Variational *optimizer.Portfolio `json:"variational,omitempty"`
	// ObjectiveGap is the variational solver's relative distance from the
	// exact optimum; nil when undefined or the variational run is absent.
	ObjectiveGap *float64         `json:"objectiveGap,omitempty"`
	Frontier     []frontier.Point `json:"efficientFrontier,omitempty"`
	Backtest     *backtest.Curves `json:"backtest,omitempty"`
	Synthetic    bool             `json:"syntheticData,omitempty"`
}

// Optimize runs the full pipeline for one request.
func Optimize(ctx context.Context, sc *svc.ServiceContext, req *OptimizeRequest) (*OptimizeResponse, error) {
	symbols, err := validateSymbols(sc, req.Symbols)
	if err != nil {
		return nil, err
	}
	budget := req.Budget
	if budget == 0 {
		budget = sc.Config.Optimization.DefaultBudget
	}

	snap, err := sc.Stats.Get(ctx, symbols)
	if err != nil {
		return nil, err
	}
	problem, err := optimizer.NewProblem(snap.Mu, snap.Sigma, req.RiskFactor, budget)
	if err != nil {
		return nil, err
	}

	assets := sc.Assets.GetAll(ctx, symbols)
	names := make([]string, len(assets))
	for i, a := range assets {
		names[i] = a.Name
	}

	exactRes, err := sc.Exact.Solve(problem)
	if err != nil {
		return nil, fmt.Errorf("logic: exact solve: %w", err)
	}
	exactPf, err := optimizer.NewPortfolio(exactRes, symbols, names, sc.Config.RiskFreeRate)
	if err != nil {
		return nil, err
	}

	resp := &OptimizeResponse{
		Symbols:   symbols,
		Assets:    assets,
		Exact:     exactPf,
		Synthetic: snap.Synthetic,
	}

	var variationalRes *optimizer.Result
	if req.UseVariational && sc.Variational != nil {
		variationalRes, err = sc.Variational.Solve(problem)
		if err != nil {
			// Solver trouble is a comparison lost, not a request failed.
			logx.Errorf("logic: variational solve: %v", err)
			variationalRes = nil
		}
	}
	if variationalRes != nil {
		pf, err := optimizer.NewPortfolio(variationalRes, symbols, names, sc.Config.RiskFreeRate)
		if err != nil {
			return nil, err
		}
		resp.Variational = pf
		if gap, ok := optimizer.ObjectiveGap(exactRes, variationalRes); ok {
			resp.ObjectiveGap = &gap
		}
	}

	if req.Frontier {
		points, err := frontier.Build(snap.Mu, snap.Sigma)
		if err != nil {
			return nil, err
		}
		resp.Frontier = points
	}

	if req.BacktestDays > 0 {
		var variationalIdx []int
		if resp.Variational != nil {
			variationalIdx = resp.Variational.SelectedIndices
		}
		curves, err := backtest.BuildCurves(ctx, sc.History, symbols,
			exactRes.SelectedIndices, variationalIdx, req.BacktestDays, sc.Config.BenchmarkSymbol)
		if err != nil {
			logx.Errorf("logic: backtest curves: %v", err)
		} else {
			resp.Backtest = curves
		}
	}
	return resp, nil
}

func validateSymbols(sc *svc.ServiceContext, symbols []string) ([]string, error) {
	bounds := sc.Config.Optimization
	if len(symbols) < bounds.MinAssets {
		return nil, fmt.Errorf("logic: select at least %d assets", bounds.MinAssets)
	}
	if len(symbols) > bounds.MaxAssets {
		return nil, fmt.Errorf("logic: select at most %d assets", bounds.MaxAssets)
	}
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			return nil, fmt.Errorf("logic: empty symbol")
		}
		if seen[s] {
			return nil, fmt.Errorf("logic: duplicate symbol %q", s)
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

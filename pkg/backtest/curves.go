// Package backtest compares selected portfolios on recorded history: the
// cumulative return an equal-weight holding of each selection would have
// produced, against the full equal-weight basket and an optional benchmark.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"

	"quanport/pkg/market"
	"quanport/pkg/stats"
)

// Day-count bounds for a backtest window.
const (
	MinDays = 30
	MaxDays = 365
)

const dateLayout = "2006-01-02"

// minReturnRows is the shortest usable aligned return table.
const minReturnRows = 5

// ErrInsufficientHistory indicates too little aligned history to backtest.
var ErrInsufficientHistory = errors.New("backtest: insufficient history")

// Curves holds cumulative return series over a shared date axis. Each curve
// value is the cumulative fractional return since the window start.
type Curves struct {
	Dates       []string           `json:"dates"`
	Exact       []float64          `json:"exact"`
	Variational []float64          `json:"variational,omitempty"`
	EqualWeight []float64          `json:"equalWeight"`
	Benchmark   []float64          `json:"benchmark,omitempty"`
	Summaries   map[string]Summary `json:"summaries"`
}

// Summary condenses one curve into headline figures.
type Summary struct {
	FinalReturn    float64 `json:"finalReturn"`
	MaxDrawdownPct float64 `json:"maxDrawdownPct"`
	Sharpe         float64 `json:"sharpe"`
}

// ClampDays bounds a requested window to [MinDays, MaxDays].
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// BuildCurves fetches history for the symbol set, aligns it, and produces
// cumulative return curves for the exact selection, the variational
// selection (when non-nil), and the full equal-weight basket. A benchmark
// symbol is included when it can be fetched; its failure is logged, not
// fatal.
func BuildCurves(ctx context.Context, provider market.HistoryProvider, symbols []string, exactIdx, variationalIdx []int, days int, benchmark string) (*Curves, error) {
	if len(symbols) == 0 {
		return nil, ErrInsufficientHistory
	}
	days = ClampDays(days)

	histories := make([][]market.PricePoint, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			points, err := provider.History(gctx, symbol, days)
			if err != nil {
				return fmt.Errorf("backtest: history %s: %w", symbol, err)
			}
			histories[i] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series, err := stats.AlignReturns(histories)
	if err != nil {
		return nil, ErrInsufficientHistory
	}
	if len(series.Returns) < minReturnRows {
		return nil, ErrInsufficientHistory
	}

	curves := &Curves{
		Dates:       make([]string, len(series.Dates)),
		Summaries:   map[string]Summary{},
		Exact:       cumulative(portfolioDaily(series.Returns, exactIdx)),
		EqualWeight: cumulative(portfolioDaily(series.Returns, allIndices(len(symbols)))),
	}
	for i, d := range series.Dates {
		curves.Dates[i] = d.Format(dateLayout)
	}
	curves.Summaries["exact"] = summarize(portfolioDaily(series.Returns, exactIdx))
	curves.Summaries["equalWeight"] = summarize(portfolioDaily(series.Returns, allIndices(len(symbols))))

	if variationalIdx != nil {
		daily := portfolioDaily(series.Returns, variationalIdx)
		curves.Variational = cumulative(daily)
		curves.Summaries["variational"] = summarize(daily)
	}

	if benchmark != "" {
		if bench, err := benchmarkCurve(ctx, provider, benchmark, days, len(series.Returns)); err != nil {
			logx.Errorf("backtest: benchmark %s: %v", benchmark, err)
		} else {
			curves.Benchmark = bench
		}
	}
	return curves, nil
}

// portfolioDaily averages the daily returns of the selected columns,
// i.e. an equal-weight holding rebalanced daily.
func portfolioDaily(returns [][]float64, selected []int) []float64 {
	out := make([]float64, len(returns))
	if len(selected) == 0 {
		return out
	}
	for t, row := range returns {
		sum := 0.0
		for _, i := range selected {
			sum += row[i]
		}
		out[t] = sum / float64(len(selected))
	}
	return out
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// cumulative compounds daily returns into cumulative fractional returns.
func cumulative(daily []float64) []float64 {
	out := make([]float64, len(daily))
	acc := 1.0
	for t, r := range daily {
		acc *= 1.0 + r
		out[t] = acc - 1.0
	}
	return out
}

func benchmarkCurve(ctx context.Context, provider market.HistoryProvider, symbol string, days, length int) ([]float64, error) {
	points, err := provider.History(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	series, err := stats.AlignReturns([][]market.PricePoint{points})
	if err != nil {
		return nil, err
	}
	curve := cumulative(portfolioDaily(series.Returns, []int{0}))
	// Fit the shared date axis: truncate, or pad with the last value.
	if len(curve) >= length {
		return curve[:length], nil
	}
	out := append([]float64(nil), curve...)
	last := 0.0
	if len(out) > 0 {
		last = out[len(out)-1]
	}
	for len(out) < length {
		out = append(out, last)
	}
	return out, nil
}

func summarize(daily []float64) Summary {
	cum := cumulative(daily)
	final := 0.0
	if len(cum) > 0 {
		final = cum[len(cum)-1]
	}
	equity := make([]float64, 0, len(cum)+1)
	equity = append(equity, 1.0)
	for _, c := range cum {
		equity = append(equity, 1.0+c)
	}
	return Summary{
		FinalReturn:    final,
		MaxDrawdownPct: maxDrawdownPct(equity),
		Sharpe:         sharpe(daily),
	}
}

func maxDrawdownPct(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	peak := series[0]
	mdd := 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		dd := (peak - v) / peak
		if dd > mdd {
			mdd = dd
		}
	}
	return mdd * 100
}

// sharpe annualizes the mean/std ratio of daily returns.
func sharpe(daily []float64) float64 {
	if len(daily) < 2 {
		return 0
	}
	m := 0.0
	for _, r := range daily {
		m += r
	}
	m /= float64(len(daily))
	v := 0.0
	for _, r := range daily {
		d := r - m
		v += d * d
	}
	v /= float64(len(daily))
	sd := math.Sqrt(v)
	if sd == 0 {
		return 0
	}
	return m / sd * math.Sqrt(stats.Annualization)
}

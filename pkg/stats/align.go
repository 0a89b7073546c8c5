package stats

import (
	"errors"
	"math"
	"sort"
	"time"

	"quanport/pkg/market"
)

// ErrInsufficientHistory indicates the aligned price table is too short to
// derive statistics from.
var ErrInsufficientHistory = errors.New("stats: insufficient aligned history")

// Series is an aligned daily-return table for a set of symbols. Rows are
// ordered oldest to newest; Returns[t][i] is the day-t return of symbol i.
type Series struct {
	Dates   []time.Time
	Returns [][]float64
}

// AlignReturns aligns per-symbol close histories on the union of their
// dates, forward-filling then back-filling gaps, and converts the result to
// daily percentage returns. Every history must be non-empty and the aligned
// table must span at least two days.
func AlignReturns(histories [][]market.PricePoint) (*Series, error) {
	n := len(histories)
	if n == 0 {
		return nil, ErrInsufficientHistory
	}
	for _, h := range histories {
		if len(h) == 0 {
			return nil, ErrInsufficientHistory
		}
	}

	dates := unionDates(histories)
	if len(dates) < 2 {
		return nil, ErrInsufficientHistory
	}

	closes := make([][]float64, len(dates))
	for t := range closes {
		closes[t] = make([]float64, n)
		for i := range closes[t] {
			closes[t][i] = math.NaN()
		}
	}
	for i, h := range histories {
		byDate := make(map[int64]float64, len(h))
		for _, p := range h {
			byDate[market.Day(p.Date).Unix()] = p.Close
		}
		for t, d := range dates {
			if v, ok := byDate[d.Unix()]; ok {
				closes[t][i] = v
			}
		}
	}
	fillGaps(closes)

	rets := make([][]float64, 0, len(dates)-1)
	retDates := make([]time.Time, 0, len(dates)-1)
	for t := 1; t < len(dates); t++ {
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			prev := closes[t-1][i]
			if prev == 0 {
				row[i] = 0
				continue
			}
			row[i] = closes[t][i]/prev - 1
		}
		rets = append(rets, row)
		retDates = append(retDates, dates[t])
	}
	return &Series{Dates: retDates, Returns: rets}, nil
}

func unionDates(histories [][]market.PricePoint) []time.Time {
	seen := make(map[int64]time.Time)
	for _, h := range histories {
		for _, p := range h {
			d := market.Day(p.Date)
			seen[d.Unix()] = d
		}
	}
	out := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// fillGaps forward-fills then back-fills NaN cells column by column,
// mirroring how sparse daily series are usually reconciled.
func fillGaps(closes [][]float64) {
	if len(closes) == 0 {
		return
	}
	n := len(closes[0])
	for i := 0; i < n; i++ {
		last := math.NaN()
		for t := 0; t < len(closes); t++ {
			if math.IsNaN(closes[t][i]) {
				closes[t][i] = last
			} else {
				last = closes[t][i]
			}
		}
		next := math.NaN()
		for t := len(closes) - 1; t >= 0; t-- {
			if math.IsNaN(closes[t][i]) {
				closes[t][i] = next
			} else {
				next = closes[t][i]
			}
		}
	}
}

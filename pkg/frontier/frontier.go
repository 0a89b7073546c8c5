// Package frontier computes the discrete efficient frontier of equal-weight
// budget portfolios: every non-trivial subset of the asset set placed in
// (risk, return) space, filtered down to the Pareto-optimal points.
package frontier

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrTooFewAssets rejects frontiers over fewer than two assets.
var ErrTooFewAssets = errors.New("frontier: at least two assets required")

// Point is one candidate portfolio in risk/return space.
type Point struct {
	Risk   float64 `json:"risk"`
	Return float64 `json:"return"`
}

// Build enumerates every k-subset for k in [1, n-1], computes its
// equal-weight risk and return, and returns the Pareto frontier: sorted by
// non-decreasing risk with strictly increasing return. The enumeration is
// exponential in n, acceptable only because n is capped small by the same
// constraint that bounds exact solving.
func Build(mu []float64, sigma *mat.SymDense) ([]Point, error) {
	n := len(mu)
	if n < 2 {
		return nil, ErrTooFewAssets
	}
	if sigma == nil || sigma.SymmetricDim() != n {
		return nil, errors.New("frontier: mu and sigma dimensions differ")
	}

	points := make([]Point, 0, (1<<uint(n))-2)
	for k := 1; k < n; k++ {
		forEachCombination(n, k, func(selected []int) {
			points = append(points, equalWeightPoint(mu, sigma, selected))
		})
	}
	return pareto(points), nil
}

func equalWeightPoint(mu []float64, sigma *mat.SymDense, selected []int) Point {
	w := 1.0 / float64(len(selected))
	ret := 0.0
	variance := 0.0
	for _, i := range selected {
		ret += w * mu[i]
		for _, j := range selected {
			variance += w * w * sigma.At(i, j)
		}
	}
	if variance < 0 {
		variance = 0
	}
	return Point{Risk: math.Sqrt(variance), Return: ret}
}

// pareto sorts by risk ascending (ties: return descending) and keeps each
// point whose return strictly exceeds the running maximum, so no kept point
// is dominated by a cheaper or equal-risk alternative.
func pareto(points []Point) []Point {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Risk != points[j].Risk {
			return points[i].Risk < points[j].Risk
		}
		return points[i].Return > points[j].Return
	})
	out := make([]Point, 0, len(points))
	best := math.Inf(-1)
	for _, p := range points {
		if p.Return > best {
			best = p.Return
			out = append(out, p)
		}
	}
	return out
}

func forEachCombination(n, k int, fn func(selected []int)) {
	sel := make([]int, k)
	for i := range sel {
		sel[i] = i
	}
	for {
		fn(sel)
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

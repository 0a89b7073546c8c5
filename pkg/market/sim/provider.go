// Package sim provides a deterministic, in-memory price-history source. It
// plays the role a live market-data client would fill in production, with
// seeded random walks so runs and tests are reproducible offline.
package sim

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"quanport/pkg/market"
)

const defaultSeed = 42

func init() {
	// Imported for side effects: registers the sim source.
	market.RegisterSource("sim", func(cfg *market.Config) (market.HistoryProvider, error) {
		opts := []Option{}
		if cfg != nil && cfg.Seed != 0 {
			opts = append(opts, WithSeed(cfg.Seed))
		}
		return New(opts...), nil
	})
}

// Provider generates synthetic daily close series. The same (seed, symbol,
// days) always yields the same series.
type Provider struct {
	seed int64
	end  time.Time // date of the most recent close
}

// Option customises the simulator.
type Option func(*Provider)

// WithSeed overrides the base seed shared by all symbols.
func WithSeed(seed int64) Option {
	return func(p *Provider) {
		p.seed = seed
	}
}

// WithEndDate pins the date of the last close, for reproducible alignment in
// tests.
func WithEndDate(end time.Time) Option {
	return func(p *Provider) {
		p.end = market.Day(end)
	}
}

// New constructs a simulator with the default seed and today's date.
func New(opts ...Option) *Provider {
	p := &Provider{
		seed: defaultSeed,
		end:  market.Day(time.Now()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// History returns a seeded random-walk close series for the symbol.
func (p *Provider) History(_ context.Context, symbol string, days int) ([]market.PricePoint, error) {
	if days <= 0 {
		days = market.MinHistoryDays
	}
	h := symbolHash(symbol)
	rng := rand.New(rand.NewSource(p.seed ^ int64(h)))

	// Per-symbol regime derived from the symbol itself, not from the RNG, so
	// the same symbol keeps its character across different day counts.
	start := 40.0 + float64(h%160)
	drift := -0.0005 + 0.002*float64(h%97)/97.0
	vol := 0.008 + 0.017*float64(h%53)/53.0

	points := make([]market.PricePoint, days)
	price := start
	for i := 0; i < days; i++ {
		ret := drift + vol*rng.NormFloat64()
		price *= 1.0 + ret
		price = math.Max(price, 0.01)
		points[i] = market.PricePoint{
			Date:  p.end.AddDate(0, 0, i-days+1),
			Close: price,
		}
	}
	return points, nil
}

func symbolHash(symbol string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return h.Sum32()
}

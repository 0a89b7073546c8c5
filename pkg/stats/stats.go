// Package stats derives and caches the market statistics that feed portfolio
// optimization: the annualized expected-return vector mu and covariance
// matrix sigma for a symbol set.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"quanport/pkg/market"
)

const (
	// Annualization scales daily statistics to yearly units, assuming 252
	// trading days per year.
	Annualization = 252

	// DefaultTTL bounds how stale a cached snapshot may get.
	DefaultTTL = 5 * time.Minute

	// fallbackVariance is the per-asset variance of the neutral synthetic
	// covariance used when history cannot be obtained.
	fallbackVariance = 0.04

	statsCacheSize = 128
)

// ErrNoSymbols indicates an empty symbol set was requested.
var ErrNoSymbols = errors.New("stats: at least one symbol required")

// Snapshot is an immutable (mu, sigma) pair for one symbol set.
// Mu and Sigma are annualized; Sigma is numerically positive semidefinite.
type Snapshot struct {
	Mu        []float64
	Sigma     *mat.SymDense
	CreatedAt time.Time

	// Synthetic marks a neutral fallback produced because history could not
	// be obtained.
	Synthetic bool
}

// Cache computes and caches statistics snapshots keyed by the sorted symbol
// set, so the same set in any order hits the same entry. Entries older than
// the TTL are recomputed. History failures degrade to a neutral synthetic
// snapshot; they are logged, never returned as errors.
type Cache struct {
	provider    market.HistoryProvider
	ttl         time.Duration
	historyDays int
	now         func() time.Time
	store       *collection.Cache
}

// Option customises a Cache.
type Option func(*Cache)

// WithHistoryDays overrides how many trading days of history are requested.
func WithHistoryDays(days int) Option {
	return func(c *Cache) {
		if days > 0 {
			c.historyDays = days
		}
	}
}

// WithClock injects the time source used for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache constructs a statistics cache over the given history provider.
func NewCache(provider market.HistoryProvider, ttl time.Duration, opts ...Option) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		provider:    provider,
		ttl:         ttl,
		historyDays: market.MinHistoryDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	store, err := collection.NewCache(ttl, collection.WithLimit(statsCacheSize), collection.WithName("stats"))
	if err != nil {
		return nil, err
	}
	c.store = store
	return c, nil
}

// Get returns the statistics snapshot for the symbol set, computing and
// caching it when missing or stale. The only error is an empty symbol set;
// data problems yield a synthetic snapshot instead.
func (c *Cache) Get(ctx context.Context, symbols []string) (*Snapshot, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	key := snapshotKey(symbols)
	if v, ok := c.store.Get(key); ok {
		if snap, ok := v.(*Snapshot); ok && c.now().Sub(snap.CreatedAt) <= c.ttl {
			return snap, nil
		}
	}

	snap, err := c.compute(ctx, symbols)
	if err != nil {
		logx.Errorf("stats: compute statistics for %s: %v, using synthetic fallback", key, err)
		return c.synthetic(len(symbols)), nil
	}
	c.store.Set(key, snap)
	return snap, nil
}

// compute fetches history for every symbol concurrently, aligns the series
// and derives annualized mu and sigma.
func (c *Cache) compute(ctx context.Context, symbols []string) (*Snapshot, error) {
	histories := make([][]market.PricePoint, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			points, err := c.provider.History(gctx, symbol, c.historyDays)
			if err != nil {
				return fmt.Errorf("history %s: %w", symbol, err)
			}
			histories[i] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series, err := AlignReturns(histories)
	if err != nil {
		return nil, err
	}
	rows, n := len(series.Returns), len(symbols)
	if rows < 2 {
		// Sample covariance needs at least two return observations.
		return nil, ErrInsufficientHistory
	}

	mu := make([]float64, n)
	samples := mat.NewDense(rows, n, nil)
	for t, row := range series.Returns {
		for i, r := range row {
			mu[i] += r
			samples.Set(t, i, r)
		}
	}
	for i := range mu {
		mu[i] = mu[i] / float64(rows) * Annualization
	}

	sigma := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(sigma, samples, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sigma.SetSym(i, j, sigma.At(i, j)*Annualization)
		}
	}
	ensurePSD(sigma)

	return &Snapshot{Mu: mu, Sigma: sigma, CreatedAt: c.now()}, nil
}

// synthetic returns the neutral fallback: zero expected returns and an
// identity covariance scaled to a modest variance, well-conditioned by
// construction so every solver downstream still works.
func (c *Cache) synthetic(n int) *Snapshot {
	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		sigma.SetSym(i, i, fallbackVariance)
	}
	return &Snapshot{
		Mu:        make([]float64, n),
		Sigma:     sigma,
		CreatedAt: c.now(),
		Synthetic: true,
	}
}

// snapshotKey builds the order-independent cache key for a symbol set.
func snapshotKey(symbols []string) string {
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

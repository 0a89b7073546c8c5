package market

import (
	"context"
	"math"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	annualization  = 252 // trading days per year
	assetCacheSize = 512
)

// Synthetic placeholder values returned when history cannot be obtained, so
// callers always receive a well-formed asset.
const (
	fallbackPrice      = 100.0
	fallbackPrevClose  = 99.0
	fallbackReturn     = 0.05
	fallbackVolatility = 0.15
)

// AssetCache caches per-symbol display data with a TTL. Fetch failures
// degrade to a synthetic asset and are logged, never surfaced.
type AssetCache struct {
	provider    HistoryProvider
	ttl         time.Duration
	historyDays int
	names       map[string]string
	now         func() time.Time
	store       *collection.Cache
}

// AssetCacheOption customises an AssetCache.
type AssetCacheOption func(*AssetCache)

// WithNames supplies display names keyed by symbol.
func WithNames(names map[string]string) AssetCacheOption {
	return func(c *AssetCache) {
		c.names = names
	}
}

// WithHistoryDays overrides the history window used to derive statistics.
func WithHistoryDays(days int) AssetCacheOption {
	return func(c *AssetCache) {
		if days > 0 {
			c.historyDays = days
		}
	}
}

// WithClock injects the time source used for staleness checks.
func WithClock(now func() time.Time) AssetCacheOption {
	return func(c *AssetCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewAssetCache builds an asset cache over the given provider and TTL.
func NewAssetCache(provider HistoryProvider, ttl time.Duration, opts ...AssetCacheOption) (*AssetCache, error) {
	c := &AssetCache{
		provider:    provider,
		ttl:         ttl,
		historyDays: MinHistoryDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	store, err := collection.NewCache(ttl, collection.WithLimit(assetCacheSize), collection.WithName("assets"))
	if err != nil {
		return nil, err
	}
	c.store = store
	return c, nil
}

// Get returns the cached asset for symbol, refreshing it when missing or
// stale. It never fails: on fetch errors a synthetic asset is returned.
func (c *AssetCache) Get(ctx context.Context, symbol string) *Asset {
	if v, ok := c.store.Get(symbol); ok {
		if a, ok := v.(*Asset); ok && c.now().Sub(a.LastUpdated) <= c.ttl {
			return a
		}
	}

	a, err := c.fetch(ctx, symbol)
	if err != nil {
		logx.Errorf("market: fetch asset %s: %v", symbol, err)
		return c.fallback(symbol)
	}
	c.store.Set(symbol, a)
	return a
}

// GetAll fetches several assets, preserving input order.
func (c *AssetCache) GetAll(ctx context.Context, symbols []string) []*Asset {
	out := make([]*Asset, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, c.Get(ctx, s))
	}
	return out
}

func (c *AssetCache) fetch(ctx context.Context, symbol string) (*Asset, error) {
	points, err := c.provider.History(ctx, symbol, c.historyDays)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoHistory
	}

	current := points[len(points)-1].Close
	prev := current
	if len(points) > 1 {
		prev = points[len(points)-2].Close
	}
	change := current - prev
	changePct := 0.0
	if prev != 0 {
		changePct = change / prev * 100
	}

	expReturn, vol := annualizedStats(points)
	return &Asset{
		Symbol:           symbol,
		Name:             c.name(symbol),
		CurrentPrice:     current,
		PreviousClose:    prev,
		DayChange:        change,
		DayChangePercent: changePct,
		ExpectedReturn:   expReturn,
		Volatility:       math.Max(vol, 0.01),
		LastUpdated:      c.now(),
	}, nil
}

func (c *AssetCache) fallback(symbol string) *Asset {
	return &Asset{
		Symbol:           symbol,
		Name:             c.name(symbol),
		CurrentPrice:     fallbackPrice,
		PreviousClose:    fallbackPrevClose,
		DayChange:        fallbackPrice - fallbackPrevClose,
		DayChangePercent: (fallbackPrice - fallbackPrevClose) / fallbackPrevClose * 100,
		ExpectedReturn:   fallbackReturn,
		Volatility:       fallbackVolatility,
		LastUpdated:      c.now(),
	}
}

func (c *AssetCache) name(symbol string) string {
	if name, ok := c.names[symbol]; ok && name != "" {
		return name
	}
	return symbol
}

// annualizedStats derives the annualized expected return and volatility from
// daily closes. Degenerate inputs produce (0, 0.01) rather than NaN.
func annualizedStats(points []PricePoint) (expReturn, vol float64) {
	if len(points) < 2 {
		return 0, 0.01
	}
	rets := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		if points[i-1].Close == 0 {
			continue
		}
		rets = append(rets, points[i].Close/points[i-1].Close-1)
	}
	if len(rets) == 0 {
		return 0, 0.01
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	variance := 0.0
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets))
	std := math.Sqrt(variance)
	if std == 0 || math.IsNaN(std) {
		std = 0.01
	}
	return mean * annualization, std * math.Sqrt(annualization)
}

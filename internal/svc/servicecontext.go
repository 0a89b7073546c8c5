package svc

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"quanport/internal/cache"
	"quanport/internal/config"
	"quanport/pkg/confkit"
	"quanport/pkg/market"
	_ "quanport/pkg/market/sim" // registers the sim history source
	"quanport/pkg/optimizer"
	"quanport/pkg/stats"
)

// ServiceContext wires the configured collaborators: the price-history
// capability, the TTL caches over it, and the solver pair.
type ServiceContext struct {
	Config   *config.Config
	Universe *market.Universe
	History  market.HistoryProvider
	Assets   *market.AssetCache
	Stats    *stats.Cache
	Exact    optimizer.Solver
	// Variational is nil when the stochastic backend could not be
	// constructed; callers then return the exact result alone.
	Variational optimizer.Solver
}

// NewServiceContext builds the service context from validated config.
func NewServiceContext(c *config.Config) (*ServiceContext, error) {
	universe := loadUniverse(c)

	provider, err := market.NewProvider(c.Market.Value)
	if err != nil {
		return nil, fmt.Errorf("svc: build history provider: %w", err)
	}

	ttl := cache.NewTTLSet(c.TTL)
	assets, err := market.NewAssetCache(provider, cache.AssetTTL(ttl),
		market.WithNames(universe.Names),
		market.WithHistoryDays(c.HistoryDays),
	)
	if err != nil {
		return nil, fmt.Errorf("svc: build asset cache: %w", err)
	}
	statsCache, err := stats.NewCache(provider, cache.StatisticsTTL(ttl),
		stats.WithHistoryDays(c.HistoryDays),
	)
	if err != nil {
		return nil, fmt.Errorf("svc: build statistics cache: %w", err)
	}

	svc := &ServiceContext{
		Config:   c,
		Universe: universe,
		History:  provider,
		Assets:   assets,
		Stats:    statsCache,
		Exact:    optimizer.ExactSolver{},
	}

	// A broken variational backend demotes to "unavailable" rather than
	// failing the whole context; the exact path must keep working.
	annealer, err := optimizer.NewAnnealer(c.Solver.Value)
	if err != nil {
		logx.Errorf("svc: variational solver unavailable: %v", err)
	} else {
		svc.Variational = annealer
	}
	return svc, nil
}

func loadUniverse(c *config.Config) *market.Universe {
	if c.Market.Value != nil && c.Market.Value.UniverseFile != "" {
		path := confkit.ResolvePath(c.BaseDir(), c.Market.Value.UniverseFile)
		u, err := market.LoadUniverse(path)
		if err == nil {
			return u
		}
		logx.Errorf("svc: load universe: %v, using built-in lists", err)
	}
	return market.DefaultUniverse()
}

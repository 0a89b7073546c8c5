package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"

	"quanport/pkg/confkit"
	marketpkg "quanport/pkg/market"
	optimizerpkg "quanport/pkg/optimizer"
)

// CacheTTL holds the cache staleness buckets in seconds.
type CacheTTL struct {
	Short  int `json:",default=10"`
	Medium int `json:",default=60"`
	Long   int `json:",default=300"`
}

// Optimization bounds the caller-facing request surface.
type Optimization struct {
	// MaxAssets caps the symbol-set size so exhaustive search stays fast.
	MaxAssets int `json:",default=6"`
	// MinAssets is the smallest meaningful selection problem.
	MinAssets int `json:",default=2"`
	// DefaultBudget is used when a caller does not specify one.
	DefaultBudget int `json:",default=2"`
}

// Config is the application configuration.
type Config struct {
	// Env indicates the running environment: test | dev | prod.
	Env string `json:",default=test"`
	// RiskFreeRate feeds Sharpe ratio computation (annualized).
	RiskFreeRate float64 `json:",default=0.02"`
	// HistoryDays is the trading-day window statistics are derived from.
	HistoryDays int `json:",default=60"`
	// BenchmarkSymbol names the backtest reference series; empty disables it.
	BenchmarkSymbol string       `json:",default=SPX"`
	TTL             CacheTTL     `json:",optional"`
	Optimization    Optimization `json:",optional"`

	Market confkit.Section[marketpkg.Config]          `json:",optional"`
	Solver confkit.Section[optimizerpkg.AnnealConfig] `json:",optional"`

	mainPath string
	baseDir  string
}

// IsTestEnv reports whether the config targets the test environment.
func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

// BaseDir returns the directory the main config file was loaded from.
func (c *Config) BaseDir() string {
	return c.baseDir
}

// MustLoad loads the configuration or panics.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the main YAML config, applies env expansion, validates it and
// hydrates the market/solver sections.
func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file is available.
func Default() *Config {
	return &Config{
		Env:             "test",
		RiskFreeRate:    0.02,
		HistoryDays:     marketpkg.MinHistoryDays,
		BenchmarkSymbol: "SPX",
		TTL:             CacheTTL{Short: 10, Medium: 60, Long: 300},
		Optimization:    Optimization{MaxAssets: 6, MinAssets: 2, DefaultBudget: 2},
	}
}

// Validate checks cross-field invariants and normalizes defaults.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if c.HistoryDays < 2 {
		return errors.New("config: historyDays must be at least 2")
	}
	if c.RiskFreeRate < 0 {
		return errors.New("config: riskFreeRate must not be negative")
	}
	if err := c.validateTTL(); err != nil {
		return err
	}
	return c.validateOptimization()
}

func (c *Config) validateTTL() error {
	if c.TTL.Short <= 0 {
		return errors.New("config: ttl.short must be positive")
	}
	if c.TTL.Medium <= 0 {
		return errors.New("config: ttl.medium must be positive")
	}
	if c.TTL.Long <= 0 {
		return errors.New("config: ttl.long must be positive")
	}
	return nil
}

func (c *Config) validateOptimization() error {
	if c.Optimization.MinAssets < 2 {
		return errors.New("config: optimization.minAssets must be at least 2")
	}
	if c.Optimization.MaxAssets < c.Optimization.MinAssets {
		return errors.New("config: optimization.maxAssets must not be below minAssets")
	}
	if c.Optimization.DefaultBudget < 1 {
		return errors.New("config: optimization.defaultBudget must be positive")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir
	if err := c.Market.Hydrate(base, func(p string) (*marketpkg.Config, error) {
		return confkit.LoadFile[marketpkg.Config](p, true)
	}); err != nil {
		return fmt.Errorf("hydrate market config: %w", err)
	}
	if err := c.Solver.Hydrate(base, func(p string) (*optimizerpkg.AnnealConfig, error) {
		cfg, err := confkit.LoadFile[optimizerpkg.AnnealConfig](p, true)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}); err != nil {
		return fmt.Errorf("hydrate solver config: %w", err)
	}
	return nil
}

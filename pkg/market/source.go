package market

import (
	"fmt"
)

// ProviderFactory builds a history provider from configuration. Providers
// living outside this package (such as sim) register themselves via
// RegisterSource to avoid an import cycle.
type ProviderFactory func(cfg *Config) (HistoryProvider, error)

var factories = map[string]ProviderFactory{
	"fixture": func(cfg *Config) (HistoryProvider, error) {
		if cfg.FixtureDir == "" {
			return nil, fmt.Errorf("market: fixture source requires FixtureDir")
		}
		return NewFixtureProvider(cfg.FixtureDir), nil
	},
}

// RegisterSource registers a provider factory under a source name.
// Registration is expected at init time, before NewProvider runs.
func RegisterSource(name string, factory ProviderFactory) {
	factories[name] = factory
}

// NewProvider builds the provider named by cfg.Source.
func NewProvider(cfg *Config) (HistoryProvider, error) {
	if cfg == nil {
		cfg = &Config{Source: "sim"}
	}
	source := cfg.Source
	if source == "" {
		source = "sim"
	}
	factory, ok := factories[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return factory(cfg)
}

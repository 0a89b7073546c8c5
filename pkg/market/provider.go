package market

import "context"

// MinHistoryDays is the smallest history window worth requesting; shorter
// windows produce statistics too noisy to optimize on.
const MinHistoryDays = 60

// HistoryProvider is the price-history capability. Implementations return
// daily close prices ordered oldest to newest. A provider may return fewer
// points than requested, or an error when the symbol is unknown; callers are
// expected to degrade gracefully in both cases.
type HistoryProvider interface {
	History(ctx context.Context, symbol string, days int) ([]PricePoint, error)
}

// Config selects and parameterizes the history provider.
type Config struct {
	// Source picks the provider implementation.
	Source string `json:",default=sim,options=sim|fixture"`
	// Seed drives the sim provider's deterministic series.
	Seed int64 `json:",default=42"`
	// FixtureDir holds recorded price histories for the fixture provider.
	FixtureDir string `json:",optional"`
	// UniverseFile points at the predefined symbol lists (YAML).
	UniverseFile string `json:",optional"`
}

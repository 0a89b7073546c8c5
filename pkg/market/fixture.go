package market

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// FixtureProvider replays price histories recorded on disk. Each symbol is a
// msgpack file of PricePoint values, oldest to newest. It backs offline runs
// and tests without reaching for a live data source.
type FixtureProvider struct {
	dir string
}

// NewFixtureProvider creates a provider reading fixtures from dir.
func NewFixtureProvider(dir string) *FixtureProvider {
	return &FixtureProvider{dir: dir}
}

// History returns up to the last days points recorded for symbol.
func (p *FixtureProvider) History(_ context.Context, symbol string, days int) ([]PricePoint, error) {
	raw, err := os.ReadFile(p.path(symbol))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoHistory, symbol, err)
	}
	var points []PricePoint
	if err := msgpack.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("market: decode fixture %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s: empty fixture", ErrNoHistory, symbol)
	}
	if days > 0 && len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}

// WriteFixture records a price history for symbol under dir. Used by tests
// and by the recording path of offline tooling.
func WriteFixture(dir, symbol string, points []PricePoint) error {
	raw, err := msgpack.Marshal(points)
	if err != nil {
		return fmt.Errorf("market: encode fixture %s: %w", symbol, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("market: fixture dir %s: %w", dir, err)
	}
	p := (&FixtureProvider{dir: dir}).path(symbol)
	if err := os.WriteFile(p, raw, 0o600); err != nil {
		return fmt.Errorf("market: write fixture %s: %w", symbol, err)
	}
	return nil
}

func (p *FixtureProvider) path(symbol string) string {
	// Symbols may contain characters unfriendly to filesystems (e.g. "NDA-FI.HE").
	name := strings.NewReplacer("/", "_", "^", "_").Replace(symbol)
	return filepath.Join(p.dir, name+".msgpack")
}

package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProviderFixture(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteFixture(dir, "NOK", pricePair(base, 4.0, 4.2)))

	p, err := NewProvider(&Config{Source: "fixture", FixtureDir: dir})
	require.NoError(t, err)

	points, err := p.History(context.Background(), "NOK", 10)
	require.NoError(t, err)
	require.Len(t, points, 2)
}

func TestNewProviderFixtureRequiresDir(t *testing.T) {
	_, err := NewProvider(&Config{Source: "fixture"})
	require.Error(t, err)
}

func TestNewProviderUnknownSource(t *testing.T) {
	_, err := NewProvider(&Config{Source: "telepathy"})
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestRegisterSource(t *testing.T) {
	called := false
	RegisterSource("custom", func(cfg *Config) (HistoryProvider, error) {
		called = true
		return NewFixtureProvider(t.TempDir()), nil
	})
	t.Cleanup(func() { delete(factories, "custom") })

	_, err := NewProvider(&Config{Source: "custom"})
	require.NoError(t, err)
	require.True(t, called)
}

package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixtureRoundTrip(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := []PricePoint{
		{Date: base, Close: 4.00},
		{Date: base.AddDate(0, 0, 1), Close: 4.20},
		{Date: base.AddDate(0, 0, 2), Close: 4.10},
	}
	require.NoError(t, WriteFixture(dir, "NOK", points))

	got, err := NewFixtureProvider(dir).History(context.Background(), "NOK", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range points {
		require.True(t, points[i].Date.Equal(got[i].Date))
		require.Equal(t, points[i].Close, got[i].Close)
	}
}

func TestFixtureHistoryTruncatesToWindow(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]PricePoint, 10)
	for i := range points {
		points[i] = PricePoint{Date: base.AddDate(0, 0, i), Close: float64(100 + i)}
	}
	require.NoError(t, WriteFixture(dir, "AAPL", points))

	got, err := NewFixtureProvider(dir).History(context.Background(), "AAPL", 4)
	require.NoError(t, err)
	require.Len(t, got, 4)
	// The most recent closes survive.
	require.Equal(t, 106.0, got[0].Close)
	require.Equal(t, 109.0, got[3].Close)
}

func TestFixtureMissingSymbol(t *testing.T) {
	_, err := NewFixtureProvider(t.TempDir()).History(context.Background(), "GONE", 10)
	require.ErrorIs(t, err, ErrNoHistory)
}

func TestFixtureSanitizesSymbolPath(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := pricePair(base, 100, 101)
	require.NoError(t, WriteFixture(dir, "^GSPC", points))

	got, err := NewFixtureProvider(dir).History(context.Background(), "^GSPC", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func pricePair(base time.Time, a, b float64) []PricePoint {
	return []PricePoint{
		{Date: base, Close: a},
		{Date: base.AddDate(0, 0, 1), Close: b},
	}
}

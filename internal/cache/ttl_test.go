package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quanport/internal/config"
)

func TestNewTTLSet(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 5, Medium: 30, Long: 120})
	require.Equal(t, 5*time.Second, ttl.Short)
	require.Equal(t, 30*time.Second, ttl.Medium)
	require.Equal(t, 2*time.Minute, ttl.Long)
}

func TestNewTTLSetDefaults(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{})
	require.Equal(t, 10*time.Second, ttl.Short)
	require.Equal(t, time.Minute, ttl.Medium)
	require.Equal(t, 5*time.Minute, ttl.Long)
}

func TestDuration(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 1, Medium: 2, Long: 3})
	require.Equal(t, time.Second, ttl.Duration(TTLShort))
	require.Equal(t, 2*time.Second, ttl.Duration(TTLMedium))
	require.Equal(t, 3*time.Second, ttl.Duration(TTLLong))
	require.Zero(t, ttl.Duration(TTLClass("bogus")))
}

func TestDomainTTLsShareLongBucket(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 1, Medium: 2, Long: 300})
	require.Equal(t, 5*time.Minute, StatisticsTTL(ttl))
	require.Equal(t, 5*time.Minute, AssetTTL(ttl))
}

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"quanport/internal/config"
	"quanport/pkg/optimizer"
)

func TestConfigSummaryLines(t *testing.T) {
	cfg := config.Default()
	lines := ConfigSummaryLines(cfg)
	require.Len(t, lines, 8)

	joined := strings.Join(lines, "\n")
	require.Contains(t, joined, "Environment: test")
	require.Contains(t, joined, "60 trading days")
	require.Contains(t, joined, "Benchmark: configured")
	require.Contains(t, joined, "10s / 60s / 300s")
	require.Contains(t, joined, "2-6, default budget 2")
	require.Contains(t, joined, "Market config: not configured")
}

func TestConfigSummaryLinesSections(t *testing.T) {
	cfg := config.Default()
	cfg.BenchmarkSymbol = ""
	cfg.Market.File = "/etc/quanport/market.yaml"
	solverCfg := optimizer.DefaultAnnealConfig()
	cfg.Solver.Value = &solverCfg

	joined := strings.Join(ConfigSummaryLines(cfg), "\n")
	require.Contains(t, joined, "Benchmark: not configured")
	require.Contains(t, joined, "Market config: /etc/quanport/market.yaml")
	require.Contains(t, joined, "Solver config: inline")
}

func TestConfigSummaryLinesNil(t *testing.T) {
	require.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))
}

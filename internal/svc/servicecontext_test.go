package svc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"quanport/internal/config"
	"quanport/pkg/market"
	"quanport/pkg/optimizer"
)

func TestNewServiceContextDefaults(t *testing.T) {
	sc, err := NewServiceContext(config.Default())
	require.NoError(t, err)

	require.NotNil(t, sc.History)
	require.NotNil(t, sc.Assets)
	require.NotNil(t, sc.Stats)
	require.IsType(t, optimizer.ExactSolver{}, sc.Exact)
	require.NotNil(t, sc.Variational)
	require.Equal(t, market.DefaultUniverse().Default, sc.Universe.Default)

	// The default wiring resolves to the sim source; history is available
	// for any symbol.
	points, err := sc.History.History(context.Background(), "NOK", 10)
	require.NoError(t, err)
	require.Len(t, points, 10)
}

func TestNewServiceContextUnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Market.Value = &market.Config{Source: "telepathy"}

	_, err := NewServiceContext(cfg)
	require.ErrorIs(t, err, market.ErrUnknownSource)
}

func TestNewServiceContextBadSolverDemotes(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Value = &optimizer.AnnealConfig{MaxIterations: 0}

	sc, err := NewServiceContext(cfg)
	require.NoError(t, err)
	require.Nil(t, sc.Variational)
	require.NotNil(t, sc.Exact)
}

package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadUniverse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	raw := `
default: [NOK, AAPL]
lists:
  tech: [AAPL, MSFT]
names:
  NOK: Nokia
  AAPL: Apple
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	u, err := LoadUniverse(path)
	require.NoError(t, err)
	require.Equal(t, []string{"NOK", "AAPL"}, u.Default)
	require.Equal(t, "Nokia", u.Name("NOK"))

	tech, ok := u.List("tech")
	require.True(t, ok)
	require.Equal(t, []string{"AAPL", "MSFT"}, tech)
}

func TestLoadUniverseRejectsEmptyDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lists:\n  tech: [AAPL]\n"), 0o600))

	_, err := LoadUniverse(path)
	require.Error(t, err)
}

func TestLoadUniverseMissingFile(t *testing.T) {
	_, err := LoadUniverse(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestUniverseListResolution(t *testing.T) {
	u := DefaultUniverse()

	all, ok := u.List("all")
	require.True(t, ok)
	require.Equal(t, u.Default, all)

	empty, ok := u.List("")
	require.True(t, ok)
	require.Equal(t, u.Default, empty)

	finnish, ok := u.List("finnish")
	require.True(t, ok)
	require.Contains(t, finnish, "NOK")

	_, ok = u.List("unknown")
	require.False(t, ok)
}

func TestUniverseNameFallsBackToSymbol(t *testing.T) {
	u := DefaultUniverse()
	require.Equal(t, "Nokia", u.Name("NOK"))
	require.Equal(t, "XYZ", u.Name("XYZ"))

	var nilU *Universe
	require.Equal(t, "NOK", nilU.Name("NOK"))
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func minEigenvalue(t *testing.T, sigma *mat.SymDense) float64 {
	t.Helper()
	var eig mat.EigenSym
	require.True(t, eig.Factorize(sigma, false))
	values := eig.Values(nil)
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func TestEnsurePSDLeavesHealthyMatrixAlone(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{
		0.04, 0.01,
		0.01, 0.02,
	})
	before := mat.NewSymDense(2, nil)
	before.CopySym(sigma)

	ensurePSD(sigma)
	require.True(t, mat.Equal(before, sigma))
}

func TestEnsurePSDShiftsIndefiniteMatrix(t *testing.T) {
	// Eigenvalues ±1: clearly indefinite.
	sigma := mat.NewSymDense(2, []float64{
		0, 1,
		1, 0,
	})
	ensurePSD(sigma)
	require.GreaterOrEqual(t, minEigenvalue(t, sigma), -1e-9)
	// Off-diagonal structure is preserved.
	require.Equal(t, 1.0, sigma.At(0, 1))
}

func TestEnsurePSDDegenerateDuplicateSeries(t *testing.T) {
	// Perfectly correlated assets give a rank-1 covariance with a zero
	// eigenvalue that rounding can push negative.
	sigma := mat.NewSymDense(3, []float64{
		0.04, 0.04, 0.04,
		0.04, 0.04, 0.04,
		0.04, 0.04, 0.04,
	})
	ensurePSD(sigma)
	require.GreaterOrEqual(t, minEigenvalue(t, sigma), -1e-9)
}

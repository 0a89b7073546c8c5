package stats

import (
	"github.com/zeromicro/go-zero/core/logx"
	"gonum.org/v1/gonum/mat"
)

// psdFloor is the smallest acceptable eigenvalue of a covariance matrix.
// Sample covariance of short or collinear histories can dip (numerically)
// below zero; a uniform diagonal shift restores positive semidefiniteness
// without disturbing the off-diagonal structure.
const psdFloor = 1e-8

// ensurePSD shifts the diagonal of sigma in place so its minimum eigenvalue
// is at least psdFloor.
func ensurePSD(sigma *mat.SymDense) {
	n := sigma.SymmetricDim()
	if n == 0 {
		return
	}
	var eig mat.EigenSym
	if !eig.Factorize(sigma, false) {
		// Factorization should not fail on a finite symmetric matrix; shift
		// anyway so downstream risk math stays defined.
		logx.Errorf("stats: eigenvalue factorization failed, applying blind diagonal shift")
		shiftDiagonal(sigma, psdFloor)
		return
	}
	values := eig.Values(nil)
	minEig := values[0]
	for _, v := range values[1:] {
		if v < minEig {
			minEig = v
		}
	}
	if minEig < psdFloor {
		shiftDiagonal(sigma, psdFloor-minEig)
	}
}

func shiftDiagonal(sigma *mat.SymDense, delta float64) {
	for i := 0; i < sigma.SymmetricDim(); i++ {
		sigma.SetSym(i, i, sigma.At(i, i)+delta)
	}
}

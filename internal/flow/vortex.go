package flow

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// VortexField returns the velocity (u, v) and streamfunction psi induced at
// every sample of (X, Y) by a point vortex of the given strength at (xv, yv).
//
//	u   =  strength/(2π) · (Y−yv) / r²
//	v   = −strength/(2π) · (X−xv) / r²
//	psi =  strength/(4π) · ln(r²)
//
// with r² = (X−xv)² + (Y−yv)². A sample exactly on the vortex yields NaN
// velocity and psi = −Inf. X and Y must have the same shape.
func VortexField(strength, xv, yv float64, X, Y mat.Matrix) (u, v, psi *mat.Dense) {
	checkShape(X, Y)
	rows, cols := X.Dims()
	u = mat.NewDense(rows, cols, nil)
	v = mat.NewDense(rows, cols, nil)
	psi = mat.NewDense(rows, cols, nil)

	ku := strength / (2 * math.Pi)
	kv := -strength / (2 * math.Pi)
	kpsi := strength / (4 * math.Pi)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dx := X.At(i, j) - xv
			dy := Y.At(i, j) - yv
			r2 := dx*dx + dy*dy
			u.Set(i, j, ku*dy/r2)
			v.Set(i, j, kv*dx/r2)
			psi.Set(i, j, kpsi*math.Log(r2))
		}
	}
	return u, v, psi
}

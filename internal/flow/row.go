package flow

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// VortexRowField returns the velocity induced at every sample of (X, Y) by an
// infinite row of vortices of the given strength, spaced a apart along the
// x-axis with one vortex at the origin.
//
//	u =  strength/(2a) · sinh(2πY/a) / (cosh(2πY/a) − cos(2πX/a))
//	v = −strength/(2a) · sin(2πX/a)  / (cosh(2πY/a) − cos(2πX/a))
//
// The denominator vanishes on the vortex centers and a = 0 is not rejected;
// both produce Inf or NaN samples.
func VortexRowField(strength, a float64, X, Y mat.Matrix) (u, v *mat.Dense) {
	checkShape(X, Y)
	rows, cols := X.Dims()
	u = mat.NewDense(rows, cols, nil)
	v = mat.NewDense(rows, cols, nil)

	ku := strength / (2 * a)
	kv := -strength / (2 * a)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			ax := 2 * math.Pi * X.At(i, j) / a
			ay := 2 * math.Pi * Y.At(i, j) / a
			sin, cos := math.Sincos(ax)
			den := math.Cosh(ay) - cos
			u.Set(i, j, ku*(math.Sinh(ay)/den))
			v.Set(i, j, kv*(sin/den))
		}
	}
	return u, v
}

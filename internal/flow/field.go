package flow

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Field holds velocity components sampled on a grid. Psi is the
// streamfunction and is nil when the source does not provide one.
type Field struct {
	U, V *mat.Dense
	Psi  *mat.Dense
}

// Source is anything that can be evaluated on a grid.
type Source interface {
	Field(g Grid) Field
}

// Vortex is a point vortex. Positive strength turns clockwise.
type Vortex struct {
	Strength float64
	X, Y     float64
}

// Field evaluates the vortex on g, with its streamfunction.
func (vx Vortex) Field(g Grid) Field {
	u, v, psi := VortexField(vx.Strength, vx.X, vx.Y, g.X, g.Y)
	return Field{U: u, V: v, Psi: psi}
}

// VortexRow is an infinite row of vortices along the x-axis.
type VortexRow struct {
	Strength float64
	Spacing  float64
}

// Field evaluates the row on g. A row has no streamfunction, so Psi is nil.
func (r VortexRow) Field(g Grid) Field {
	u, v := VortexRowField(r.Strength, r.Spacing, g.X, g.Y)
	return Field{U: u, V: v}
}

// Superpose sums the fields of all sources on g. Psi is summed only when every
// source provides one. With no sources the result is a still field.
func Superpose(g Grid, sources ...Source) Field {
	rows, cols := g.Dims()
	out := Field{
		U:   mat.NewDense(rows, cols, nil),
		V:   mat.NewDense(rows, cols, nil),
		Psi: mat.NewDense(rows, cols, nil),
	}
	for _, s := range sources {
		f := s.Field(g)
		out.U.Add(out.U, f.U)
		out.V.Add(out.V, f.V)
		if out.Psi == nil {
			continue
		}
		if f.Psi == nil {
			out.Psi = nil
			continue
		}
		out.Psi.Add(out.Psi, f.Psi)
	}
	return out
}

func (f Field) Dims() (rows, cols int) {
	return f.U.Dims()
}

// Speed returns sqrt(u² + v²) at every sample.
func (f Field) Speed() *mat.Dense {
	rows, cols := f.U.Dims()
	s := mat.NewDense(rows, cols, nil)
	s.Apply(func(i, j int, u float64) float64 {
		return math.Hypot(u, f.V.At(i, j))
	}, f.U)
	return s
}

// NonFinite counts samples whose u or v is NaN or infinite.
func (f Field) NonFinite() int {
	rows, cols := f.U.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !finite(f.U.At(i, j)) || !finite(f.V.At(i, j)) {
				n++
			}
		}
	}
	return n
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

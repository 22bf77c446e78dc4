package flow

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Grid is a rectangular set of sample points. The sample in row i, column j
// sits at (X[i][j], Y[i][j]).
type Grid struct {
	X, Y *mat.Dense
}

// NewGrid pairs coordinate matrices into a Grid. It panics with mat.ErrShape
// if X and Y differ in shape.
func NewGrid(X, Y *mat.Dense) Grid {
	checkShape(X, Y)
	return Grid{X: X, Y: Y}
}

// MeshGrid samples [xStart, xEnd] with nx points and [yStart, yEnd] with ny
// points, both endpoints included. X varies along columns and Y along rows,
// so the grid has ny rows and nx columns.
func MeshGrid(xStart, xEnd float64, nx int, yStart, yEnd float64, ny int) Grid {
	xs := Linspace(xStart, xEnd, nx)
	ys := Linspace(yStart, yEnd, ny)

	X := mat.NewDense(ny, nx, nil)
	Y := mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		X.SetRow(i, xs)
		for j := 0; j < nx; j++ {
			Y.Set(i, j, ys[i])
		}
	}
	return Grid{X: X, Y: Y}
}

// Linspace returns n evenly spaced values over [start, end].
// A single point is start itself.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

func (g Grid) Dims() (rows, cols int) {
	return g.X.Dims()
}

// At returns the coordinates of the sample in row i, column j.
func (g Grid) At(i, j int) (x, y float64) {
	return g.X.At(i, j), g.Y.At(i, j)
}

// Bounds returns the extent of the grid.
func (g Grid) Bounds() (xMin, xMax, yMin, yMax float64) {
	return mat.Min(g.X), mat.Max(g.X), mat.Min(g.Y), mat.Max(g.Y)
}

func checkShape(a, b mat.Matrix) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(mat.ErrShape)
	}
}

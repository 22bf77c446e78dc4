package plot

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ContourLayer fills every grid cell with the color of the band its mean
// value falls in. Levels holds the band edges, evenly spaced over the finite
// range of C.
type ContourLayer struct {
	X, Y, C *mat.Dense
	Levels  []float64
	Colors  []string
}

func newContourLayer(X, Y, C mat.Matrix, bands int) (*ContourLayer, error) {
	if !sameShape(X, Y, C) {
		return nil, ErrShape
	}
	if bands < 1 {
		bands = 1
	}
	lo, hi, ok := finiteRange(C)
	if !ok {
		return nil, ErrNoFiniteData
	}
	return &ContourLayer{
		X:      mat.DenseCopyOf(X),
		Y:      mat.DenseCopyOf(Y),
		C:      mat.DenseCopyOf(C),
		Levels: floats.Span(make([]float64, bands+1), lo, hi),
		Colors: Colormap(bands),
	}, nil
}

// Band returns the band index of c, or -1 when c is not finite or lies outside
// the levels.
func (l *ContourLayer) Band(c float64) int {
	n := len(l.Levels) - 1
	lo, hi := l.Levels[0], l.Levels[n]
	if !finite(c) || c < lo || c > hi {
		return -1
	}
	if hi == lo {
		return 0
	}
	b := int((c - lo) / (hi - lo) * float64(n))
	if b >= n {
		b = n - 1
	}
	return b
}

// CellBand returns the band of the cell spanning samples (i, j) to
// (i+1, j+1), or -1 when any corner is not finite.
func (l *ContourLayer) CellBand(i, j int) int {
	sum := l.C.At(i, j) + l.C.At(i+1, j) + l.C.At(i, j+1) + l.C.At(i+1, j+1)
	return l.Band(sum / 4)
}

func (l *ContourLayer) svg(sb *strings.Builder, t transform) {
	rows, cols := l.C.Dims()
	sb.WriteString("<g stroke-width=\"0.5\">\n")
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			b := l.CellBand(i, j)
			if b < 0 {
				continue
			}
			x0, y0 := t.apply(Point{X: l.X.At(i, j), Y: l.Y.At(i, j)})
			x1, y1 := t.apply(Point{X: l.X.At(i+1, j+1), Y: l.Y.At(i+1, j+1)})
			color := l.Colors[b]
			fmt.Fprintf(sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\" stroke=\"%s\"/>\n",
				math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0), color, color)
		}
	}
	sb.WriteString("</g>\n")
}

// raster marks the boundaries between bands.
func (l *ContourLayer) raster(r Raster, t transform) {
	rows, cols := l.C.Dims()
	edge := func(i0, j0, i1, j1 int) {
		if l.Band(l.C.At(i0, j0)) == l.Band(l.C.At(i1, j1)) {
			return
		}
		mid := Point{
			X: (l.X.At(i0, j0) + l.X.At(i1, j1)) / 2,
			Y: (l.Y.At(i0, j0) + l.Y.At(i1, j1)) / 2,
		}
		if x, y, ok := t.pixel(mid); ok {
			r.Set(x, y)
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j+1 < cols {
				edge(i, j, i, j+1)
			}
			if i+1 < rows {
				edge(i, j, i+1, j)
			}
		}
	}
}

func finiteRange(m mat.Matrix) (lo, hi float64, ok bool) {
	rows, cols := m.Dims()
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if !finite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// Package plot draws sampled 2D flow data onto an explicit [Figure].
//
// A Figure owns its axis box and a list of layers. Nothing is global: every
// drawing call targets the figure it is given, and the figure is rendered with
// [Figure.WriteSVG] or onto any [Raster] with [Figure.Rasterize].
//
//	fig, _ := plot.EzStreamline(g.X, g.Y, f.U, f.V, plot.Box{XStart: -2, YStart: -1, XEnd: 2, YEnd: 1})
//	_ = plot.EzScatter(fig, []float64{0}, []float64{0})
//	_ = fig.WriteSVG(os.Stdout, 80)
package plot

import (
	"gonum.org/v1/gonum/mat"
)

const (
	// FigureWidth is the width of every figure in figure units (inches).
	FigureWidth = 10.0

	// LabelFontSize is the axis label size in points.
	LabelFontSize = 16.0
)

// Box is an axis bounding box.
type Box struct {
	XStart, YStart float64
	XEnd, YEnd     float64
}

func (b Box) Width() float64  { return b.XEnd - b.XStart }
func (b Box) Height() float64 { return b.YEnd - b.YStart }

// Aspect is height over width.
func (b Box) Aspect() float64 { return b.Height() / b.Width() }

func (b Box) valid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// Figure is a set of layers drawn over a fixed axis box.
type Figure struct {
	Box            Box
	Width, Height  float64
	XLabel, YLabel string
	FontSize       float64

	layers []Layer
}

// NewFigure returns an empty figure over box. Its width is FigureWidth and its
// height follows the aspect ratio of the box.
func NewFigure(box Box) (*Figure, error) {
	if !box.valid() {
		return nil, ErrInvalidBox
	}
	return &Figure{
		Box:      box,
		Width:    FigureWidth,
		Height:   box.Aspect() * FigureWidth,
		XLabel:   "x",
		YLabel:   "y",
		FontSize: LabelFontSize,
	}, nil
}

// Layers returns the layers in drawing order.
func (f *Figure) Layers() []Layer {
	return f.layers
}

// Add appends a layer.
func (f *Figure) Add(l Layer) {
	f.layers = append(f.layers, l)
}

// Scatter adds a green scatter of circles of size 80.
func (f *Figure) Scatter(x, y []float64) error {
	pts, err := zip(x, y)
	if err != nil {
		return err
	}
	f.Add(&ScatterLayer{Points: pts, Color: "#008000", Size: 80, Marker: "o"})
	return nil
}

// Line adds a polyline through (x[i], y[i]).
func (f *Figure) Line(x, y []float64) error {
	pts, err := zip(x, y)
	if err != nil {
		return err
	}
	f.Add(&LineLayer{Points: pts, Color: DefaultLineColor, LineWidth: 1.5})
	return nil
}

// Contourf adds filled contours of C sampled on (X, Y) with the given number
// of bands.
func (f *Figure) Contourf(X, Y, C mat.Matrix, levels int) error {
	l, err := newContourLayer(X, Y, C, levels)
	if err != nil {
		return err
	}
	f.Add(l)
	return nil
}

// Streamline adds streamlines of (U, V) sampled on (X, Y) with
// [DefaultStreamOptions].
func (f *Figure) Streamline(X, Y, U, V mat.Matrix) error {
	return f.StreamlineWith(X, Y, U, V, DefaultStreamOptions())
}

// StreamlineWith adds streamlines drawn and traced the way opt says.
func (f *Figure) StreamlineWith(X, Y, U, V mat.Matrix, opt StreamOptions) error {
	l, err := newStreamLayer(X, Y, U, V, opt)
	if err != nil {
		return err
	}
	f.Add(l)
	return nil
}

// EzScatter scatters (x, y) onto an existing figure.
func EzScatter(fig *Figure, x, y []float64) error {
	return fig.Scatter(x, y)
}

// EzPlot returns a new figure over box with a line through (x, y).
func EzPlot(x, y []float64, box Box) (*Figure, error) {
	fig, err := NewFigure(box)
	if err != nil {
		return nil, err
	}
	if err := fig.Line(x, y); err != nil {
		return nil, err
	}
	return fig, nil
}

// EzContourf returns a new figure over box with filled contours of C.
func EzContourf(X, Y, C mat.Matrix, levels int, box Box) (*Figure, error) {
	fig, err := NewFigure(box)
	if err != nil {
		return nil, err
	}
	if err := fig.Contourf(X, Y, C, levels); err != nil {
		return nil, err
	}
	return fig, nil
}

// EzStreamline returns a new figure over box with the streamlines of (U, V).
func EzStreamline(X, Y, U, V mat.Matrix, box Box) (*Figure, error) {
	fig, err := NewFigure(box)
	if err != nil {
		return nil, err
	}
	if err := fig.Streamline(X, Y, U, V); err != nil {
		return nil, err
	}
	return fig, nil
}

func zip(x, y []float64) ([]Point, error) {
	if len(x) != len(y) {
		return nil, ErrLengthMismatch
	}
	pts := make([]Point, len(x))
	for i := range x {
		pts[i] = Point{X: x[i], Y: y[i]}
	}
	return pts, nil
}

func sameShape(ms ...mat.Matrix) bool {
	r0, c0 := ms[0].Dims()
	for _, m := range ms[1:] {
		r, c := m.Dims()
		if r != r0 || c != c0 {
			return false
		}
	}
	return true
}

package plot

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ezflow/internal/integrators"
)

// StreamOptions controls streamline seeding and drawing.
type StreamOptions struct {
	// Density scales the seeding lattice; 1 gives a 30x30 lattice.
	Density    float64
	LineWidth  float64
	ArrowSize  float64
	ArrowStyle string
	// Integrator steps along the normalized field. Nil means RK4.
	Integrator integrators.Integrator
}

// DefaultStreamOptions gives density 2, line width 1 and "->" arrows of size 1.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		Density:    2,
		LineWidth:  1,
		ArrowSize:  1,
		ArrowStyle: "->",
	}
}

// StreamPath is one traced streamline. The arrow sits on the segment from
// Points[Arrow] to Points[Arrow+1] and points along the flow.
type StreamPath struct {
	Points []Point
	Arrow  int
}

// StreamLayer draws streamlines with a direction arrow on each.
type StreamLayer struct {
	Paths []StreamPath
	Color string
	StreamOptions
}

func newStreamLayer(X, Y, U, V mat.Matrix, opt StreamOptions) (*StreamLayer, error) {
	if !sameShape(X, Y, U, V) {
		return nil, ErrShape
	}
	xs, ys, err := axes(X, Y)
	if err != nil {
		return nil, err
	}
	if opt.Integrator == nil {
		opt.Integrator = integrators.NewRK4()
	}
	t := newTracer(xs, ys, integrators.Unit(bilinear(xs, ys, U, V)), opt.Integrator, opt.Density)
	return &StreamLayer{
		Paths:         t.run(),
		Color:         DefaultLineColor,
		StreamOptions: opt,
	}, nil
}

// axes extracts the sample coordinates of a rectilinear grid.
func axes(X, Y mat.Matrix) (xs, ys []float64, err error) {
	rows, cols := X.Dims()
	if rows < 2 || cols < 2 {
		return nil, nil, ErrGridNotIncreasing
	}
	xs = make([]float64, cols)
	for j := range xs {
		xs[j] = X.At(0, j)
	}
	ys = make([]float64, rows)
	for i := range ys {
		ys[i] = Y.At(i, 0)
	}
	if !increasing(xs) || !increasing(ys) {
		return nil, nil, ErrGridNotIncreasing
	}
	return xs, ys, nil
}

func increasing(a []float64) bool {
	for i := 1; i < len(a); i++ {
		if !(a[i] > a[i-1]) {
			return false
		}
	}
	return true
}

// bilinear interpolates (U, V) between the grid samples. Outside the grid, and
// next to any non-finite sample, the velocity is NaN.
func bilinear(xs, ys []float64, U, V mat.Matrix) integrators.VelocityFunc {
	return func(x, y float64) (float64, float64) {
		j, tx, okx := locate(xs, x)
		i, ty, oky := locate(ys, y)
		if !okx || !oky {
			return math.NaN(), math.NaN()
		}
		return lerp2(U, i, j, tx, ty), lerp2(V, i, j, tx, ty)
	}
}

// locate finds k and t with a[k] <= x <= a[k+1] and x = a[k] + t·(a[k+1]-a[k]).
func locate(a []float64, x float64) (int, float64, bool) {
	n := len(a)
	if !(x >= a[0] && x <= a[n-1]) {
		return 0, 0, false
	}
	k := sort.SearchFloat64s(a, x)
	if k == 0 {
		return 0, 0, true
	}
	k--
	return k, (x - a[k]) / (a[k+1] - a[k]), true
}

func lerp2(m mat.Matrix, i, j int, tx, ty float64) float64 {
	bottom := (1-tx)*m.At(i, j) + tx*m.At(i, j+1)
	top := (1-tx)*m.At(i+1, j) + tx*m.At(i+1, j+1)
	return (1-ty)*bottom + ty*top
}

// tracer seeds and integrates streamlines over an occupancy mask. A
// streamline stops when it leaves the grid, meets a non-finite or zero
// velocity, or enters a mask cell another streamline already crossed.
type tracer struct {
	f     integrators.VelocityFunc
	integ integrators.Integrator

	x0, x1, y0, y1 float64
	mx, my         int
	cw, ch         float64
	mask           []bool
	trail          []int

	ds        float64
	maxSteps  int
	minLength float64
}

func newTracer(xs, ys []float64, f integrators.VelocityFunc, integ integrators.Integrator, density float64) *tracer {
	n := int(30 * density)
	if n < 1 {
		n = 1
	}
	t := &tracer{
		f:     f,
		integ: integ,
		x0:    xs[0],
		x1:    xs[len(xs)-1],
		y0:    ys[0],
		y1:    ys[len(ys)-1],
		mx:    n,
		my:    n,
		mask:  make([]bool, n*n),
	}
	t.cw = (t.x1 - t.x0) / float64(t.mx)
	t.ch = (t.y1 - t.y0) / float64(t.my)
	t.ds = 0.2 * math.Min(t.cw, t.ch)
	t.maxSteps = 50 * (t.mx + t.my)
	t.minLength = 0.1 * math.Min(t.x1-t.x0, t.y1-t.y0)
	return t
}

func (t *tracer) run() []StreamPath {
	var paths []StreamPath
	for cy := 0; cy < t.my; cy++ {
		for cx := 0; cx < t.mx; cx++ {
			if t.mask[cy*t.mx+cx] {
				continue
			}
			seed := Point{
				X: t.x0 + (float64(cx)+0.5)*t.cw,
				Y: t.y0 + (float64(cy)+0.5)*t.ch,
			}
			if p, ok := t.trace(seed); ok {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func (t *tracer) trace(seed Point) (StreamPath, bool) {
	if u, v := t.f(seed.X, seed.Y); !finite(u) || !finite(v) || (u == 0 && v == 0) {
		return StreamPath{}, false
	}
	t.trail = t.trail[:0]
	start := t.cell(seed)
	t.mark(start)

	back, lb := t.integrate(seed, start, -1)
	fwd, lf := t.integrate(seed, start, 1)
	if lb+lf < t.minLength {
		t.undo()
		return StreamPath{}, false
	}

	pts := make([]Point, 0, len(back)+len(fwd)+1)
	for i := len(back) - 1; i >= 0; i-- {
		pts = append(pts, back[i])
	}
	pts = append(pts, seed)
	pts = append(pts, fwd...)

	arrow := len(pts) / 2
	if arrow > len(pts)-2 {
		arrow = len(pts) - 2
	}
	return StreamPath{Points: pts, Arrow: arrow}, true
}

func (t *tracer) integrate(p Point, c int, dir float64) ([]Point, float64) {
	f := t.f
	if dir < 0 {
		f = func(x, y float64) (float64, float64) {
			u, v := t.f(x, y)
			return -u, -v
		}
	}

	var pts []Point
	length := 0.0
	for step := 0; step < t.maxSteps; step++ {
		q := t.integ.Step(f, p, t.ds)
		if !t.inside(q) || q == p {
			break
		}
		if nc := t.cell(q); nc != c {
			if t.mask[nc] {
				break
			}
			t.mark(nc)
			c = nc
		}
		length += math.Hypot(q.X-p.X, q.Y-p.Y)
		pts = append(pts, q)
		p = q
	}
	return pts, length
}

func (t *tracer) inside(p Point) bool {
	return p.X >= t.x0 && p.X <= t.x1 && p.Y >= t.y0 && p.Y <= t.y1
}

func (t *tracer) cell(p Point) int {
	cx := int((p.X - t.x0) / t.cw)
	cy := int((p.Y - t.y0) / t.ch)
	cx = min(max(cx, 0), t.mx-1)
	cy = min(max(cy, 0), t.my-1)
	return cy*t.mx + cx
}

func (t *tracer) mark(c int) {
	t.mask[c] = true
	t.trail = append(t.trail, c)
}

func (t *tracer) undo() {
	for _, c := range t.trail {
		t.mask[c] = false
	}
	t.trail = t.trail[:0]
}

func (l *StreamLayer) svg(sb *strings.Builder, t transform) {
	width := l.LineWidth * t.pxPerPoint
	for _, p := range l.Paths {
		writePath(sb, t, p.Points, l.Color, width)
		l.svgArrow(sb, t, p, width)
	}
}

func (l *StreamLayer) svgArrow(sb *strings.Builder, t transform, p StreamPath, width float64) {
	if p.Arrow < 0 || p.Arrow+1 >= len(p.Points) {
		return
	}
	ax, ay := t.apply(p.Points[p.Arrow])
	bx, by := t.apply(p.Points[p.Arrow+1])
	dx, dy := bx-ax, by-ay
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	dx, dy = dx/n, dy/n

	size := 5 * l.ArrowSize * t.pxPerPoint
	const spread = math.Pi / 6
	var d strings.Builder
	for _, a := range []float64{spread, -spread} {
		sin, cos := math.Sincos(a)
		hx := -(dx*cos - dy*sin) * size
		hy := -(dx*sin + dy*cos) * size
		fmt.Fprintf(&d, "M%.1f,%.1f L%.1f,%.1f ", bx+hx, by+hy, bx, by)
	}
	fmt.Fprintf(sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" d=\"%s\"/>\n",
		l.Color, width, strings.TrimSpace(d.String()))
}

func (l *StreamLayer) raster(r Raster, t transform) {
	for _, p := range l.Paths {
		drawPolyline(r, t, p.Points)
	}
}

package metrics

import (
	"math"

	"github.com/san-kum/ezflow/internal/flow"
)

// Metric summarizes a sampled field. Observe may be called on several
// fields; Value reports over everything observed since the last Reset.
type Metric interface {
	Name() string
	Observe(g flow.Grid, f flow.Field)
	Value() float64
	Reset()
}

// Defaults returns fresh instances of every metric stored with a run.
func Defaults() []Metric {
	return []Metric{
		NewMaxSpeed(),
		NewMeanEnergy(),
		NewCirculation(),
		NewSingular(),
	}
}

// Evaluate resets ms, observes one field and collects the values by name.
func Evaluate(ms []Metric, g flow.Grid, f flow.Field) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		m.Observe(g, f)
		out[m.Name()] = m.Value()
	}
	return out
}

// MaxSpeed tracks the largest finite speed on the grid.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(g flow.Grid, f flow.Field) {
	rows, cols := f.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			s := math.Hypot(f.U.At(i, j), f.V.At(i, j))
			if finite(s) && s > m.max {
				m.max = s
			}
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// MeanEnergy is the mean kinetic energy per unit mass, (u² + v²)/2, over
// the finite samples.
type MeanEnergy struct {
	name    string
	total   float64
	samples int
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "mean_energy"}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(g flow.Grid, f flow.Field) {
	rows, cols := f.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			u, v := f.U.At(i, j), f.V.At(i, j)
			ke := 0.5 * (u*u + v*v)
			if !finite(ke) {
				continue
			}
			e.total += ke
			e.samples++
		}
	}
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// Circulation integrates u dx + v dy counterclockwise around the grid
// boundary with the trapezoidal rule. Segments touching a non-finite sample
// are skipped. For point vortices inside the grid the result approaches
// minus the sum of their strengths.
type Circulation struct {
	name  string
	value float64
}

func NewCirculation() *Circulation {
	return &Circulation{name: "circulation"}
}

func (c *Circulation) Name() string { return c.name }

func (c *Circulation) Observe(g flow.Grid, f flow.Field) {
	rows, cols := g.Dims()
	if rows < 2 || cols < 2 {
		return
	}
	loop := boundary(rows, cols)
	for k := range loop {
		p, q := loop[k], loop[(k+1)%len(loop)]
		xp, yp := g.At(p[0], p[1])
		xq, yq := g.At(q[0], q[1])
		up, vp := f.U.At(p[0], p[1]), f.V.At(p[0], p[1])
		uq, vq := f.U.At(q[0], q[1]), f.V.At(q[0], q[1])
		seg := 0.5*(up+uq)*(xq-xp) + 0.5*(vp+vq)*(yq-yp)
		if finite(seg) {
			c.value += seg
		}
	}
}

func (c *Circulation) Value() float64 { return c.value }

func (c *Circulation) Reset() { c.value = 0 }

// boundary lists the edge samples of a rows x cols grid counterclockwise,
// starting at (0, 0), each once.
func boundary(rows, cols int) [][2]int {
	loop := make([][2]int, 0, 2*(rows+cols)-4)
	for j := 0; j < cols-1; j++ {
		loop = append(loop, [2]int{0, j})
	}
	for i := 0; i < rows-1; i++ {
		loop = append(loop, [2]int{i, cols - 1})
	}
	for j := cols - 1; j > 0; j-- {
		loop = append(loop, [2]int{rows - 1, j})
	}
	for i := rows - 1; i > 0; i-- {
		loop = append(loop, [2]int{i, 0})
	}
	return loop
}

// Singular counts samples with a non-finite velocity.
type Singular struct {
	name  string
	count int
}

func NewSingular() *Singular {
	return &Singular{name: "singular"}
}

func (s *Singular) Name() string { return s.name }

func (s *Singular) Observe(g flow.Grid, f flow.Field) { s.count += f.NonFinite() }

func (s *Singular) Value() float64 { return float64(s.count) }

func (s *Singular) Reset() { s.count = 0 }

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

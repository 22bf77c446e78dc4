package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/san-kum/ezflow/internal/config"
	"github.com/san-kum/ezflow/internal/flow"
	"github.com/san-kum/ezflow/internal/integrators"
	"github.com/san-kum/ezflow/internal/plot"
	"github.com/san-kum/ezflow/internal/viz"
	"gonum.org/v1/gonum/mat"
)

var errNoStreamfunction = errors.New("field has no streamfunction, use --kind speed or streamline")

// buildFigure draws the field the way cfg.Plot asks and marks the vortices.
func buildFigure(cfg *config.Config, g flow.Grid, f flow.Field) (*plot.Figure, error) {
	box := cfg.Box()

	var fig *plot.Figure
	var err error
	switch cfg.Plot.Kind {
	case config.KindStreamline:
		fig, err = plot.NewFigure(box)
		if err == nil {
			opt := plot.DefaultStreamOptions()
			opt.Integrator = streamIntegrator(cfg.Plot.Integrator)
			err = fig.StreamlineWith(g.X, g.Y, f.U, f.V, opt)
		}
	case config.KindContour:
		if f.Psi == nil {
			return nil, errNoStreamfunction
		}
		fig, err = plot.EzContourf(g.X, g.Y, f.Psi, cfg.Plot.Levels, box)
	case config.KindSpeed:
		fig, err = plot.EzContourf(g.X, g.Y, f.Speed(), cfg.Plot.Levels, box)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownPlotKind, cfg.Plot.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", cfg.Plot.Kind, err)
	}

	if n := len(cfg.Vortices); n > 0 {
		xs, ys := make([]float64, n), make([]float64, n)
		for i, v := range cfg.Vortices {
			xs[i], ys[i] = v.X, v.Y
		}
		if err := plot.EzScatter(fig, xs, ys); err != nil {
			return nil, err
		}
	}
	return fig, nil
}

// streamIntegrator maps a validated integrator name to its stepper.
func streamIntegrator(name string) integrators.Integrator {
	if name == config.IntegratorEuler {
		return integrators.NewEuler()
	}
	return integrators.NewRK4()
}

// preview rasterizes fig onto a braille canvas width cells wide.
func preview(fig *plot.Figure, width int) string {
	// A terminal cell is roughly twice as tall as it is wide.
	height := int(math.Round(float64(width) * fig.Box.Aspect() / 2))
	if height < 1 {
		height = 1
	}
	c := viz.NewCanvas(width, height)
	fig.Rasterize(c)
	return viz.GlassPanel.Render(c.String())
}

func writeSVG(path string, fig *plot.Figure, pxPerUnit float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := fig.WriteSVG(file, pxPerUnit); err != nil {
		return err
	}
	return file.Sync()
}

type stats struct {
	min, max float64
	n        int
}

// finiteStats gives the range of the finite entries of m.
func finiteStats(m mat.Matrix) stats {
	s := stats{min: math.Inf(1), max: math.Inf(-1)}
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := m.At(i, j)
			if math.IsNaN(x) || math.IsInf(x, 0) {
				continue
			}
			s.min = math.Min(s.min, x)
			s.max = math.Max(s.max, x)
			s.n++
		}
	}
	return s
}

func (s stats) String() string {
	if s.n == 0 {
		return "no finite samples"
	}
	return fmt.Sprintf("[%.4g, %.4g]", s.min, s.max)
}

func printSummary(cfg *config.Config, f flow.Field, values map[string]float64) {
	rows, cols := f.Dims()
	fmt.Println(viz.HeaderStyle.Render(cfg.Name))
	fmt.Println(viz.Metric("grid", fmt.Sprintf("%dx%d on [%g, %g] x [%g, %g]",
		cols, rows, cfg.Grid.XStart, cfg.Grid.XEnd, cfg.Grid.YStart, cfg.Grid.YEnd)))
	fmt.Println(viz.Metric("u", finiteStats(f.U).String()))
	fmt.Println(viz.Metric("v", finiteStats(f.V).String()))
	fmt.Println(viz.Metric("speed", finiteStats(f.Speed()).String()))
	if f.Psi != nil {
		fmt.Println(viz.Metric("psi", finiteStats(f.Psi).String()))
	}
	if n := f.NonFinite(); n > 0 {
		fmt.Println(viz.Metric("singular", fmt.Sprintf("%d samples", n)))
	}
	names := make([]string, 0, len(values))
	for name := range values {
		if name != "singular" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(viz.Metric(name, fmt.Sprintf("%.4g", values[name])))
	}
}

// rowProfile copies row i of m, with infinities replaced by NaN so the graph
// shows them as gaps.
func rowProfile(m mat.Matrix, i int) []float64 {
	_, cols := m.Dims()
	out := make([]float64, cols)
	for j := range out {
		x := m.At(i, j)
		if math.IsInf(x, 0) {
			x = math.NaN()
		}
		out[j] = x
	}
	return out
}

// sceneOf converts a scene config for the explorer. Only the first row is
// shown, and the explorer starts with it switched on when there is one.
func sceneOf(cfg *config.Config) viz.Scene {
	s := viz.Scene{
		Name: cfg.Name,
		Box:  cfg.Box(),
		NX:   cfg.Grid.NX,
		NY:   cfg.Grid.NY,
		Row:  flow.VortexRow{Strength: 1, Spacing: 1},
	}
	for _, v := range cfg.Vortices {
		s.Vortices = append(s.Vortices, flow.Vortex{Strength: v.Strength, X: v.X, Y: v.Y})
	}
	if len(cfg.Rows) > 0 {
		s.Row = flow.VortexRow{Strength: cfg.Rows[0].Strength, Spacing: cfg.Rows[0].Spacing}
		s.RowOn = true
	}
	return s
}

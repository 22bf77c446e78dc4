package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/ezflow/internal/flow"
	"github.com/san-kum/ezflow/internal/plot"
	"gopkg.in/yaml.v3"
)

const (
	DefaultXStart = -2.0
	DefaultXEnd   = 2.0
	DefaultYStart = -1.0
	DefaultYEnd   = 1.0
	DefaultNX     = 50
	DefaultNY     = 25
	DefaultLevels = 20
	DefaultScale  = 100.0 // SVG pixels per unit
)

// Plot kinds.
const (
	KindStreamline = "streamline"
	KindContour    = "contour"
	KindSpeed      = "speed"
)

// Streamline integrators.
const (
	IntegratorRK4   = "rk4"
	IntegratorEuler = "euler"
)

var (
	ErrInvalidGrid       = errors.New("config: grid needs nx, ny >= 2 and increasing bounds")
	ErrZeroSpacing       = errors.New("config: vortex row spacing must be non-zero")
	ErrUnknownPreset     = errors.New("config: unknown preset")
	ErrUnknownPlotKind   = errors.New("config: unknown plot kind")
	ErrInvalidLevels     = errors.New("config: contour levels must be positive")
	ErrNonFinite         = errors.New("config: vortex parameters must be finite")
	ErrUnknownIntegrator = errors.New("config: unknown streamline integrator")
)

// Config describes a scene: a sampling grid, the vortices and vortex rows
// superposed on it, and how to plot the result.
type Config struct {
	Name     string         `yaml:"name" json:"name"`
	Grid     GridConfig     `yaml:"grid" json:"grid"`
	Vortices []VortexConfig `yaml:"vortices,omitempty" json:"vortices,omitempty"`
	Rows     []RowConfig    `yaml:"rows,omitempty" json:"rows,omitempty"`
	Plot     PlotConfig     `yaml:"plot" json:"plot"`
}

type GridConfig struct {
	XStart float64 `yaml:"x_start" json:"x_start"`
	XEnd   float64 `yaml:"x_end" json:"x_end"`
	YStart float64 `yaml:"y_start" json:"y_start"`
	YEnd   float64 `yaml:"y_end" json:"y_end"`
	NX     int     `yaml:"nx" json:"nx"`
	NY     int     `yaml:"ny" json:"ny"`
}

type VortexConfig struct {
	Strength float64 `yaml:"strength" json:"strength"`
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
}

type RowConfig struct {
	Strength float64 `yaml:"strength" json:"strength"`
	Spacing  float64 `yaml:"spacing" json:"spacing"`
}

// PlotConfig selects the plot. An empty Integrator traces streamlines with RK4.
type PlotConfig struct {
	Kind       string  `yaml:"kind" json:"kind"`
	Levels     int     `yaml:"levels" json:"levels"`
	Scale      float64 `yaml:"scale" json:"scale"`
	Integrator string  `yaml:"integrator,omitempty" json:"integrator,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "scene",
		Grid: GridConfig{
			XStart: DefaultXStart,
			XEnd:   DefaultXEnd,
			YStart: DefaultYStart,
			YEnd:   DefaultYEnd,
			NX:     DefaultNX,
			NY:     DefaultNY,
		},
		Plot: PlotConfig{
			Kind:       KindStreamline,
			Levels:     DefaultLevels,
			Scale:      DefaultScale,
			Integrator: IntegratorRK4,
		},
	}
}

// Load reads a YAML scene over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parts of a scene the CLI cannot evaluate. The kernels
// themselves accept any input.
func (c *Config) Validate() error {
	g := c.Grid
	if g.NX < 2 || g.NY < 2 || !(g.XEnd > g.XStart) || !(g.YEnd > g.YStart) {
		return fmt.Errorf("%w: got %dx%d on [%g, %g] x [%g, %g]",
			ErrInvalidGrid, g.NX, g.NY, g.XStart, g.XEnd, g.YStart, g.YEnd)
	}
	for i, v := range c.Vortices {
		if !finite(v.Strength, v.X, v.Y) {
			return fmt.Errorf("%w (vortex %d)", ErrNonFinite, i)
		}
	}
	for i, r := range c.Rows {
		if !finite(r.Strength, r.Spacing) {
			return fmt.Errorf("%w (row %d)", ErrNonFinite, i)
		}
		if r.Spacing == 0 {
			return fmt.Errorf("%w (row %d)", ErrZeroSpacing, i)
		}
	}
	switch c.Plot.Kind {
	case KindStreamline, KindContour, KindSpeed:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlotKind, c.Plot.Kind)
	}
	if c.Plot.Levels < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLevels, c.Plot.Levels)
	}
	switch c.Plot.Integrator {
	case "", IntegratorRK4, IntegratorEuler:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntegrator, c.Plot.Integrator)
	}
	return nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// FlowGrid samples the configured rectangle.
func (c *Config) FlowGrid() flow.Grid {
	g := c.Grid
	return flow.MeshGrid(g.XStart, g.XEnd, g.NX, g.YStart, g.YEnd, g.NY)
}

// Box is the plotting window, equal to the grid bounds.
func (c *Config) Box() plot.Box {
	g := c.Grid
	return plot.Box{XStart: g.XStart, YStart: g.YStart, XEnd: g.XEnd, YEnd: g.YEnd}
}

// Sources lists the vortices followed by the rows.
func (c *Config) Sources() []flow.Source {
	src := make([]flow.Source, 0, len(c.Vortices)+len(c.Rows))
	for _, v := range c.Vortices {
		src = append(src, flow.Vortex{Strength: v.Strength, X: v.X, Y: v.Y})
	}
	for _, r := range c.Rows {
		src = append(src, flow.VortexRow{Strength: r.Strength, Spacing: r.Spacing})
	}
	return src
}

// Field evaluates the superposed scene on its grid.
func (c *Config) Field() (flow.Grid, flow.Field) {
	g := c.FlowGrid()
	return g, flow.Superpose(g, c.Sources()...)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Vortices = append([]VortexConfig(nil), c.Vortices...)
	out.Rows = append([]RowConfig(nil), c.Rows...)
	return &out
}

package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ezflow/internal/flow"
	"github.com/san-kum/ezflow/internal/plot"
)

const (
	canvasWidth   = 60
	canvasHeight  = 20
	strengthStep  = 0.5
	moveFraction  = 0.05 // of the box size per key press
	minGridPoints = 2
)

// Scene is what the explorer draws: point vortices plus an optional
// periodic row, sampled on an NX x NY grid spanning Box.
type Scene struct {
	Name     string
	Box      plot.Box
	NX, NY   int
	Vortices []flow.Vortex
	Row      flow.VortexRow
	RowOn    bool
}

// Explorer is a Bubble Tea model that redraws the streamlines of a scene
// whenever its vortices change.
type Explorer struct {
	scene     Scene
	selected  int
	theme     Theme
	canvas    *Canvas
	paths     int
	nonFinite int
	err       error
}

// NewExplorer copies s and renders it once.
func NewExplorer(s Scene) Explorer {
	s.Vortices = append([]flow.Vortex(nil), s.Vortices...)
	if s.NX < minGridPoints {
		s.NX = minGridPoints
	}
	if s.NY < minGridPoints {
		s.NY = minGridPoints
	}
	m := Explorer{
		scene:  s,
		theme:  ThemeViridis,
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}
	m.redraw()
	return m
}

// Scene returns the current scene.
func (m Explorer) Scene() Scene { return m.scene }

// Canvas returns the canvas holding the last rendered frame.
func (m Explorer) Canvas() *Canvas { return m.canvas }

// Err is the error of the last render, if any.
func (m Explorer) Err() error { return m.err }

func (m Explorer) Init() tea.Cmd { return nil }

// Update handles key presses and window resizes.
func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		dx := moveFraction * m.scene.Box.Width()
		dy := moveFraction * m.scene.Box.Height()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.move(-dx, 0)
		case "right", "l":
			m.move(dx, 0)
		case "up", "k":
			m.move(0, dy)
		case "down", "j":
			m.move(0, -dy)
		case "+", "=":
			m.adjust(strengthStep)
		case "-", "_":
			m.adjust(-strengthStep)
		case "tab":
			if n := len(m.scene.Vortices); n > 0 {
				m.selected = (m.selected + 1) % n
			}
			return m, nil
		case "r":
			m.scene.RowOn = !m.scene.RowOn
		case "t":
			m.theme = NextTheme(m.theme)
			return m, nil
		default:
			return m, nil
		}
		m.redraw()
	case tea.WindowSizeMsg:
		w, h := msg.Width-StatsPanel.GetWidth()-6, msg.Height-4
		if w < 10 {
			w = 10
		}
		if h < 5 {
			h = 5
		}
		// Keep the canvas close to the aspect ratio of the box. A terminal
		// cell is about twice as tall as it is wide.
		if want := int(float64(w) * m.scene.Box.Aspect() / 2); want > 0 && want < h {
			h = want
		}
		m.canvas = NewCanvas(w, h)
		m.redraw()
	}
	return m, nil
}

// move shifts the selected vortex, copying the slice so earlier models
// keep their scene.
func (m *Explorer) move(dx, dy float64) {
	if len(m.scene.Vortices) == 0 {
		return
	}
	vs := append([]flow.Vortex(nil), m.scene.Vortices...)
	vs[m.selected].X += dx
	vs[m.selected].Y += dy
	m.scene.Vortices = vs
}

func (m *Explorer) adjust(d float64) {
	if len(m.scene.Vortices) == 0 {
		return
	}
	vs := append([]flow.Vortex(nil), m.scene.Vortices...)
	vs[m.selected].Strength += d
	m.scene.Vortices = vs
}

func (m *Explorer) sources() []flow.Source {
	var src []flow.Source
	for _, v := range m.scene.Vortices {
		src = append(src, v)
	}
	if m.scene.RowOn {
		src = append(src, m.scene.Row)
	}
	return src
}

// redraw renders the scene's streamlines and vortex markers onto a fresh
// canvas of the same size.
func (m *Explorer) redraw() {
	s := m.scene
	b := s.Box
	g := flow.MeshGrid(b.XStart, b.XEnd, s.NX, b.YStart, b.YEnd, s.NY)
	f := flow.Superpose(g, m.sources()...)
	m.nonFinite = f.NonFinite()

	canvas := NewCanvas(m.canvas.Width, m.canvas.Height)
	m.canvas = canvas
	m.paths = 0

	fig, err := plot.NewFigure(b)
	if err != nil {
		m.err = err
		return
	}
	if err := fig.Streamline(g.X, g.Y, f.U, f.V); err != nil {
		m.err = err
		return
	}
	for _, l := range fig.Layers() {
		if sl, ok := l.(*plot.StreamLayer); ok {
			m.paths += len(sl.Paths)
		}
	}
	if n := len(s.Vortices); n > 0 {
		xs, ys := make([]float64, n), make([]float64, n)
		for i, v := range s.Vortices {
			xs[i], ys[i] = v.X, v.Y
		}
		if err := fig.Scatter(xs, ys); err != nil {
			m.err = err
			return
		}
	}
	m.err = nil
	fig.Rasterize(canvas)
}

// View renders the canvas with a side panel of scene parameters.
func (m Explorer) View() string {
	stream := lipgloss.NewStyle().Foreground(m.theme.Stream)
	canvasView := GlassPanel.Render(stream.Render(m.canvas.String()))

	var s strings.Builder
	name := m.scene.Name
	if name == "" {
		name = "scene"
	}
	s.WriteString(HeaderStyle.Render(strings.ToUpper(name)) + "\n\n")
	b := m.scene.Box
	s.WriteString(Metric("Box", fmt.Sprintf("[%.2g, %.2g] x [%.2g, %.2g]", b.XStart, b.XEnd, b.YStart, b.YEnd)) + "\n")
	s.WriteString(Metric("Grid", fmt.Sprintf("%d x %d", m.scene.NX, m.scene.NY)) + "\n")
	s.WriteString(Metric("Lines", fmt.Sprintf("%d", m.paths)) + "\n")
	row := "off"
	if m.scene.RowOn {
		row = fmt.Sprintf("Γ=%.2f a=%.2f", m.scene.Row.Strength, m.scene.Row.Spacing)
	}
	s.WriteString(Metric("Row", row) + "\n")
	s.WriteString("\nVORTICES\n")
	if len(m.scene.Vortices) == 0 {
		s.WriteString(Subtle.Render("  (none)") + "\n")
	}
	accent := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	for i, v := range m.scene.Vortices {
		line := fmt.Sprintf("Γ=%+.2f (%.2f, %.2f)", v.Strength, v.X, v.Y)
		if i == m.selected {
			s.WriteString(accent.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + Subtle.Render(line) + "\n")
		}
	}
	warn := lipgloss.NewStyle().Foreground(m.theme.Warning).Bold(true)
	if m.nonFinite > 0 {
		s.WriteString("\n" + warn.Render(fmt.Sprintf("%d singular samples", m.nonFinite)) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + warn.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("←↑↓→:Move  Tab:Next  +/-:Γ\nR:Row  T:Theme(" + m.theme.Name + ")  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, StatsPanel.Render(s.String()))
}

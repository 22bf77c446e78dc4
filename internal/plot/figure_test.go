package plot

import (
	"errors"
	"math"
	"testing"
)

func TestNewFigureAspect(t *testing.T) {
	tests := []struct {
		name       string
		box        Box
		wantHeight float64
	}{
		{"wide", Box{XStart: -2, YStart: -1, XEnd: 2, YEnd: 1}, 5},
		{"square", Box{XStart: 0, YStart: 0, XEnd: 3, YEnd: 3}, 10},
		{"tall", Box{XStart: -1, YStart: -4, XEnd: 1, YEnd: 4}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := NewFigure(tt.box)
			if err != nil {
				t.Fatalf("NewFigure() error = %v", err)
			}
			if fig.Width != FigureWidth {
				t.Errorf("Width = %v, want %v", fig.Width, FigureWidth)
			}
			if math.Abs(fig.Height-tt.wantHeight) > 1e-12 {
				t.Errorf("Height = %v, want %v", fig.Height, tt.wantHeight)
			}
			if fig.XLabel != "x" || fig.YLabel != "y" || fig.FontSize != 16 {
				t.Errorf("unexpected labels %q %q at %v", fig.XLabel, fig.YLabel, fig.FontSize)
			}
		})
	}
}

func TestNewFigureInvalidBox(t *testing.T) {
	boxes := []Box{
		{XStart: 1, YStart: 0, XEnd: 1, YEnd: 1},
		{XStart: 0, YStart: 2, XEnd: 1, YEnd: 1},
		{XStart: 0, YStart: 0, XEnd: math.NaN(), YEnd: 1},
	}
	for _, b := range boxes {
		if _, err := NewFigure(b); !errors.Is(err, ErrInvalidBox) {
			t.Errorf("NewFigure(%+v) error = %v, want ErrInvalidBox", b, err)
		}
	}
}

func TestScatterStyle(t *testing.T) {
	fig, _ := NewFigure(Box{XEnd: 1, YEnd: 1})
	if err := fig.Scatter([]float64{0.1, 0.2}, []float64{0.3, 0.4}); err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}

	layers := fig.Layers()
	if len(layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(layers))
	}
	s, ok := layers[0].(*ScatterLayer)
	if !ok {
		t.Fatalf("expected *ScatterLayer, got %T", layers[0])
	}
	if s.Color != "#008000" || s.Size != 80 || s.Marker != "o" {
		t.Errorf("unexpected style %+v", s)
	}
	if s.Points[1] != (Point{X: 0.2, Y: 0.4}) {
		t.Errorf("unexpected point %+v", s.Points[1])
	}
}

func TestLengthMismatch(t *testing.T) {
	fig, _ := NewFigure(Box{XEnd: 1, YEnd: 1})
	if err := fig.Scatter([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Scatter() error = %v, want ErrLengthMismatch", err)
	}
	if _, err := EzPlot([]float64{1}, nil, Box{XEnd: 1, YEnd: 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("EzPlot() error = %v, want ErrLengthMismatch", err)
	}
	if len(fig.Layers()) != 0 {
		t.Error("failed call should not add a layer")
	}
}

func TestEzScatterDrawsOnGivenFigure(t *testing.T) {
	box := Box{XStart: -1, YStart: -1, XEnd: 1, YEnd: 1}
	fig, err := EzPlot([]float64{-1, 0, 1}, []float64{0, 1, 0}, box)
	if err != nil {
		t.Fatalf("EzPlot() error = %v", err)
	}
	if err := EzScatter(fig, []float64{0}, []float64{0}); err != nil {
		t.Fatalf("EzScatter() error = %v", err)
	}

	layers := fig.Layers()
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(layers))
	}
	if _, ok := layers[0].(*LineLayer); !ok {
		t.Errorf("expected first layer to be a line, got %T", layers[0])
	}
	if _, ok := layers[1].(*ScatterLayer); !ok {
		t.Errorf("expected second layer to be a scatter, got %T", layers[1])
	}
}

func TestColormap(t *testing.T) {
	cm := Colormap(5)
	if len(cm) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(cm))
	}
	if cm[0] != "#440154" {
		t.Errorf("first color = %s, want #440154", cm[0])
	}
	if cm[4] != "#fde725" {
		t.Errorf("last color = %s, want #fde725", cm[4])
	}
	if got := Colormap(1); len(got) != 1 || got[0] != "#440154" {
		t.Errorf("Colormap(1) = %v", got)
	}
	if Colormap(0) != nil {
		t.Error("expected nil for zero colors")
	}
}

package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ezflow/internal/integrators"
)

// Point is a position in data coordinates.
type Point = integrators.Point

// DefaultLineColor is the color of lines and streamlines.
const DefaultLineColor = "#1f77b4"

// Layer is one drawing operation on a figure.
type Layer interface {
	svg(sb *strings.Builder, t transform)
	raster(r Raster, t transform)
}

// Raster is a monochrome pixel surface. Pixel (0, 0) is the top-left corner.
type Raster interface {
	Size() (w, h int)
	Set(x, y int)
	DrawLine(x0, y0, x1, y1 int)
}

// transform maps data coordinates onto a pixel rectangle.
type transform struct {
	box        Box
	x0, y0     float64
	w, h       float64
	pxPerPoint float64
}

func (t transform) apply(p Point) (float64, float64) {
	px := t.x0 + (p.X-t.box.XStart)/t.box.Width()*t.w
	py := t.y0 + (t.box.YEnd-p.Y)/t.box.Height()*t.h
	return px, py
}

// pixel returns the raster pixel under p, and false when p falls outside the
// raster.
func (t transform) pixel(p Point) (int, int, bool) {
	if !finite(p.X) || !finite(p.Y) {
		return 0, 0, false
	}
	fx, fy := t.apply(p)
	x, y := int(math.Round(fx)), int(math.Round(fy))
	if x < 0 || y < 0 || x > int(t.w) || y > int(t.h) {
		return 0, 0, false
	}
	return x, y, true
}

// ScatterLayer draws one marker per point.
type ScatterLayer struct {
	Points []Point
	Color  string
	Size   float64 // marker area in points squared
	Marker string
}

func (l *ScatterLayer) svg(sb *strings.Builder, t transform) {
	r := math.Sqrt(l.Size) / 2 * t.pxPerPoint
	fmt.Fprintf(sb, "<g fill=\"%s\">\n", l.Color)
	for _, p := range l.Points {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		cx, cy := t.apply(p)
		fmt.Fprintf(sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
	}
	sb.WriteString("</g>\n")
}

func (l *ScatterLayer) raster(r Raster, t transform) {
	for _, p := range l.Points {
		x, y, ok := t.pixel(p)
		if !ok {
			continue
		}
		r.Set(x, y)
		r.Set(x+1, y)
		r.Set(x, y+1)
		r.Set(x+1, y+1)
	}
}

// LineLayer draws a polyline. Non-finite points break the line.
type LineLayer struct {
	Points    []Point
	Color     string
	LineWidth float64
}

func (l *LineLayer) svg(sb *strings.Builder, t transform) {
	writePath(sb, t, l.Points, l.Color, l.LineWidth*t.pxPerPoint)
}

func (l *LineLayer) raster(r Raster, t transform) {
	drawPolyline(r, t, l.Points)
}

func writePath(sb *strings.Builder, t transform, pts []Point, color string, width float64) {
	var d strings.Builder
	pen := false
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			pen = false
			continue
		}
		x, y := t.apply(p)
		if pen {
			fmt.Fprintf(&d, " L%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&d, " M%.1f,%.1f", x, y)
			pen = true
		}
	}
	if d.Len() == 0 {
		return
	}
	fmt.Fprintf(sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" d=\"%s\"/>\n",
		color, width, strings.TrimSpace(d.String()))
}

func drawPolyline(r Raster, t transform, pts []Point) {
	for i := 1; i < len(pts); i++ {
		x0, y0, ok0 := t.pixel(pts[i-1])
		x1, y1, ok1 := t.pixel(pts[i])
		if ok0 && ok1 {
			r.DrawLine(x0, y0, x1, y1)
		}
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

package plot

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const numTicks = 5

// SVG renders the figure. pxPerUnit is the number of pixels per figure unit,
// so the document is Width·pxPerUnit by Height·pxPerUnit pixels.
func (f *Figure) SVG(pxPerUnit float64) string {
	width := f.Width * pxPerUnit
	height := f.Height * pxPerUnit
	pxPerPoint := pxPerUnit / 72
	font := f.FontSize * pxPerPoint
	tickFont := 0.75 * font

	left, bottom := 4*font, 3*font
	top, right := font, font
	t := transform{
		box:        f.Box,
		x0:         left,
		y0:         top,
		w:          width - left - right,
		h:          height - top - bottom,
		pxPerPoint: pxPerPoint,
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<defs><clipPath id="axes"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath></defs>
<g clip-path="url(#axes)">
`, width, height, width, height, t.x0, t.y0, t.w, t.h))

	for _, l := range f.layers {
		l.svg(&sb, t)
	}
	sb.WriteString("</g>\n")

	// frame
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000000"/>
`, t.x0, t.y0, t.w, t.h))

	// ticks
	sb.WriteString(fmt.Sprintf("<g font-family=\"sans-serif\" font-size=\"%.1f\">\n", tickFont))
	for _, x := range floats.Span(make([]float64, numTicks), f.Box.XStart, f.Box.XEnd) {
		px, _ := t.apply(Point{X: x, Y: f.Box.YStart})
		base := t.y0 + t.h
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>
<text x="%.1f" y="%.1f" text-anchor="middle">%.3g</text>
`, px, base, px, base+4, px, base+4+tickFont, x))
	}
	for _, y := range floats.Span(make([]float64, numTicks), f.Box.YStart, f.Box.YEnd) {
		_, py := t.apply(Point{X: f.Box.XStart, Y: y})
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>
<text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle">%.3g</text>
`, t.x0-4, py, t.x0, py, t.x0-6, py, y))
	}
	sb.WriteString("</g>\n")

	// axis labels
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle">%s</text>
<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">%s</text>
`, t.x0+t.w/2, height-font/2, font, escape(f.XLabel),
		font, t.y0+t.h/2, font, escape(f.YLabel), font, t.y0+t.h/2))

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes the SVG document of the figure to w.
func (f *Figure) WriteSVG(w io.Writer, pxPerUnit float64) error {
	_, err := io.WriteString(w, f.SVG(pxPerUnit))
	return err
}

// Rasterize draws every layer onto r. The axis box fills the whole raster.
func (f *Figure) Rasterize(r Raster) {
	w, h := r.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t := transform{box: f.Box, w: float64(w - 1), h: float64(h - 1), pxPerPoint: 1}
	for _, l := range f.layers {
		l.raster(r, t)
	}
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return svgEscaper.Replace(s)
}

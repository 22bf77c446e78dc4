package plot

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// viridis anchor colors, dark to bright
var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

var viridisStops = mustParse(viridis)

func mustParse(hex []string) []colorful.Color {
	stops := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	return stops
}

// Colormap returns n colors evenly sampled from dark to bright.
func Colormap(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = sample(viridisStops, t).Hex()
	}
	return out
}

func sample(stops []colorful.Color, t float64) colorful.Color {
	seg := t * float64(len(stops)-1)
	i := int(seg)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	if i < 0 {
		return stops[0]
	}
	frac := seg - float64(i)
	if frac == 0 {
		return stops[i]
	}
	return stops[i].BlendLab(stops[i+1], frac).Clamped()
}

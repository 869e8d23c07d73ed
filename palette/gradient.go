// Package palette exposes the fixed plot gradient as a color.Palette and
// reads and writes it as RIFF PAL files.
package palette

import (
	"image/color"

	"mandelplot/plot"
)

// Gradient returns every color a plot with the given cutoff can produce,
// black first, then the blue ramp in increasing order. It holds at most 129
// entries so it always fits an 8-bit indexed image.
func Gradient(maxIterations int) color.Palette {
	pal := color.Palette{plot.Encode(maxIterations, maxIterations)}

	var last color.RGBA
	for n := range maxIterations {
		c := plot.Encode(n, maxIterations)
		if n > 0 && c == last {
			break
		}
		pal = append(pal, c)
		last = c
	}
	return pal
}

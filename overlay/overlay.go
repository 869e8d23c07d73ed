// Package overlay draws host decorations (axes, coordinate labels) on a copy
// of a plot image.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mandelplot/region"
)

const axisWidth = 1

var LabelColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Copy returns a new RGBA image holding src, so decorations never touch the
// source buffer.
func Copy(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// AxisPositions returns the column of the imaginary axis and the row of the
// real axis on a width x height image of b. A negative value means the axis
// is not strictly inside the region.
func AxisPositions(b region.Bounds, width, height int) (col, row int) {
	col, row = -1, -1
	if b.MaxReal() > 0 && b.MinReal < 0 {
		col = int(-b.MinReal / b.RealRange * float64(width))
	}
	if b.MaxImag() > 0 && b.MinImag < 0 {
		row = int(b.MaxImag() / b.ImagRange * float64(height))
	}
	return col, row
}

// Axes draws the real and imaginary axes in c where they cross the region.
func Axes(dst draw.Image, b region.Bounds, c color.Color) {
	r := dst.Bounds()
	col, row := AxisPositions(b, r.Dx(), r.Dy())
	src := image.NewUniform(c)

	if col >= 0 {
		x := r.Min.X + col
		draw.Draw(dst, image.Rect(x, r.Min.Y, x+axisWidth, r.Max.Y).Intersect(r), src, image.Point{}, draw.Src)
	}
	if row >= 0 {
		y := r.Min.Y + row
		draw.Draw(dst, image.Rect(r.Min.X, y, r.Max.X, y+axisWidth).Intersect(r), src, image.Point{}, draw.Src)
	}
}

// Labels prints the plane coordinates of the top-left and bottom-right
// corners.
func Labels(dst draw.Image, b region.Bounds) {
	face := basicfont.Face7x13
	r := dst.Bounds()
	metrics := face.Metrics()
	margin := 4

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(LabelColor),
		Face: face,
	}

	topLeft := fmt.Sprintf("%.6g%+.6gi", b.MinReal, b.MaxImag())
	d.Dot = fixed.P(r.Min.X+margin, r.Min.Y+margin+metrics.Ascent.Ceil())
	d.DrawString(topLeft)

	bottomRight := fmt.Sprintf("%.6g%+.6gi", b.MaxReal(), b.MinImag)
	width := d.MeasureString(bottomRight).Ceil()
	d.Dot = fixed.P(r.Max.X-margin-width, r.Max.Y-margin-metrics.Descent.Ceil())
	d.DrawString(bottomRight)
}

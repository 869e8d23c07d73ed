// Package region describes the rectangle of the complex plane being plotted
// and the interactive moves applied to it.
package region

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"mandelplot/plot"
)

// Bounds is a rectangle of the complex plane stored as minimum plus extent.
type Bounds struct {
	MinReal   float64 `help:"Left edge of the plotted region" default:"-2" env:"MANDELPLOT_MIN_REAL"`
	RealRange float64 `help:"Width of the plotted region on the real axis" default:"3" env:"MANDELPLOT_REAL_RANGE"`
	MinImag   float64 `help:"Bottom edge of the plotted region" default:"-1.5" env:"MANDELPLOT_MIN_IMAG"`
	ImagRange float64 `help:"Height of the plotted region on the imaginary axis" default:"3" env:"MANDELPLOT_IMAG_RANGE"`
}

// FromMinMax builds Bounds from explicit edges.
func FromMinMax(minReal, maxReal, minImag, maxImag float64) Bounds {
	return Bounds{
		MinReal:   minReal,
		RealRange: maxReal - minReal,
		MinImag:   minImag,
		ImagRange: maxImag - minImag,
	}
}

func (b Bounds) MaxReal() float64 { return b.MinReal + b.RealRange }
func (b Bounds) MaxImag() float64 { return b.MinImag + b.ImagRange }

func (b Bounds) Validate() error {
	switch {
	case math.IsNaN(b.MinReal) || math.IsInf(b.MinReal, 0):
		return fmt.Errorf("invalid min real: %v", b.MinReal)
	case math.IsNaN(b.MinImag) || math.IsInf(b.MinImag, 0):
		return fmt.Errorf("invalid min imaginary: %v", b.MinImag)
	case !(b.RealRange > 0) || math.IsInf(b.RealRange, 0):
		return fmt.Errorf("invalid real range: %v", b.RealRange)
	case !(b.ImagRange > 0) || math.IsInf(b.ImagRange, 0):
		return fmt.Errorf("invalid imaginary range: %v", b.ImagRange)
	}
	return nil
}

// NewPlot constructs an engine plot covering b.
func (b Bounds) NewPlot(width, height int, opts plot.Options) (*plot.Plot, error) {
	return plot.New(width, height, b.MinReal, b.RealRange, b.MinImag, b.ImagRange, opts)
}

// Pan moves the region as if the image had been dragged by (dx, dy) pixels
// on a width x height surface. Dragging right reveals smaller real values,
// dragging down reveals larger imaginary values.
func (b Bounds) Pan(dx, dy float64, width, height int) Bounds {
	b.MinReal -= dx / float64(width) * b.RealRange
	b.MinImag += dy / float64(height) * b.ImagRange
	return b
}

// Zoom scales both extents by factor while keeping the plane point under
// pixel (x, y) in place. A factor below 1 zooms in.
func (b Bounds) Zoom(factor, x, y float64, width, height int) Bounds {
	fx := x / float64(width)
	fy := (float64(height) - y) / float64(height)

	centerReal := b.MinReal + fx*b.RealRange
	centerImag := b.MinImag + fy*b.ImagRange

	b.RealRange *= factor
	b.ImagRange *= factor
	b.MinReal = centerReal - fx*b.RealRange
	b.MinImag = centerImag - fy*b.ImagRange
	return b
}

// WheelFactor converts a scroll delta into a zoom factor: every tick scales
// by 5%, scrolling up (positive delta) zooms in.
func WheelFactor(delta float64) float64 {
	return math.Pow(1.05, -delta)
}

// FitAspect adjusts the imaginary extent around its center so pixels on a
// width x height surface are square.
func (b Bounds) FitAspect(width, height int) Bounds {
	centerImag := b.MinImag + b.ImagRange/2
	b.ImagRange = b.RealRange * float64(height) / float64(width)
	b.MinImag = centerImag - b.ImagRange/2
	return b
}

// PointAt maps a pixel on a width x height surface to the plane, using the
// same mapping as the plot engine.
func (b Bounds) PointAt(x, y float64, width, height int) (re, im float64) {
	return b.MinReal + x*b.RealRange/float64(width), b.MaxImag() - y*b.ImagRange/float64(height)
}

// State is the full set of parameters needed to reproduce an image.
type State struct {
	Bounds
	plot.Options
}

const (
	keyMinReal         = "minReal"
	keyRealRange       = "realRange"
	keyMinImag         = "minImag"
	keyImagRange       = "imagRange"
	keyMaxIterations   = "maxIterations"
	keyDivergenceBound = "divergenceBound"
)

// Encode renders s as a query string.
func (s State) Encode() string {
	v := url.Values{}
	v.Set(keyMinReal, formatFloat(s.MinReal))
	v.Set(keyRealRange, formatFloat(s.RealRange))
	v.Set(keyMinImag, formatFloat(s.MinImag))
	v.Set(keyImagRange, formatFloat(s.ImagRange))
	v.Set(keyMaxIterations, strconv.Itoa(s.MaxIterations))
	v.Set(keyDivergenceBound, formatFloat(s.DivergenceBound))
	return v.Encode()
}

// ParseQuery overrides the fields of base present in query. Unknown keys are
// ignored; malformed values are errors.
func ParseQuery(query string, base State) (State, error) {
	v, err := url.ParseQuery(query)
	if err != nil {
		return base, fmt.Errorf("could not parse state %q: %w", query, err)
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{keyMinReal, &base.MinReal},
		{keyRealRange, &base.RealRange},
		{keyMinImag, &base.MinImag},
		{keyImagRange, &base.ImagRange},
		{keyDivergenceBound, &base.DivergenceBound},
	}
	for _, f := range floats {
		if !v.Has(f.key) {
			continue
		}
		if *f.dst, err = strconv.ParseFloat(v.Get(f.key), 64); err != nil {
			return base, fmt.Errorf("invalid %s: %w", f.key, err)
		}
	}

	if v.Has(keyMaxIterations) {
		if base.MaxIterations, err = strconv.Atoi(v.Get(keyMaxIterations)); err != nil {
			return base, fmt.Errorf("invalid %s: %w", keyMaxIterations, err)
		}
	}

	return base, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

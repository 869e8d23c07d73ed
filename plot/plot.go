// Package plot computes escape-time images of the Mandelbrot set.
//
// A Plot owns a row-major RGBA buffer, four bytes per pixel in R, G, B, A
// order, top row first. The buffer is sized once by New and fully rewritten by
// every compute call.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"mandelplot/parallel"
)

// BytesPerPixel is the size of one color cell in the buffer.
const BytesPerPixel = 4

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// Options controls the divergence iteration.
type Options struct {
	// MaxIterations is the escape-time cutoff.
	MaxIterations int
	// DivergenceBound is compared against the squared magnitude of z.
	DivergenceBound float64
}

type Plot struct {
	minReal   float64
	realRange float64
	minImag   float64
	imagRange float64

	width  int
	height int

	maxIterations   int
	divergenceBound float64

	pixels []byte
}

// New validates the geometry and allocates a zeroed buffer of
// width*height cells. The region spans [minReal, minReal+realRange] on the
// real axis and [minImag, minImag+imagRange] on the imaginary axis.
func New(width, height int, minReal, realRange, minImag, imagRange float64, opts Options) (*Plot, error) {
	switch {
	case width <= 0:
		return nil, fmt.Errorf("%w: pixel width %d", ErrInvalidArgument, width)
	case height <= 0:
		return nil, fmt.Errorf("%w: pixel height %d", ErrInvalidArgument, height)
	case !isFinite(minReal):
		return nil, fmt.Errorf("%w: min real %v", ErrInvalidArgument, minReal)
	case !isFinite(minImag):
		return nil, fmt.Errorf("%w: min imaginary %v", ErrInvalidArgument, minImag)
	case !(realRange > 0) || math.IsInf(realRange, 0):
		return nil, fmt.Errorf("%w: real range %v", ErrInvalidArgument, realRange)
	case !(imagRange > 0) || math.IsInf(imagRange, 0):
		return nil, fmt.Errorf("%w: imaginary range %v", ErrInvalidArgument, imagRange)
	case opts.MaxIterations <= 0:
		return nil, fmt.Errorf("%w: max iterations %d", ErrInvalidArgument, opts.MaxIterations)
	case !(opts.DivergenceBound > 0):
		return nil, fmt.Errorf("%w: divergence bound %v", ErrInvalidArgument, opts.DivergenceBound)
	}

	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}

	return &Plot{
		minReal:         minReal,
		realRange:       realRange,
		minImag:         minImag,
		imagRange:       imagRange,
		width:           width,
		height:          height,
		maxIterations:   opts.MaxIterations,
		divergenceBound: opts.DivergenceBound,
		pixels:          make([]byte, size),
	}, nil
}

func bufferSize(width, height int) (int, error) {
	if width > math.MaxInt/BytesPerPixel/height {
		return 0, fmt.Errorf("%w: %dx%d pixels", ErrCapacityExceeded, width, height)
	}
	return width * height * BytesPerPixel, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p *Plot) Width() int  { return p.width }
func (p *Plot) Height() int { return p.height }

func (p *Plot) MinReal() float64 { return p.minReal }
func (p *Plot) MaxReal() float64 { return p.minReal + p.realRange }
func (p *Plot) MinImag() float64 { return p.minImag }
func (p *Plot) MaxImag() float64 { return p.minImag + p.imagRange }

func (p *Plot) Options() Options {
	return Options{MaxIterations: p.maxIterations, DivergenceBound: p.divergenceBound}
}

// Pixels returns the buffer itself, not a copy. It stays valid until the next
// CalcPixels or CalcPixelsWith call and must not be written to.
func (p *Plot) Pixels() []byte {
	return p.pixels
}

// Len returns the buffer size in bytes.
func (p *Plot) Len() int {
	return len(p.pixels)
}

// Image wraps the buffer in an image.RGBA sharing the same backing array.
// The same lifetime and read-only rules as Pixels apply.
func (p *Plot) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.pixels,
		Stride: p.width * BytesPerPixel,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// Point maps a pixel to its plane coordinate. Row 0 is the top (maximum
// imaginary) edge, column 0 the left (minimum real) edge.
func (p *Plot) Point(row, col int) (re, im float64) {
	realStep := p.realRange / float64(p.width)
	imagStep := p.imagRange / float64(p.height)
	return p.minReal + realStep*float64(col), p.MaxImag() - imagStep*float64(row)
}

// CalcPixels fills the whole buffer, rows outer and columns inner.
func (p *Plot) CalcPixels() {
	start := time.Now()
	p.calcRows(0, p.height)
	Logger().Debug("calculated pixels", "width", p.width, "height", p.height,
		"elapsed", time.Since(start))
}

// CalcPixelsWith produces the same buffer as CalcPixels, handing bands of rows
// to the pool. It returns once every row is written.
func (p *Plot) CalcPixelsWith(pool *parallel.Pool) {
	start := time.Now()
	pool.Range(p.height, 0, p.calcRows)
	Logger().Debug("calculated pixels", "width", p.width, "height", p.height,
		"workers", pool.Size(), "elapsed", time.Since(start))
}

func (p *Plot) calcRows(from, to int) {
	realStep := p.realRange / float64(p.width)
	imagStep := p.imagRange / float64(p.height)
	maxImag := p.MaxImag()

	index := from * p.width * BytesPerPixel
	for row := from; row < to; row++ {
		im := maxImag - imagStep*float64(row)
		for col := 0; col < p.width; col++ {
			re := p.minReal + realStep*float64(col)
			c := p.Color(p.EscapeTime(re, im))
			p.pixels[index+0] = c.R
			p.pixels[index+1] = c.G
			p.pixels[index+2] = c.B
			p.pixels[index+3] = c.A
			index += BytesPerPixel
		}
	}
}

// EscapeTime iterates z = z*z + c from z = 0 and returns the step at which
// |z|^2 first exceeds the divergence bound, or MaxIterations if it never does.
func (p *Plot) EscapeTime(re, im float64) int {
	var zr, zi float64
	for n := range p.maxIterations {
		nr := zr*zr - zi*zi + re
		zi = 2*zr*zi + im
		zr = nr
		if zr*zr+zi*zi > p.divergenceBound {
			return n
		}
	}
	return p.maxIterations
}

// Color encodes an iteration count with the plot's cutoff.
func (p *Plot) Color(n int) color.RGBA {
	return Encode(n, p.maxIterations)
}

// Encode maps an iteration count to a cell: opaque black for points that
// never escaped, otherwise a blue ramp from 128 saturating at 255.
func Encode(n, maxIterations int) color.RGBA {
	if n >= maxIterations {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{B: uint8(min(128+n, 255)), A: 0xFF}
}

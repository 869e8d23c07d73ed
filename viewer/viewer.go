// Package viewer shows a plot in a window: drag to pan, scroll to zoom.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mandelplot/overlay"
	"mandelplot/parallel"
	"mandelplot/region"
)

type CLICmd struct {
	region.Params

	Axes      bool   `help:"Draw the real and imaginary axes" default:"true" negatable:""`
	AxisColor string `help:"Axis color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#f00"`

	axisColor color.RGBA `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Params.Validate(); err != nil {
		return err
	}

	var err error
	c.axisColor, err = overlay.ParseHexColor(c.AxisColor)
	return err
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	g := &game{
		nav:       region.NewNavigator(c.RegionState(), c.Width, c.Height),
		pool:      pool,
		axes:      c.Axes,
		axisColor: c.axisColor,
	}

	ebiten.SetWindowTitle("mandelplot")
	ebiten.SetWindowSize(c.Width, c.Height)
	err := ebiten.RunGame(g)

	slog.Info("viewer closed", "state", g.nav.State.Encode())
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	nav       *region.Navigator
	pool      *parallel.Pool
	axes      bool
	axisColor color.RGBA
	frame     *ebiten.Image
	took      time.Duration
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.nav.Press(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.nav.Move(x, y)
		g.nav.Release()
	case g.nav.Dragging():
		g.nav.Move(x, y)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.nav.Scroll(dy, x, y)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.nav.ScaleIterations(2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.nav.ScaleIterations(0.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.axes = !g.axes
		if err := g.redraw(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		slog.Info("current state", "state", g.nav.State.Encode())
	}

	if g.nav.TakeDirty() {
		return g.redraw()
	}
	return nil
}

// redraw recomputes the plot for the current state. It blocks the update
// loop until every row is done.
func (g *game) redraw() error {
	start := time.Now()
	p, err := g.nav.State.NewPlot(g.nav.Width, g.nav.Height, g.nav.State.Options)
	if err != nil {
		return fmt.Errorf("could not create plot: %w", err)
	}
	p.CalcPixelsWith(g.pool)

	pix := p.Pixels()
	if g.axes {
		img := overlay.Copy(p.Image())
		overlay.Axes(img, g.nav.State.Bounds, g.axisColor)
		pix = img.Pix
	}

	if g.frame == nil {
		g.frame = ebiten.NewImage(g.nav.Width, g.nav.Height)
	}
	g.frame.WritePixels(pix)
	g.took = time.Since(start)
	slog.Debug("redrawn", "state", g.nav.State.Encode(), "elapsed", g.took)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.frame != nil {
		op := &ebiten.DrawImageOptions{}
		dx, dy := g.nav.Offset()
		op.GeoM.Translate(float64(dx), float64(dy))
		screen.DrawImage(g.frame, op)
	}

	x, y := ebiten.CursorPosition()
	re, im := g.nav.State.PointAt(float64(x), float64(y), g.nav.Width, g.nav.Height)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%.10g%+.10gi\niterations %d  %v",
		re, im, g.nav.State.MaxIterations, g.took.Round(time.Millisecond)))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.nav.Width, g.nav.Height
}

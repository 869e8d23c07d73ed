// Package render holds the batch commands: plotting a region to an image
// file or dumping the raw pixel buffer.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/alecthomas/kong"

	"mandelplot/output"
	"mandelplot/overlay"
	"mandelplot/palette"
	"mandelplot/parallel"
	"mandelplot/plot"
	"mandelplot/region"
)

type CLICmd struct {
	region.Params

	Out       string `arg:"" help:"Destination image file" type:"path"`
	Format    string `help:"Output format, 'auto' picks it from the file extension" enum:"auto,png,gif,jpeg,bmp,tiff" default:"auto"`
	Antialias int    `help:"Supersampling factor per axis" default:"1" env:"MANDELPLOT_ANTIALIAS"`
	Axes      bool   `help:"Draw the real and imaginary axes" default:"false"`
	AxisColor string `help:"Axis color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#f00"`
	Labels    bool   `help:"Print corner coordinates" default:"false"`
	Force     bool   `help:"Overwrite an existing destination" default:"false"`

	axisColor color.RGBA `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Params.Validate(); err != nil {
		return err
	}

	if c.Format == "" || c.Format == "auto" {
		format, err := output.FormatFromPath(c.Out)
		if err != nil {
			return err
		}
		c.Format = format
	}

	if c.Axes {
		var err error
		if c.axisColor, err = overlay.ParseHexColor(c.AxisColor); err != nil {
			return err
		}
	}

	if c.Antialias < 1 || c.Antialias > 8 {
		return fmt.Errorf("invalid antialias factor: %d", c.Antialias)
	}
	if c.Width > math.MaxInt/c.Antialias || c.Height > math.MaxInt/c.Antialias {
		return fmt.Errorf("antialias factor %d too large for %dx%d", c.Antialias, c.Width, c.Height)
	}

	if !c.Force {
		if _, err := os.Stat(c.Out); err == nil {
			return fmt.Errorf("destination file already exists: %q", c.Out)
		}
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	logger := slog.Default().With("file", c.Out)

	p, err := c.NewPlot(c.Width*c.Antialias, c.Height*c.Antialias, c.Options())
	if err != nil {
		return fmt.Errorf("could not create plot: %w", err)
	}
	logger.Info("calculating", "width", p.Width(), "height", p.Height(), "workers", pool.Size(),
		"state", c.RegionState().Encode())
	p.CalcPixelsWith(pool)

	img, pal := c.compose(p)
	if err = output.Save(img, c.Format, c.Out, pal); err != nil {
		return err
	}

	logger.Info("saved", "format", c.Format, "width", c.Width, "height", c.Height)
	return nil
}

// compose turns the computed plot into the image to save, along with the
// exact palette when every color is known in advance.
func (c *CLICmd) compose(p *plot.Plot) (image.Image, color.Palette) {
	var img *image.RGBA
	var pal color.Palette
	switch {
	case c.Antialias > 1:
		img = output.Downscale(p.Image(), c.Width, c.Height)
	case c.Axes || c.Labels:
		img = overlay.Copy(p.Image())
		pal = palette.Gradient(c.MaxIterations)
	default:
		return p.Image(), palette.Gradient(c.MaxIterations)
	}

	if c.Axes {
		overlay.Axes(img, c.Bounds, c.axisColor)
		if pal != nil && c.axisColor.A == 0xFF {
			pal = append(pal, c.axisColor)
		} else {
			pal = nil
		}
	}
	if c.Labels {
		overlay.Labels(img, c.Bounds)
		pal = nil
	}
	return img, pal
}

// RawCmd writes the engine buffer as is: width*height cells of R, G, B, A
// bytes, row-major, top row first.
type RawCmd struct {
	region.Params

	Out string `arg:"" help:"Destination file, '-' for standard output" default:"-"`
}

func (c *RawCmd) Validate(kctx *kong.Context) error {
	return c.Params.Validate()
}

func (c *RawCmd) Run(pool *parallel.Pool) (err error) {
	p, err := c.NewPlot(c.Width, c.Height, c.Options())
	if err != nil {
		return fmt.Errorf("could not create plot: %w", err)
	}
	p.CalcPixelsWith(pool)

	if c.Out == "-" {
		err = output.WriteRaw(os.Stdout, p.Pixels())
	} else {
		err = writeRawFile(c.Out, p.Pixels())
	}
	if err != nil {
		return err
	}

	slog.Info("wrote pixel buffer", "dest", c.Out, "width", p.Width(), "height", p.Height(), "bytes", p.Len())
	return nil
}

func writeRawFile(dest string, buf []byte) (err error) {
	outFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("could not open destination file %q: %w", dest, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close destination file %q: %w", dest, closeErr)
		}
	}()

	if err = output.WriteRaw(outFile, buf); err != nil {
		return fmt.Errorf("could not write %q: %w", dest, err)
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush destination file %q: %w", dest, err)
	}
	return nil
}

package palette

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Out           string `arg:"" help:"Destination PAL file" type:"path"`
	MaxIterations int    `help:"Escape-time cutoff the gradient is built for" default:"200" env:"MANDELPLOT_MAX_ITERATIONS"`
	Force         bool   `help:"Overwrite an existing destination" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("invalid max iterations: %d", c.MaxIterations)
	}
	if !c.Force {
		if _, err := os.Stat(c.Out); err == nil {
			return fmt.Errorf("destination file already exists: %q", c.Out)
		}
	}
	return nil
}

func (c *CLICmd) Run() (err error) {
	pal := Gradient(c.MaxIterations)

	outFile, err := os.CreateTemp(filepath.Dir(c.Out), filepath.Base(c.Out))
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", c.Out, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", c.Out, defErr)
		}
		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), c.Out); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", c.Out, defErr)
			}
		} else {
			_ = os.Remove(outFile.Name())
		}
	}()

	n, err := WriteTo(outFile, []color.Palette{pal})
	if err != nil {
		return fmt.Errorf("could not write palette %q: %w", c.Out, err)
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination %q: %w", c.Out, err)
	}

	canRename = true
	slog.Info("wrote palette", "file", c.Out, "colors", len(pal), "bytes", n)
	return nil
}

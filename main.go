package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"mandelplot/palette"
	"mandelplot/parallel"
	"mandelplot/plot"
	"mandelplot/render"
	"mandelplot/viewer"
)

type cli struct {
	Config   kong.ConfigFlag `help:"Load flag values from a JSON file"`
	Workers  int             `help:"Number of workers, 0 for one per CPU" default:"0" env:"MANDELPLOT_WORKERS"`
	LogLevel string          `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"MANDELPLOT_LOG_LEVEL"`
	LogJSON  bool            `help:"Log as JSON" default:"false" name:"log-json"`

	Render  render.CLICmd  `cmd:"" help:"Plot a region to an image file"`
	Raw     render.RawCmd  `cmd:"" help:"Write the raw RGBA pixel buffer of a region"`
	View    viewer.CLICmd  `cmd:"" help:"Explore the set in a window"`
	Palette palette.CLICmd `cmd:"" help:"Write the plot gradient as a RIFF PAL file"`
}

func setupLogging(level string, asJSON bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if asJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	plot.SetLogger(slog.Default())
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("mandelplot"),
		kong.Description("Escape-time plots of the Mandelbrot set."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "mandelplot.json", "~/.config/mandelplot.json"),
	)

	setupLogging(c.LogLevel, c.LogJSON)
	slog.Debug("running", "command", kctx.Command(), "workers", c.Workers)

	pool := parallel.Start(c.Workers)
	err := kctx.Run(pool)
	pool.Close()
	kctx.FatalIfErrorf(err)
}

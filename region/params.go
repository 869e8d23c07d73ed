package region

import (
	"fmt"

	"mandelplot/plot"
)

// Params are the command line parameters shared by every command producing a
// plot.
type Params struct {
	Bounds

	Width           int     `help:"Image width in pixels" default:"960" env:"MANDELPLOT_WIDTH" group:"image"`
	Height          int     `help:"Image height in pixels" default:"960" env:"MANDELPLOT_HEIGHT" group:"image"`
	MaxIterations   int     `help:"Escape-time cutoff" default:"200" env:"MANDELPLOT_MAX_ITERATIONS" group:"iteration"`
	DivergenceBound float64 `help:"Squared magnitude beyond which a point escapes" default:"4" env:"MANDELPLOT_DIVERGENCE_BOUND" group:"iteration"`
	State           string  `help:"Query string state (minReal, realRange, minImag, imagRange, maxIterations, divergenceBound) overriding the flags above" env:"MANDELPLOT_STATE" group:"region"`
	Fit             bool    `help:"Adjust the imaginary range so pixels are square" default:"false" group:"region"`
}

// Validate folds State and Fit into the flags and checks the result.
func (p *Params) Validate() error {
	if p.State != "" {
		s, err := ParseQuery(p.State, p.RegionState())
		if err != nil {
			return err
		}
		p.Bounds = s.Bounds
		p.MaxIterations = s.MaxIterations
		p.DivergenceBound = s.DivergenceBound
		p.State = ""
	}

	switch {
	case p.Width <= 0:
		return fmt.Errorf("invalid width: %d", p.Width)
	case p.Height <= 0:
		return fmt.Errorf("invalid height: %d", p.Height)
	case p.MaxIterations <= 0:
		return fmt.Errorf("invalid max iterations: %d", p.MaxIterations)
	case !(p.DivergenceBound > 0):
		return fmt.Errorf("invalid divergence bound: %v", p.DivergenceBound)
	}

	if p.Fit {
		p.Bounds = p.FitAspect(p.Width, p.Height)
	}
	return p.Bounds.Validate()
}

func (p *Params) Options() plot.Options {
	return plot.Options{MaxIterations: p.MaxIterations, DivergenceBound: p.DivergenceBound}
}

func (p *Params) RegionState() State {
	return State{Bounds: p.Bounds, Options: p.Options()}
}

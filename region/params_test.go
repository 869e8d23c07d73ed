package region

import (
	"testing"

	"mandelplot/plot"
)

func defaultParams() Params {
	return Params{
		Bounds:          Bounds{MinReal: -2, RealRange: 3, MinImag: -1.5, ImagRange: 3},
		Width:           960,
		Height:          960,
		MaxIterations:   200,
		DivergenceBound: 4,
	}
}

func TestParamsStateOverridesFlags(t *testing.T) {
	p := defaultParams()
	p.State = "minReal=-1&realRange=0.5&maxIterations=50"

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.MinReal != -1 || p.RealRange != 0.5 || p.MaxIterations != 50 {
		t.Errorf("state not applied: %+v", p)
	}
	if p.MinImag != -1.5 || p.DivergenceBound != 4 {
		t.Errorf("flags without state keys changed: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("second Validate: %v", err)
	}
	if p.MinReal != -1 {
		t.Errorf("second Validate changed the region: %+v", p)
	}
}

func TestParamsFit(t *testing.T) {
	p := defaultParams()
	p.Width, p.Height = 400, 200
	p.Fit = true

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.ImagRange != 1.5 || p.MinImag != -0.75 {
		t.Errorf("got imaginary %v+%v, want -0.75+1.5", p.MinImag, p.ImagRange)
	}
}

func TestParamsRejects(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"negative height", func(p *Params) { p.Height = -3 }},
		{"zero iterations", func(p *Params) { p.MaxIterations = 0 }},
		{"zero bound", func(p *Params) { p.DivergenceBound = 0 }},
		{"zero range", func(p *Params) { p.RealRange = 0 }},
		{"bad state", func(p *Params) { p.State = "minImag=x" }},
		{"state with negative range", func(p *Params) { p.State = "imagRange=-1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams()
			tt.apply(&p)
			if err := p.Validate(); err == nil {
				t.Error("got no error")
			}
		})
	}
}

func TestParamsOptions(t *testing.T) {
	p := defaultParams()
	want := plot.Options{MaxIterations: 200, DivergenceBound: 4}
	if got := p.Options(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

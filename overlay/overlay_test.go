package overlay

import (
	"image"
	"image/color"
	"testing"

	"mandelplot/plot"
	"mandelplot/region"
)

func TestAxisPositions(t *testing.T) {
	tests := []struct {
		name             string
		b                region.Bounds
		wantCol, wantRow int
	}{
		{"centered", region.Bounds{MinReal: -2, RealRange: 4, MinImag: -1, ImagRange: 2}, 50, 50},
		{"off to the right", region.Bounds{MinReal: 0.5, RealRange: 1, MinImag: -1, ImagRange: 2}, -1, 50},
		{"touching edge", region.Bounds{MinReal: 0, RealRange: 1, MinImag: 0, ImagRange: 1}, -1, -1},
		{"quarter", region.Bounds{MinReal: -1, RealRange: 4, MinImag: -3, ImagRange: 4}, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := AxisPositions(tt.b, 100, 100)
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("got (%d, %d), want (%d, %d)", col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestAxesDrawOnCopy(t *testing.T) {
	b := region.Bounds{MinReal: -2, RealRange: 4, MinImag: -1, ImagRange: 2}
	p, err := b.NewPlot(20, 10, plot.Options{MaxIterations: 30, DivergenceBound: 4})
	if err != nil {
		t.Fatalf("NewPlot: %v", err)
	}
	p.CalcPixels()
	before := append([]byte(nil), p.Pixels()...)

	img := Copy(p.Image())
	red := color.RGBA{R: 0xFF, A: 0xFF}
	Axes(img, b, red)

	for i, v := range p.Pixels() {
		if v != before[i] {
			t.Fatalf("plot buffer modified at byte %d", i)
		}
	}

	for y := range 10 {
		if got := img.RGBAAt(10, y); got != red {
			t.Errorf("imaginary axis at (10, %d): got %v", y, got)
		}
	}
	for x := range 20 {
		if got := img.RGBAAt(x, 5); got != red {
			t.Errorf("real axis at (%d, 5): got %v", x, got)
		}
	}
	if got, want := img.RGBAAt(0, 0), p.Image().RGBAAt(0, 0); got != want {
		t.Errorf("pixel away from axes: got %v, want %v", got, want)
	}
}

func TestLabelsStayInBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 80))
	Labels(img, region.Bounds{MinReal: -2, RealRange: 3, MinImag: -1.5, ImagRange: 3})

	lit := 0
	for y := range 80 {
		for x := range 300 {
			if img.RGBAAt(x, y) == LabelColor {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no label pixels drawn")
	}
	if got := img.RGBAAt(150, 40); got != (color.RGBA{}) {
		t.Errorf("center pixel touched: %v", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#f00", color.RGBA{R: 0xFF, A: 0xFF}, false},
		{"#0f08", color.RGBA{G: 0xFF, A: 0x88}, false},
		{"#12ab34", color.RGBA{R: 0x12, G: 0xAB, B: 0x34, A: 0xFF}, false},
		{"#12ab3480", color.RGBA{R: 0x12, G: 0xAB, B: 0x34, A: 0x80}, false},
		{"red", color.RGBA{}, true},
		{"#ggg", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: got error %v, want error %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
		}
	}
}

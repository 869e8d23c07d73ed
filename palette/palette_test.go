package palette

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"mandelplot/plot"
)

func TestGradientCoversEveryCell(t *testing.T) {
	for _, maxIter := range []int{1, 10, 127, 128, 200, 5000} {
		pal := Gradient(maxIter)

		if len(pal) > 256 {
			t.Fatalf("max=%d: %d colors do not fit 8 bits", maxIter, len(pal))
		}
		for n := 0; n <= maxIter; n++ {
			want := plot.Encode(n, maxIter)
			if got := pal.Convert(want); got != want {
				t.Fatalf("max=%d n=%d: %v missing from palette, nearest %v", maxIter, n, want, got)
			}
		}
	}
}

func TestGradientSize(t *testing.T) {
	tests := []struct {
		maxIter, want int
	}{
		{1, 2},
		{10, 11},
		{128, 129},
		{200, 129},
	}
	for _, tt := range tests {
		if got := len(Gradient(tt.maxIter)); got != tt.want {
			t.Errorf("max=%d: got %d colors, want %d", tt.maxIter, got, tt.want)
		}
	}
}

func TestRIFFRoundTrip(t *testing.T) {
	pals := []color.Palette{
		Gradient(200),
		{color.RGBA{R: 1, G: 2, B: 3, A: 255}},
	}

	var buf bytes.Buffer
	n, err := WriteTo(&buf, pals)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("got %d bytes reported, %d written", n, buf.Len())
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(got) != len(pals) {
		t.Fatalf("got %d palettes, want %d", len(got), len(pals))
	}
	for i := range pals {
		if len(got[i]) != len(pals[i]) {
			t.Fatalf("palette %d: got %d colors, want %d", i, len(got[i]), len(pals[i]))
		}
		for j := range pals[i] {
			if got[i][j] != pals[i][j] {
				t.Errorf("palette %d color %d: got %v, want %v", i, j, got[i][j], pals[i][j])
			}
		}
	}
}

func TestReadFromRejectsOtherForms(t *testing.T) {
	stream := []byte("RIFF\x04\x00\x00\x00WAVE")
	if _, err := ReadFrom(bytes.NewReader(stream)); err == nil {
		t.Error("got no error for a WAVE stream")
	}
}

func TestCLICmdWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gradient.pal")
	cmd := &CLICmd{Out: out, MaxIterations: 50}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(pals) != 1 || len(pals[0]) != 51 {
		t.Errorf("got %d palettes, want one with 51 colors", len(pals))
	}

	if err := cmd.Validate(nil); err == nil {
		t.Error("Validate accepted an existing destination without --force")
	}
}

package render

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		name      string
		v         float64
		totalTime float64
		want      uint8
	}{
		{"no flip", float64(dynamo.NoFlip), 20, 0},
		{"flip at total time", 20, 20, 255},
		{"immediate flip", 0, 20, 12},
		{"halfway", 9.5, 20, 128},
		{"beyond total time clamps", 50, 20, 255},
		{"below sentinel clamps", -5, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intensity(tt.v, tt.totalTime); got != tt.want {
				t.Errorf("Intensity(%v, %v) = %d, want %d", tt.v, tt.totalTime, got, tt.want)
			}
		})
	}
}

func testMatrix(t *testing.T) *dynamo.FlipMatrix {
	t.Helper()
	m, err := dynamo.NewFlipMatrix([]float64{-dynamo.Pi, 0, dynamo.Pi})
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.Cells {
		m.Cells[i] = float64(dynamo.NoFlip)
	}
	m.Set(0, 2, 9)
	m.Set(2, 0, 19)
	return m
}

func TestFlipImageOrientation(t *testing.T) {
	img := FlipImage(testMatrix(t), 19)

	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 3 {
		t.Fatalf("expected 3x3 image, got %v", b)
	}
	if got := img.GrayAt(2, 0).Y; got != 128 {
		t.Errorf("row 0 col 2: expected 128, got %d", got)
	}
	if got := img.GrayAt(0, 2).Y; got != 255 {
		t.Errorf("row 2 col 0: expected 255, got %d", got)
	}
	if got := img.GrayAt(1, 1).Y; got != 0 {
		t.Errorf("centre: expected 0, got %d", got)
	}
}

func TestPPMRoundTrip(t *testing.T) {
	src := FlipImage(testMatrix(t), 19)

	var buf bytes.Buffer
	if err := EncodePPM(&buf, src); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("P6\n3 3\n255\n")) {
		t.Errorf("unexpected header %q", buf.Bytes()[:12])
	}
	if buf.Len() != 11+3*3*3 {
		t.Errorf("expected %d bytes, got %d", 11+27, buf.Len())
	}

	img, format, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if format != "ppm" {
		t.Errorf("expected ppm format, got %s", format)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := src.GrayAt(x, y).Y
			got := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if got != want {
				t.Errorf("pixel (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestDecodePPMComments(t *testing.T) {
	in := "P6\n# written by hand\n2 1 # size\n15\n" + string([]byte{15, 0, 0, 0, 15, 0})

	img, err := DecodePPM(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c := img.At(0, 0).(color.RGBA); c.R != 255 || c.G != 0 {
		t.Errorf("expected scaled red, got %v", c)
	}
	if c := img.At(1, 0).(color.RGBA); c.G != 255 || c.B != 0 {
		t.Errorf("expected scaled green, got %v", c)
	}

	cfg, err := DecodePPMConfig(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 2 || cfg.Height != 1 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestDecodePPMInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"ascii variant", "P3\n1 1\n255\n0 0 0\n"},
		{"zero width", "P6\n0 1\n255\n"},
		{"wide maxval", "P6\n1 1\n65535\n\x00\x00\x00\x00\x00\x00"},
		{"truncated raster", "P6\n2 2\n255\n\x00\x00\x00"},
		{"garbage size", "P6\nx 1\n255\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePPM(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

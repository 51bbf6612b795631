package contour

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestEncodingElevation_Mapbox(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  byte
		expected float64
	}{
		{"Zero", 0, 0, 0, -10000},
		{"SeaLevel", 1, 134, 160, -10000 + 100000*0.1},
		{"One", 0, 0, 1, -9999.9},
		{"Max", 255, 255, 255, -10000 + 16777215*0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mapbox.Elevation(tt.r, tt.g, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Elevation(%d,%d,%d) = %v; want %v", tt.r, tt.g, tt.b, got, tt.expected)
			}
		})
	}
}

func TestEncodingElevation_Terrarium(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  byte
		expected float64
	}{
		{"Zero", 0, 0, 0, -32768},
		{"SeaLevel", 128, 0, 0, 0},
		{"Fraction", 128, 0, 64, 0.25},
		{"Max", 255, 255, 255, 255*256 + 255 + 255.0/256 - 32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Terrarium.Elevation(tt.r, tt.g, tt.b)
			if got != tt.expected {
				t.Errorf("Elevation(%d,%d,%d) = %v; want %v", tt.r, tt.g, tt.b, got, tt.expected)
			}
		})
	}
}

// TestEncodingElevation_Formulas sweeps a coarse lattice of byte triples and
// checks both formulas against their definitions.
func TestEncodingElevation_Formulas(t *testing.T) {
	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				wantMapbox := -10000 + (float64(r)*65536+float64(g)*256+float64(b))*0.1
				if got := Mapbox.Elevation(byte(r), byte(g), byte(b)); got != wantMapbox {
					t.Fatalf("Mapbox(%d,%d,%d) = %v; want %v", r, g, b, got, wantMapbox)
				}
				wantTerrarium := float64(r)*256 + float64(g) + float64(b)/256 - 32768
				if got := Terrarium.Elevation(byte(r), byte(g), byte(b)); got != wantTerrarium {
					t.Fatalf("Terrarium(%d,%d,%d) = %v; want %v", r, g, b, got, wantTerrarium)
				}
			}
		}
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in       string
		expected Encoding
		wantErr  error
	}{
		{"mapbox", Mapbox, nil},
		{"terrarium", Terrarium, nil},
		{"", 0, ErrUnknownEncoding},
		{"Mapbox", 0, ErrUnknownEncoding},
		{"srtm", 0, ErrUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEncoding(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseEncoding(%q) error = %v; want %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.expected {
				t.Errorf("ParseEncoding(%q) = %v; want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	// 2x2 Mapbox tile with known elevations.
	px := PixelBuffer{
		Width:  2,
		Height: 2,
		Pix: []byte{
			0, 0, 0, 255 /**/, 0, 0, 1, 255,
			0, 1, 0, 255 /**/, 1, 0, 0, 255,
		},
	}

	g, err := Decode(px, Mapbox)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if g.Width() != 2 || g.Height() != 2 || g.Border() != 0 {
		t.Fatalf("got %dx%d border %d; want 2x2 border 0", g.Width(), g.Height(), g.Border())
	}

	want := [][]float64{
		{-10000, -9999.9},
		{-10000 + 256*0.1, -10000 + 65536*0.1},
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := float64(g.At(r, c)); math.Abs(got-want[r][c]) > 1e-3 {
				t.Errorf("At(%d,%d) = %v; want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	g, err := Decode(PixelBuffer{}, Terrarium)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !g.Empty() {
		t.Errorf("expected empty grid, got %dx%d", g.Width(), g.Height())
	}

	lines, err := Trace(g, []float64{0, 100})
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty mapping from empty grid, got %d levels", len(lines))
	}
}

func TestDecode_ShortBuffer(t *testing.T) {
	px := PixelBuffer{Width: 4, Height: 4, Pix: make([]byte, 4*4*4-1)}
	if _, err := Decode(px, Mapbox); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("error = %v; want ErrShortBuffer", err)
	}
}

func TestDecode_UnknownEncoding(t *testing.T) {
	px := PixelBuffer{Width: 1, Height: 1, Pix: make([]byte, 4)}
	if _, err := Decode(px, Encoding(42)); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("error = %v; want ErrUnknownEncoding", err)
	}
}

func TestPixelBufferFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 0, color.RGBA{R: 1, G: 134, B: 160, A: 255})
	img.Set(2, 1, color.RGBA{R: 128, A: 255})

	px := PixelBufferFromImage(img)
	if px.Width != 3 || px.Height != 2 {
		t.Fatalf("got %dx%d; want 3x2", px.Width, px.Height)
	}

	g, err := Decode(px, Terrarium)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := g.At(1, 2); got != 0 {
		t.Errorf("At(1,2) = %v; want 0", got)
	}
	if got := g.At(0, 0); got != -32768 {
		t.Errorf("At(0,0) = %v; want -32768", got)
	}
}

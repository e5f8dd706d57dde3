package imaging

import (
	"image"
	"image/color"
	"testing"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// gradient varies red by x so each tolerance step floods a wider band.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / (w - 1)), G: 80, B: uint8(y), A: 255})
		}
	}
	return img
}

func transparent(img *image.NRGBA) map[image.Point]bool {
	out := make(map[image.Point]bool)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A == 0 {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func TestFloodFillUniformImage(t *testing.T) {
	img := uniform(50, 50, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	n := FloodFill(img, image.Pt(10, 10), 10)
	if n != 2500 {
		t.Errorf("expected 2500 pixels filled, got %d", n)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("pixel %d still opaque", i/4)
		}
	}
	if c := img.NRGBAAt(0, 0); c.R != 200 || c.G != 200 || c.B != 200 {
		t.Errorf("RGB changed: %v", c)
	}
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	img := uniform(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	// Vertical black wall at x=5
	for y := 0; y < 10; y++ {
		img.SetNRGBA(5, y, color.NRGBA{A: 255})
	}

	n := FloodFill(img, image.Pt(0, 0), 50)
	if n != 50 {
		t.Errorf("expected 50 pixels left of the wall, got %d", n)
	}
	if img.NRGBAAt(7, 3).A != 255 {
		t.Error("fill leaked past the wall")
	}
}

func TestFloodFillIsFourConnected(t *testing.T) {
	img := uniform(3, 3, color.NRGBA{A: 255})
	// Diagonal-only neighbours of the centre match its colour
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	img.SetNRGBA(1, 1, white)
	img.SetNRGBA(0, 0, white)
	img.SetNRGBA(2, 2, white)

	if n := FloodFill(img, image.Pt(1, 1), 0); n != 1 {
		t.Errorf("expected only the seed, got %d", n)
	}
}

func TestFloodFillOutOfBounds(t *testing.T) {
	img := uniform(5, 5, color.NRGBA{R: 1, A: 255})
	before := append([]byte(nil), img.Pix...)

	for _, p := range []image.Point{{-1, 0}, {5, 0}, {0, 5}, {2, -3}} {
		if n := FloodFill(img, p, 100); n != 0 {
			t.Errorf("seed %v: expected 0, got %d", p, n)
		}
	}
	if string(before) != string(img.Pix) {
		t.Error("out of bounds seed modified the image")
	}
}

func TestFloodFillZeroTolerance(t *testing.T) {
	img := uniform(4, 1, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 11, G: 10, B: 10, A: 255})

	if n := FloodFill(img, image.Pt(0, 0), 0); n != 2 {
		t.Errorf("expected 2 identical pixels before the off-by-one pixel, got %d", n)
	}
}

func TestFloodFillFullTolerance(t *testing.T) {
	img := gradient(20, 20)
	if n := FloodFill(img, image.Pt(3, 3), 100); n != 400 {
		t.Errorf("expected the whole image, got %d", n)
	}
}

func TestFloodFillMonotonic(t *testing.T) {
	tolerances := []float64{0, 5, 10, 25, 40, 70, 100}
	var prev map[image.Point]bool
	for _, tol := range tolerances {
		img := gradient(32, 16)
		FloodFill(img, image.Pt(16, 8), tol)
		cur := transparent(img)

		for p := range prev {
			if !cur[p] {
				t.Fatalf("tolerance %v lost pixel %v filled at a lower tolerance", tol, p)
			}
		}
		prev = cur
	}
}

func TestFloodFillNonZeroOrigin(t *testing.T) {
	img := uniform(6, 6, color.NRGBA{R: 9, A: 255}).SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)

	if n := FloodFill(img, image.Pt(3, 3), 0); n != 16 {
		t.Errorf("expected 16 pixels in the sub-image, got %d", n)
	}
	if n := FloodFill(img, image.Pt(0, 0), 0); n != 0 {
		t.Errorf("expected no-op for seed outside the sub-image, got %d", n)
	}
}

func TestClampTolerance(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := ClampTolerance(tt.in); got != tt.want {
			t.Errorf("ClampTolerance(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

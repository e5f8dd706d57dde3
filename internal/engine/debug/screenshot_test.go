package debug

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFrameImageFlipsRows(t *testing.T) {
	// Two rows: bottom row red, top row blue (OpenGL order is bottom-up)
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	img, err := FrameImage(pixels, 2, 2)
	if err != nil {
		t.Fatalf("FrameImage failed: %v", err)
	}
	if top := img.NRGBAAt(0, 0); top.B != 255 || top.R != 0 {
		t.Errorf("expected blue top row, got %v", top)
	}
	if bottom := img.NRGBAAt(1, 1); bottom.R != 255 || bottom.B != 0 {
		t.Errorf("expected red bottom row, got %v", bottom)
	}
}

func TestFrameImageSizeMismatch(t *testing.T) {
	if _, err := FrameImage(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
	if _, err := FrameImage(nil, 0, 2); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "decal")
	sc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	want := filepath.Join("shots", "decal_2026-03-04_05-06-07.webp")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "frame")

	path, err := sc.CaptureFromPixels(make([]byte, 4*3*2), 4, 3)
	if err == nil {
		t.Fatal("expected size mismatch error")
	}

	path, err = sc.CaptureFromPixels(make([]byte, 4*3*4), 4, 3)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty file at %s, err %v", path, err)
	}
}

package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScreenshotsSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "orrery")
	s.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(3, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	first, err := s.Save(img)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(dir, "orrery_2024-03-09_14-05-06.png"); first != want {
		t.Errorf("expected %s, got %s", want, first)
	}

	second, err := s.Save(img)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if want := filepath.Join(dir, "orrery_2024-03-09_14-05-06_1.png"); second != want {
		t.Errorf("same-second capture should not overwrite: got %s", second)
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds: got %v, want %v", decoded.Bounds(), img.Bounds())
	}
	r, g, b, _ := decoded.At(3, 1).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("pixel mismatch: got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestScreenshotsSaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshots(dir, "orrery")
	s.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	// png.Encode rejects an empty image
	if _, err := s.Save(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatal("expected an encode error for an empty image")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed capture left %d file(s) behind", len(entries))
	}

	path, err := s.Save(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(dir, "orrery_2024-03-09_14-05-06.png"); path != want {
		t.Errorf("next capture should reuse the name: got %s, want %s", path, want)
	}
}

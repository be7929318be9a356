package icons

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidIcon(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 144, B: 255, A: 255})
		}
	}
	return img
}

func writeIcon(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readIcon(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func alphaAt(img image.Image, x, y int) uint8 {
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}

func TestRound(t *testing.T) {
	rounded := Round(solidIcon(128, 128), DefaultRadius)

	if got, want := rounded.Bounds(), image.Rect(0, 0, 128, 128); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}

	// Corners fall outside the rounded rectangle, the center inside it.
	for _, corner := range [][2]int{{0, 0}, {127, 0}, {0, 127}, {127, 127}} {
		if a := alphaAt(rounded, corner[0], corner[1]); a != 0 {
			t.Errorf("alpha at %v = %d, want 0", corner, a)
		}
	}
	if a := alphaAt(rounded, 64, 64); a != 255 {
		t.Errorf("alpha at center = %d, want 255", a)
	}

	// Edge midpoints are untouched by the corner radius.
	if a := alphaAt(rounded, 64, 0); a == 0 {
		t.Error("alpha at top edge midpoint = 0, want opaque")
	}

	r, g, b, _ := rounded.At(64, 64).RGBA()
	if r>>8 != 30 || g>>8 != 144 || b>>8 != 255 {
		t.Errorf("center color = (%d, %d, %d), want (30, 144, 255)", r>>8, g>>8, b>>8)
	}
}

func TestProcessorRun(t *testing.T) {
	dir := t.TempDir()
	writeIcon(t, filepath.Join(dir, "icon_128x128.png"), solidIcon(128, 128))
	writeIcon(t, filepath.Join(dir, "icon_16x16.png"), solidIcon(16, 16))
	if err := os.WriteFile(filepath.Join(dir, "Contents.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "corrupt.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &Processor{Dir: dir, Radius: DefaultRadius}
	n, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Run() processed %d icons, want 2", n)
	}

	// The icon is rounded in place, the backup keeps square corners.
	if a := alphaAt(readIcon(t, filepath.Join(dir, "icon_128x128.png")), 0, 0); a != 0 {
		t.Errorf("processed icon corner alpha = %d, want 0", a)
	}
	backup := filepath.Join(dir, BackupDir, "icon_128x128.png")
	if a := alphaAt(readIcon(t, backup), 0, 0); a != 255 {
		t.Errorf("backup corner alpha = %d, want 255", a)
	}

	// The undecodable file neither counts nor gets a backup.
	if _, err := os.Stat(filepath.Join(dir, BackupDir, "corrupt.png")); !os.IsNotExist(err) {
		t.Error("corrupt.png was backed up, want skipped")
	}

	// A second run rounds the already rounded icons again but must not
	// replace the backups with them.
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if a := alphaAt(readIcon(t, backup), 0, 0); a != 255 {
		t.Errorf("backup corner alpha after second run = %d, want 255", a)
	}
}

func TestProcessorRunMissingDir(t *testing.T) {
	p := &Processor{Dir: filepath.Join(t.TempDir(), "missing"), Radius: DefaultRadius}
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Run() on a missing directory expected an error, got nil")
	}
}

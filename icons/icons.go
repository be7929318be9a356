package icons

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/ytaudiobar/release-tools/log"
)

// DefaultRadius is the macOS app icon corner radius, as a fraction of
// the icon's shorter side.
const DefaultRadius = 0.2237

// BackupDir is created inside the icon directory and keeps the original
// icons. Existing backups are never overwritten, so running the tool
// twice does not replace them with already rounded copies.
const BackupDir = "backup_original"

// Round returns img with its corners clipped to a rounded rectangle.
// Pixels outside the rectangle become fully transparent.
func Round(img image.Image, radiusFrac float64) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	side := w
	if h < side {
		side = h
	}
	radius := float64(side) * radiusFrac

	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	dc.Clip()
	dc.DrawImage(img, 0, 0)
	return dc.Image()
}

// Processor rounds every PNG icon in a directory in place.
type Processor struct {
	Dir    string
	Radius float64
}

// Run processes all *.png files in the directory and returns how many
// were rounded. A file that cannot be read or decoded is skipped with a
// warning; only an unreadable directory is an error.
func (p *Processor) Run(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return 0, errors.Wrapf(err, "reading icon directory %s", p.Dir)
	}

	if err := os.MkdirAll(filepath.Join(p.Dir, BackupDir), 0o755); err != nil {
		return 0, errors.Wrap(err, "creating backup directory")
	}

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		if err := p.process(ctx, entry.Name()); err != nil {
			log.G(ctx).Warnf("Skipping %s: %v", entry.Name(), err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (p *Processor) process(ctx context.Context, name string) error {
	path := filepath.Join(p.Dir, name)

	img, err := readPNG(path)
	if err != nil {
		return err
	}

	backup := filepath.Join(p.Dir, BackupDir, name)
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		if err := copyFile(path, backup); err != nil {
			return errors.Wrap(err, "backing up original")
		}
	}

	if err := writePNG(path, Round(img, p.Radius)); err != nil {
		return err
	}

	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	log.G(ctx).Infof("Processed %s (radius %dpx)", name, int(float64(side)*p.Radius))
	return nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return renameio.WriteFile(path, buf.Bytes(), 0o644)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

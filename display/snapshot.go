package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/bough"
)

// WriteSnapshots rasterizes every snapshot at w×h and writes it to dir as
// <frame>_<label>.png. A zero size uses the default canvas size. It returns
// the written paths in order.
func WriteSnapshots(dir string, snaps []bough.Snapshot, w, h int) ([]string, error) {
	w, h = canvasSize(w, h)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}
	c := NewCanvas(w, h)
	paths := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		c.Draw(snap.Frames)
		path := filepath.Join(dir, fmt.Sprintf("%06d_%s.png", snap.Frame, sanitizeLabel(snap.Label)))
		if err := writePNG(path, c.Image()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

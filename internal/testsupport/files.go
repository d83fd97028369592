package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	writeBytes(t, path, bytes.Repeat([]byte{0x42}, int(size)))
}

// Bands returns a w x h image split into vertical bands, one per color.
func Bands(w, h int, colors ...color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if len(colors) == 0 {
		return img
	}
	for x := range w {
		c := colors[x*len(colors)/w]
		for y := range h {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// WritePNG encodes img as PNG at path, creating parent directories.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png %s: %v", path, err)
	}
	writeBytes(t, path, buf.Bytes())
}

// WriteJPEG encodes img as a maximum-quality JPEG at path, creating parent
// directories.
func WriteJPEG(t testing.TB, path string, img image.Image) {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("encode jpeg %s: %v", path, err)
	}
	writeBytes(t, path, buf.Bytes())
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

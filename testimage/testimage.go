// Package testimage writes deterministic sample images.
package testimage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Gradient returns an opaque width x height image: red grows left to right,
// green top to bottom, blue along the diagonal.
func Gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: scale(x, width),
				G: scale(y, height),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func scale(v, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(v * 255 / (n - 1))
}

var encoders = map[string]func(io.Writer, image.Image) error{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) },
	".tiff": func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) },
}

// Encode writes img in the format named by ext (".png", ".bmp", ".tif" or ".tiff").
func Encode(w io.Writer, img image.Image, ext string) error {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("unsupported sample image extension %q", ext)
	}
	return enc(w, img)
}

// WriteFile writes img to path, choosing the encoder from the extension.
func WriteFile(path string, img image.Image) (err error) {
	ext := filepath.Ext(path)
	if _, ok := encoders[strings.ToLower(ext)]; !ok {
		return fmt.Errorf("unsupported sample image extension %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, img, ext); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

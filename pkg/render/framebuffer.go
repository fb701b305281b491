package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Framebuffer is a grid of float colors, row-major with row 0 at the bottom
// of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []Color
}

// NewFramebuffer creates a framebuffer of transparent black pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) {
	fill(fb.Pix, c)
}

// At returns the color at (x, y), or the zero Color out of bounds.
func (fb *Framebuffer) At(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pix[y*fb.Width+x]
}

// Set writes the color at (x, y). Out of bounds writes are ignored.
func (fb *Framebuffer) Set(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pix[y*fb.Width+x] = c
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts to an 8-bit image with the usual top-left origin, so the
// bottom row of the framebuffer becomes the last row of the image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		row := fb.Pix[(fb.Height-1-y)*fb.Width:]
		for x := range fb.Width {
			img.SetNRGBA(x, y, row[x].NRGBA())
		}
	}
	return img
}

// Encode writes the framebuffer in the named format: png, jpeg, bmp or tiff.
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	enc, err := encoder(format)
	if err != nil {
		return err
	}
	return enc(w, fb.ToImage())
}

func encoder(format string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode, nil
	case "jpg", "jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}, nil
	case "bmp":
		return bmp.Encode, nil
	case "tif", "tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("unsupported image format %q", format)
}

// Save writes the framebuffer to path, choosing the encoder from the file
// extension.
func (fb *Framebuffer) Save(path string) (err error) {
	enc, err := encoder(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()

	if err := enc(f, fb.ToImage()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

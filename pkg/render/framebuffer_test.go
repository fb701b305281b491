package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferToImageFlips(t *testing.T) {
	fb := NewFramebuffer(2, 3)
	fb.Fill(Black)
	fb.Set(0, 0, RGB(1, 0, 0)) // bottom-left
	fb.Set(1, 2, RGB(0, 1, 0)) // top-right

	img := fb.ToImage()
	if got := img.NRGBAAt(0, 2); got.R != 255 || got.G != 0 {
		t.Errorf("bottom-left pixel = %v, want red", got)
	}
	if got := img.NRGBAAt(1, 0); got.G != 255 || got.R != 0 {
		t.Errorf("top-right pixel = %v, want green", got)
	}
}

func TestFramebufferClampsOnOutput(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Set(0, 0, Color{1.7, -0.2, 0.5, 1})

	got := fb.ToImage().NRGBAAt(0, 0)
	if got.R != 255 || got.G != 0 || got.B != 128 {
		t.Errorf("pixel = %v, want (255, 0, 128)", got)
	}
}

func TestFramebufferEncode(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Fill(White)

	for _, format := range []string{"png", "jpeg", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := fb.Encode(&buf, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("empty output")
			}
		})
	}

	if err := fb.Encode(&bytes.Buffer{}, "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFramebufferSave(t *testing.T) {
	dir := t.TempDir()
	fb := NewFramebuffer(3, 2)
	fb.Fill(RGB(0, 0, 1))

	path := filepath.Join(dir, "out.png")
	if err := fb.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}

	bad := filepath.Join(dir, "out.xyz")
	if err := fb.Save(bad); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("file created for unknown extension")
	}
}

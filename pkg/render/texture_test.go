package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func rampTexture(t *testing.T, w, h int) *Texture {
	t.Helper()
	pix := make([]Color, w*h)
	for y := range h {
		for x := range w {
			pix[y*w+x] = Color{float64(x) / float64(w), float64(y) / float64(h), float64((x*7+y*3)%5) / 4, 1}
		}
	}
	tex, err := NewTexture(w, h, pix)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	return tex
}

func TestTextureTexelCenterExact(t *testing.T) {
	tex := rampTexture(t, 16, 8)

	for level := range MipLevels {
		w, h := tex.Size(level)
		for y := range h {
			for x := range w {
				u := (float64(x) + 0.5) / float64(w)
				v := (float64(y) + 0.5) / float64(h)
				if got, want := tex.Sample(u, v, level), tex.Texel(x, y, level); got != want {
					t.Errorf("level %d texel (%d,%d): Sample = %v, want %v", level, x, y, got, want)
				}
			}
		}
	}
}

func TestTextureMipChain(t *testing.T) {
	tex := rampTexture(t, 16, 8)

	sizes := [MipLevels][2]int{{16, 8}, {8, 4}, {4, 2}, {2, 1}}
	for level, want := range sizes {
		if w, h := tex.Size(level); w != want[0] || h != want[1] {
			t.Errorf("level %d size = %dx%d, want %dx%d", level, w, h, want[0], want[1])
		}
	}

	got := tex.Texel(1, 1, 1)
	want := tex.Texel(2, 2, 0).Add(tex.Texel(3, 2, 0)).Add(tex.Texel(2, 3, 0).Add(tex.Texel(3, 3, 0))).Scale(0.25)
	if !colorNear(got, want, 1e-12) {
		t.Errorf("level 1 texel = %v, want box average %v", got, want)
	}
}

func TestTextureMipSizeFloor(t *testing.T) {
	tex, err := NewTexture(3, 1, []Color{White, Black, White})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	for level := 1; level < MipLevels; level++ {
		if w, h := tex.Size(level); w != 1 || h != 1 {
			t.Errorf("level %d size = %dx%d, want 1x1", level, w, h)
		}
	}
}

func TestTextureBilinear(t *testing.T) {
	tex, err := NewTexture(2, 1, []Color{Black, White})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	tests := []struct {
		name string
		u    float64
		want float64
	}{
		{"left edge clamps", 0, 0},
		{"midpoint", 0.5, 0.5},
		{"quarter between centers", 0.375, 0.25},
		{"right edge clamps", 1, 1},
		{"beyond range clamps", 3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, 0.5, 0).R; got != tc.want {
				t.Errorf("Sample(%v) = %v, want %v", tc.u, got, tc.want)
			}
		})
	}
}

func TestNewTextureInvalid(t *testing.T) {
	if _, err := NewTexture(0, 4, nil); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: err = %v", err)
	}
	if _, err := NewTexture(2, 2, make([]Color, 3)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("short pixel slice: err = %v", err)
	}
}

func TestProceduralTextureInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Texture, error)
	}{
		{"checker negative width", func() (*Texture, error) { return NewCheckerTexture(-4, 8, 2, White, Black) }},
		{"checker negative height", func() (*Texture, error) { return NewCheckerTexture(8, -4, 2, White, Black) }},
		{"checker zero", func() (*Texture, error) { return NewCheckerTexture(0, 0, 2, White, Black) }},
		{"bump negative", func() (*Texture, error) { return NewBumpTexture(-8, 4, 1) }},
		{"bump zero", func() (*Texture, error) { return NewBumpTexture(0, 4, 1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tex, err := tc.make()
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("err = %v, want ErrInvalidSize", err)
			}
			if tex != nil {
				t.Error("expected nil texture")
			}
		})
	}
}

func TestNewTextureCopiesPixels(t *testing.T) {
	pix := []Color{White, Black, Black, White}
	tex, err := NewTexture(2, 2, pix)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	pix[0] = RGB(1, 0, 0)
	if got := tex.Texel(0, 0, 0); got != White {
		t.Errorf("texel (0,0) = %v after caller write, want white", got)
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})

	tex, err := TextureFromImage(img)
	if err != nil {
		t.Fatalf("TextureFromImage: %v", err)
	}
	if got := tex.Texel(1, 0, 0); got != RGB(1, 0, 0) {
		t.Errorf("texel (1,0) = %v, want red", got)
	}
	if got := tex.Texel(0, 1, 0); got != RGB(0, 0, 1) {
		t.Errorf("texel (0,1) = %v, want blue", got)
	}
}

func TestBumpTextureFlatInterior(t *testing.T) {
	tex, err := NewBumpTexture(32, 8, 1)
	if err != nil {
		t.Fatalf("NewBumpTexture: %v", err)
	}
	if got := tex.Texel(4, 4, 0); got != (Color{0.5, 0.5, 1, 1}) {
		t.Errorf("interior normal = %v, want flat", got)
	}
	if got := tex.Texel(0, 4, 0); got.R >= 0.5 {
		t.Errorf("left border normal = %v, want tilted toward -x", got)
	}
}

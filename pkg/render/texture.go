package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"
	"os"
	"slices"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// MipLevels is the number of levels built for every texture.
const MipLevels = 4

// Texture is an immutable mipmapped image sampled with bilinear filtering
// and edge clamping. Texel (0, 0) is the first pixel of the source data and
// v grows with rows.
type Texture struct {
	levels [MipLevels]mip
}

type mip struct {
	width, height int
	pix           []Color
}

func (m *mip) texel(x, y int) Color {
	x = min(max(x, 0), m.width-1)
	y = min(max(y, 0), m.height-1)
	return m.pix[y*m.width+x]
}

// NewTexture builds a texture and its mip chain from row-major pixels. The
// pixels are copied.
// Each level halves the previous one with a 2x2 box filter; sizes never drop
// below one texel.
func NewTexture(width, height int, pixels []Color) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: texture %dx%d with %d pixels", ErrInvalidSize, width, height, len(pixels))
	}

	t := &Texture{}
	t.levels[0] = mip{width: width, height: height, pix: slices.Clone(pixels)}
	for i := 1; i < MipLevels; i++ {
		t.levels[i] = downsample(&t.levels[i-1])
	}
	return t, nil
}

func downsample(src *mip) mip {
	w, h := max(src.width/2, 1), max(src.height/2, 1)
	dst := mip{width: w, height: h, pix: make([]Color, w*h)}
	for y := range h {
		for x := range w {
			sx, sy := x*2, y*2
			sum := src.texel(sx, sy).Add(src.texel(sx+1, sy)).
				Add(src.texel(sx, sy+1).Add(src.texel(sx+1, sy+1)))
			dst.pix[y*w+x] = sum.Scale(0.25)
		}
	}
	return dst
}

// Size returns the dimensions of a mip level.
func (t *Texture) Size(level int) (width, height int) {
	m := &t.levels[clampLevel(level)]
	return m.width, m.height
}

// Texel returns a stored texel, clamping coordinates to the level.
func (t *Texture) Texel(x, y, level int) Color {
	return t.levels[clampLevel(level)].texel(x, y)
}

// Sample returns the bilinear blend of the four texels around (u, v) at the
// given mip level. Coordinates are clamped to the edge, so sampling the
// center of a texel returns it exactly.
func (t *Texture) Sample(u, v float64, level int) Color {
	m := &t.levels[clampLevel(level)]

	fx := u*float64(m.width) - 0.5
	fy := v*float64(m.height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := m.texel(x0, y0).Lerp(m.texel(x0+1, y0), tx)
	bot := m.texel(x0, y0+1).Lerp(m.texel(x0+1, y0+1), tx)
	return top.Lerp(bot, ty)
}

func clampLevel(level int) int {
	return min(max(level, 0), MipLevels-1)
}

// TextureFromImage copies a decoded image into a texture.
func TextureFromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	pix := make([]Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pix = append(pix, ColorFromRGBA(img.At(x, y)))
		}
	}
	return NewTexture(b.Dx(), b.Dy(), pix)
}

// LoadTexture decodes a PNG, JPEG, BMP, TIFF or WebP file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img)
}

// NewCheckerTexture creates a procedural checkerboard.
func NewCheckerTexture(width, height, cell int, c1, c2 Color) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	if cell <= 0 {
		cell = 1
	}
	pix := make([]Color, width*height)
	for y := range height {
		for x := range width {
			if (x/cell+y/cell)%2 == 0 {
				pix[y*width+x] = c1
			} else {
				pix[y*width+x] = c2
			}
		}
	}
	return NewTexture(width, height, pix)
}

// NewBumpTexture creates a tangent-space normal map of raised square tiles:
// flat (0.5, 0.5, 1) inside each tile, with normals tilted outward along a
// border of the given width.
func NewBumpTexture(size, cell, border int) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, size, size)
	}
	if cell <= 0 {
		cell = 1
	}
	pix := make([]Color, size*size)
	for y := range size {
		for x := range size {
			n := [2]float64{}
			cx, cy := x%cell, y%cell
			switch {
			case cx < border:
				n[0] = -0.5
			case cx >= cell-border:
				n[0] = 0.5
			}
			switch {
			case cy < border:
				n[1] = -0.5
			case cy >= cell-border:
				n[1] = 0.5
			}
			l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + 1)
			pix[y*size+x] = Color{
				R: (n[0]/l)*0.5 + 0.5,
				G: (n[1]/l)*0.5 + 0.5,
				B: (1/l)*0.5 + 0.5,
				A: 1,
			}
		}
	}
	return NewTexture(size, size, pix)
}

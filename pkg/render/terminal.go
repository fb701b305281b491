package render

import (
	"image"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"
)

// Draw paints the framebuffer into area using upper half blocks, two image
// rows per terminal cell. The image is scaled to fit the area and flipped so
// the bottom framebuffer row lands at the bottom of the area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := area.Max.X - area.Min.X
	rows := area.Max.Y - area.Min.Y
	if cols <= 0 || rows <= 0 || fb.Width == 0 || fb.Height == 0 {
		return
	}

	src := fb.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, cols, rows*2))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	for row := range rows {
		for col := range cols {
			top := dst.NRGBAAt(col, row*2)
			bot := dst.NRGBAAt(col, row*2+1)
			scr.SetCell(area.Min.X+col, area.Min.Y+row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style:   uv.Style{Fg: top, Bg: bot},
			})
		}
	}
}

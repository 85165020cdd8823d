package maze

import (
	"image"
	"image/color"

	"github.com/yalue/image_utils"
)

// montageGapPx separates layers in a layered render.
const montageGapPx = 8

var kindColors = map[CellKind]color.RGBA{
	Wall:       {R: 20, G: 20, B: 24, A: 255},
	Open:       {R: 240, G: 240, B: 240, A: 255},
	Start:      {R: 40, G: 180, B: 70, A: 255},
	Goal:       {R: 100, G: 120, B: 255, A: 255},
	PortalUp:   {R: 250, G: 170, B: 40, A: 255},
	PortalDown: {R: 160, G: 80, B: 220, A: 255},
}

// RenderImage rasterizes the grid, one cellSize x cellSize block per
// cell. cellSize values below 1 are treated as 1.
func (g *Grid) RenderImage(cellSize int) image.Image {
	if cellSize < 1 {
		cellSize = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, g.Width*cellSize, g.Height*cellSize))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := kindColors[g.Cells[y][x]]
			for py := y * cellSize; py < (y+1)*cellSize; py++ {
				for px := x * cellSize; px < (x+1)*cellSize; px++ {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}
	return img
}

// RenderImage rasterizes every layer side by side, lowest layer first.
func (lg *LayeredGrid) RenderImage(cellSize int) (image.Image, error) {
	if cellSize < 1 {
		cellSize = 1
	}
	montage := image_utils.NewCompositeImage()
	offset := 0
	for _, layer := range lg.Layers {
		if err := montage.AddImage(layer.RenderImage(cellSize), image.Pt(offset, 0)); err != nil {
			return nil, err
		}
		offset += lg.Width*cellSize + montageGapPx
	}
	return image_utils.ToRGBA(montage), nil
}

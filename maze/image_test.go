package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderImage(t *testing.T) {
	t.Run("flat grid rasterizes block per cell", func(t *testing.T) {
		g := parseGrid(t, []string{
			"##",
			"#.",
		})
		img := g.RenderImage(4)
		assert.Equal(t, 8, img.Bounds().Dx())
		assert.Equal(t, 8, img.Bounds().Dy())

		assert.Equal(t, kindColors[Wall], img.At(0, 0))
		assert.Equal(t, kindColors[Wall], img.At(3, 3))
		assert.Equal(t, kindColors[Open], img.At(4, 4))
		assert.Equal(t, kindColors[Open], img.At(7, 7))
	})

	t.Run("cell size below one is clamped", func(t *testing.T) {
		g := parseGrid(t, []string{
			"#.",
			"S#",
		})
		img := g.RenderImage(0)
		assert.Equal(t, 2, img.Bounds().Dx())
		assert.Equal(t, 2, img.Bounds().Dy())
		assert.Equal(t, kindColors[Start], img.At(0, 1))
	})

	t.Run("every kind has a color", func(t *testing.T) {
		for _, k := range []CellKind{Wall, Open, Start, Goal, PortalUp, PortalDown} {
			assert.Contains(t, kindColors, k)
		}
	})

	t.Run("layered grid renders layers side by side", func(t *testing.T) {
		lower := parseGrid(t, []string{
			"###",
			"#.#",
			"###",
		})
		upper := parseGrid(t, []string{
			"###",
			"#G#",
			"###",
		})
		lg := &LayeredGrid{Width: 3, Height: 3, Layers: []*Grid{lower, upper}}

		img, err := lg.RenderImage(2)
		assert.NoError(t, err)
		assert.NotNil(t, img)

		// Two 6px layers plus the montage gap.
		assert.Equal(t, 2*6+montageGapPx, img.Bounds().Dx())
		assert.Equal(t, 6, img.Bounds().Dy())
	})
}

package viz

import (
	"math"
	"strings"
)

// Canvas is a rune grid the live view rasterizes bubbles onto. World
// coordinates are the chart viewport; cells map onto it uniformly.
type Canvas struct {
	Width, Height int
	worldW        float64
	worldH        float64
	cells         [][]rune
}

func NewCanvas(width, height int, worldW, worldH float64) *Canvas {
	c := &Canvas{Width: width, Height: height, worldW: worldW, worldH: worldH}
	c.cells = make([][]rune, height)
	for i := range c.cells {
		c.cells[i] = make([]rune, width)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = ' '
		}
	}
}

// DrawCircle rasterizes a filled circle given in world coordinates.
func (c *Canvas) DrawCircle(x, y, r float64, ch rune) {
	sx := float64(c.Width) / c.worldW
	sy := float64(c.Height) / c.worldH

	minCol := int(math.Floor((x - r) * sx))
	maxCol := int(math.Ceil((x + r) * sx))
	minRow := int(math.Floor((y - r) * sy))
	maxRow := int(math.Ceil((y + r) * sy))

	for row := minRow; row <= maxRow; row++ {
		if row < 0 || row >= c.Height {
			continue
		}
		for col := minCol; col <= maxCol; col++ {
			if col < 0 || col >= c.Width {
				continue
			}
			wx := (float64(col) + 0.5) / sx
			wy := (float64(row) + 0.5) / sy
			if math.Hypot(wx-x, wy-y) <= r {
				c.cells[row][col] = ch
			}
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

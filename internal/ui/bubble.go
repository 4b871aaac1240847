package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/relabs-tech/pocket_instruments/internal/level"
)

// bubbleScale maps tilt angle (degrees) onto grid cells. Presentation only;
// the level verdict comes from the reading, never from this offset.
const bubbleScale = 0.8

// RenderBubble draws the spirit-level view: a crosshair frame with the
// bubble drifting opposite the tilt, plus the exact angles underneath.
func RenderBubble(width, height int, r level.Reading, have bool, th Theme) string {
	if !have {
		return th.Dim.Render("waiting for sensor...")
	}
	if width < 13 || height < 7 {
		return fmt.Sprintf("x=%.2f° y=%.2f°", r.XAngle, r.YAngle)
	}

	textLines := 2
	gridH := height - textLines
	grid := make([][]byte, gridH)
	for i := range grid {
		grid[i] = bytes(width)
	}

	cx := width / 2
	cy := gridH / 2
	maxX := float64(width)/2 - 2
	maxY := float64(gridH)/2 - 1

	// Frame crosshair
	for c := 1; c < width-1; c++ {
		grid[cy][c] = '-'
	}
	for row := 0; row < gridH; row++ {
		grid[row][cx] = '|'
	}
	grid[cy][cx] = '+'

	// Center target box
	setGrid(grid, width, gridH, cx-2, cy-1, '[')
	setGrid(grid, width, gridH, cx+2, cy-1, ']')
	setGrid(grid, width, gridH, cx-2, cy+1, '[')
	setGrid(grid, width, gridH, cx+2, cy+1, ']')

	// The bubble floats against the tilt direction.
	bx := cx + int(math.Round(level.BubbleOffset(-r.XAngle, bubbleScale, maxX)))
	by := cy + int(math.Round(level.BubbleOffset(-r.YAngle, bubbleScale*0.5, maxY)))
	setGrid(grid, width, gridH, bx, by, 'O')

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}

	b.WriteString(th.Accent.Render(fmt.Sprintf("x %6.2f°   y %6.2f°", r.XAngle, r.YAngle)))
	b.WriteByte('\n')
	if r.Level {
		b.WriteString(th.Good.Render("LEVEL"))
	} else {
		b.WriteString(th.Dim.Render("tilted"))
	}

	return b.String()
}

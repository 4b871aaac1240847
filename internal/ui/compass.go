package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/relabs-tech/pocket_instruments/internal/heading"
)

// RenderCompass draws a compass rose that rotates under a fixed needle at
// the top of the ring, the way a phone compass card turns under its lubber
// line. The cardinal letters are placed at their bearing minus the current
// heading.
func RenderCompass(width, height int, r heading.Reading, have bool, th Theme) string {
	if !have {
		return th.Dim.Render("waiting for sensor...")
	}
	if width < 13 || height < 7 {
		return fmt.Sprintf("%.1f° %s", r.Heading, r.Direction)
	}

	textLines := 2
	gridH := height - textLines
	grid := make([][]byte, gridH)
	for i := range grid {
		grid[i] = bytes(width)
	}

	fcx := float64(width) / 2.0
	fcy := float64(gridH) / 2.0
	rx := fcx - 2.0
	ry := fcy - 1.5
	if rx < 4 {
		rx = 4
	}
	if ry < 2 {
		ry = 2
	}

	// Ring
	steps := 72
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		setGrid(grid, width, gridH, col, row, '.')
	}

	// Cardinal letters at bearing-minus-heading: the card rotates, the
	// needle stays put.
	for i, name := range []byte{'N', 'E', 'S', 'W'} {
		bearing := float64(i) * 90
		a := (bearing - r.Heading) * math.Pi / 180
		col := int(math.Round(fcx + (rx-1)*math.Sin(a)))
		row := int(math.Round(fcy - (ry-1)*math.Cos(a)))
		setGrid(grid, width, gridH, col, row, name)
	}

	// Fixed needle at the top
	setGrid(grid, width, gridH, int(math.Round(fcx)), int(math.Round(fcy-ry))-1, '^')
	setGrid(grid, width, gridH, int(math.Round(fcx)), int(math.Round(fcy)), '+')

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}

	line := fmt.Sprintf("%6.1f°  %-2s", r.Heading, r.Direction)
	if r.NearNorth {
		b.WriteString(th.Good.Render(line + "  NORTH"))
	} else {
		b.WriteString(th.Accent.Render(line))
	}
	b.WriteByte('\n')
	b.WriteString(th.Dim.Render(fmt.Sprintf("rotation %8.1f°", r.Rotation)))

	return b.String()
}

func bytes(width int) []byte {
	row := make([]byte, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func setGrid(grid [][]byte, width, height, col, row int, c byte) {
	if col >= 0 && col < width && row >= 0 && row < height {
		grid[row][col] = c
	}
}

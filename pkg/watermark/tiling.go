package watermark

import (
	"math"

	"github.com/go-drift/photoedit/pkg/graphics"
)

// Row is one horizontal run of tiles in the rotated grid.
type Row struct {
	// Y is the top of every tile in the row.
	Y float64
	// StartX is the left edge of the first tile.
	StartX float64
	// Count is the number of tiles in the row.
	Count int
}

// Tiling is the tile grid for one render, in rotated coordinates relative
// to the target's origin.
type Tiling struct {
	StepX    float64
	StepY    float64
	Diagonal float64
	Rows     []Row
}

// PlanTiles lays out tiles of textSize over rect.
//
// With w the diagonal of rect, rows start at -w and continue while y < 2w.
// Columns start at -2w and continue while x < w; odd rows start half a step
// further left. The oversized range keeps the corners covered once the grid
// is rotated.
func PlanTiles(textSize graphics.Size, rect graphics.Rect) Tiling {
	t := Tiling{
		StepX:    math.Max(textSize.Width+Spacing, 1),
		StepY:    math.Max(textSize.Height+Spacing, 1),
		Diagonal: math.Hypot(rect.Width(), rect.Height()),
	}
	w := t.Diagonal
	offset := false
	for y := -w; y < 2*w; y += t.StepY {
		row := Row{Y: y, StartX: -2 * w}
		if offset {
			row.StartX -= t.StepX / 2
		}
		for x := row.StartX; x < w; x += t.StepX {
			row.Count++
		}
		t.Rows = append(t.Rows, row)
		offset = !offset
	}
	return t
}

// Len returns the total number of tiles.
func (t Tiling) Len() int {
	n := 0
	for _, row := range t.Rows {
		n += row.Count
	}
	return n
}

// Each calls fn with the top-left corner of every tile, row by row.
func (t Tiling) Each(fn func(x, y float64)) {
	for _, row := range t.Rows {
		x := row.StartX
		for i := 0; i < row.Count; i++ {
			fn(x, row.Y)
			x += t.StepX
		}
	}
}

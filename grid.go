package sprc

import "image"

// Grid describes the cell geometry of a sprite sheet: the size of one
// cell in pixels and the pixel offset of cell (0, 0) from the top-left
// corner of the sheet.
type Grid struct {
	CellWidth  int
	CellHeight int
	OffsetX    int
	OffsetY    int
}

func (g Grid) validate() error {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return &GeometryError{Grid: g}
	}
	return nil
}

// SpriteRect is the position and size of one sprite in grid cells.
type SpriteRect struct {
	X int
	Y int
	W int
	H int
}

func (r SpriteRect) validate() error {
	if r.W <= 0 || r.H <= 0 {
		return &RectError{Rect: r}
	}
	return nil
}

// Resolve maps r to an absolute pixel rectangle on the sheet. It is
// pure arithmetic; rectangles running off the sheet are clipped later
// by pixel extraction, not here.
func (g Grid) Resolve(r SpriteRect) image.Rectangle {
	x := g.OffsetX + r.X*g.CellWidth
	y := g.OffsetY + r.Y*g.CellHeight
	return image.Rect(x, y, x+r.W*g.CellWidth, y+r.H*g.CellHeight)
}

// FillSheet returns one 1x1 sprite per whole grid cell of a sheet with
// the given pixel dimensions, in row-major order. Used when the caller
// supplies no sprite rectangles of its own.
func (g Grid) FillSheet(width, height int) []SpriteRect {
	cols := width / g.CellWidth
	if cols < 1 {
		cols = 1
	}
	rows := height / g.CellHeight
	if rows < 1 {
		rows = 1
	}
	rects := make([]SpriteRect, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			rects = append(rects, SpriteRect{X: x, Y: y, W: 1, H: 1})
		}
	}
	return rects
}

// Cell sizes tried first when auto-detecting a grid, most common sprite
// sizes first.
var preferredCells = [...]int{16, 32, 8, 24, 48, 64}

// DetectCellSize guesses a square cell size for a sheet of the given
// pixel width. It considers divisors of the width no smaller than 8,
// preferring common sprite sizes, and falls back to the largest such
// divisor or the full width.
func DetectCellSize(width int) int {
	if width < 1 {
		return width
	}

	divisors := make(map[int]bool)
	max := 0
	for d := 1; d*d <= width; d++ {
		if width%d != 0 {
			continue
		}
		for _, v := range [2]int{d, width / d} {
			if v >= 8 {
				divisors[v] = true
				if v > max {
					max = v
				}
			}
		}
	}

	for _, p := range preferredCells {
		if divisors[p] {
			return p
		}
	}
	if max > 0 {
		return max
	}
	return width
}

// Package grid implements the uniform spatial hash used to keep dot
// placement's nearest-neighbor queries cheap. A k-d tree/quadtree was
// considered and rejected: dot counts are modest (<=1e5) and a uniform
// grid is more cache-friendly for the bulk-insert, radius-query access
// pattern dot placement needs.
package grid

import "math"

// Entry is a single occupant of the grid: a position and an opaque
// index back into the caller's dot slice.
type Entry struct {
	X, Y  float64
	Index int
}

// Grid is a uniform spatial hash over 2D positions.
type Grid struct {
	cellSize      float64
	width, height int
	cols, rows    int
	cells         map[int][]Entry
}

// New builds a grid sized for a world of the given dimensions, with a
// cell size derived from the largest expected radius and the minimum
// spacing factor: cell_size = maxRadius * spacing * 2, floored at 1.
func New(width, height int, maxRadius, spacing float64) *Grid {
	cellSize := maxRadius * spacing * 2
	if cellSize < 1 {
		cellSize = 1
	}
	cols := int(math.Ceil(float64(width) / cellSize))
	rows := int(math.Ceil(float64(height) / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		cellSize: cellSize, width: width, height: height,
		cols: cols, rows: rows, cells: make(map[int][]Entry),
	}
}

func (g *Grid) cellIndex(x, y float64) int {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy >= g.rows {
		cy = g.rows - 1
	}
	return cy*g.cols + cx
}

// Add inserts a new occupant at (x, y).
func (g *Grid) Add(index int, x, y float64) {
	ci := g.cellIndex(x, y)
	g.cells[ci] = append(g.cells[ci], Entry{X: x, Y: y, Index: index})
}

// FindInRadius returns every occupant within radius of (x, y), scanning
// only the cells that could possibly contain one.
func (g *Grid) FindInRadius(x, y, radius float64) []Entry {
	cellRadius := int(math.Ceil(radius / g.cellSize))
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)

	var out []Entry
	r2 := radius * radius
	for dy := -cellRadius; dy <= cellRadius; dy++ {
		for dx := -cellRadius; dx <= cellRadius; dx++ {
			gx, gy := cx+dx, cy+dy
			if gx < 0 || gy < 0 || gx >= g.cols || gy >= g.rows {
				continue
			}
			for _, e := range g.cells[gy*g.cols+gx] {
				ddx, ddy := e.X-x, e.Y-y
				if ddx*ddx+ddy*ddy <= r2 {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

// IsPositionValid reports whether a candidate position keeps at least
// minDistance away from every existing occupant within range.
func (g *Grid) IsPositionValid(x, y, minDistance float64) bool {
	for _, e := range g.FindInRadius(x, y, minDistance) {
		ddx, ddy := e.X-x, e.Y-y
		if ddx*ddx+ddy*ddy < minDistance*minDistance {
			return false
		}
	}
	return true
}

// Clear empties the grid without changing its cell sizing.
func (g *Grid) Clear() {
	g.cells = make(map[int][]Entry)
}

// Stats reports occupancy statistics, for diagnostics.
type Stats struct {
	CellCount     int
	OccupiedCells int
	TotalEntries  int
	MaxPerCell    int
}

// ComputeStats scans every cell, used sparingly (diagnostics only).
func (g *Grid) ComputeStats() Stats {
	s := Stats{CellCount: g.cols * g.rows}
	for _, entries := range g.cells {
		if len(entries) == 0 {
			continue
		}
		s.OccupiedCells++
		s.TotalEntries += len(entries)
		if len(entries) > s.MaxPerCell {
			s.MaxPerCell = len(entries)
		}
	}
	return s
}

// OptimizeForDistribution returns a fresh, empty grid over the same
// area whose cell size is derived from the caller-supplied avgRadius
// and spacing exactly as New derives it; it does not inspect the
// current occupants or their spacing. Callers re-add their occupants.
func (g *Grid) OptimizeForDistribution(avgRadius, spacing float64) *Grid {
	return New(g.width, g.height, avgRadius, spacing)
}

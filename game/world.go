package game

import "math"

// World is a uniform grid over the play field used for overlap queries.
// Positions outside the field are clamped into the border cells, which keeps
// off-screen spawns queryable.
type World struct {
	// Preallocated 2D grid of cells
	Cells [][]*Cell

	CellSize   float64
	CellCountX int
	CellCountY int
}

// NewWorld creates a grid that covers field with square cells of cellSize
func NewWorld(field PlayField, cellSize float64) *World {
	cellCountX := max(1, int(math.Ceil(field.Width/cellSize)))
	cellCountY := max(1, int(math.Ceil(field.Height/cellSize)))

	cells := make([][]*Cell, cellCountX)
	for x := 0; x < cellCountX; x++ {
		cells[x] = make([]*Cell, cellCountY)
		for y := 0; y < cellCountY; y++ {
			cells[x][y] = NewCell(8)
		}
	}

	return &World{
		Cells:      cells,
		CellSize:   cellSize,
		CellCountX: cellCountX,
		CellCountY: cellCountY,
	}
}

// WorldToCell converts field coordinates to cell coordinates
func (w *World) WorldToCell(x, y float64) (int, int) {
	cellX := int(math.Floor(x / w.CellSize))
	cellY := int(math.Floor(y / w.CellSize))

	// Clamp to valid cell range
	cellX = max(0, min(cellX, w.CellCountX-1))
	cellY = max(0, min(cellY, w.CellCountY-1))

	return cellX, cellY
}

// GetCell returns the cell at the given cell coordinates
func (w *World) GetCell(cellX, cellY int) *Cell {
	if cellX < 0 || cellX >= w.CellCountX || cellY < 0 || cellY >= w.CellCountY {
		return nil
	}
	return w.Cells[cellX][cellY]
}

// Clear empties every cell
func (w *World) Clear() {
	for x := range w.Cells {
		for _, cell := range w.Cells[x] {
			cell.Clear()
		}
	}
}

// Rebuild replaces the grid contents with the live enemies
func (w *World) Rebuild(enemies []*Enemy) {
	w.Clear()
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		cellX, cellY := w.WorldToCell(e.Pos.X, e.Pos.Y)
		w.Cells[cellX][cellY].Add(e)
	}
}

// cellRange returns the inclusive cell rectangle touched by a circle
func (w *World) cellRange(x, y, radius float64) (minX, minY, maxX, maxY int) {
	minX, minY = w.WorldToCell(x-radius, y-radius)
	maxX, maxY = w.WorldToCell(x+radius, y+radius)
	return
}

// Overlapping returns the live enemies whose circle intersects body.
// Enemies are stored by center only, so the search covers every cell the
// body's bounding box touches grown by one cell.
func (w *World) Overlapping(body *Body) []*Enemy {
	minX, minY, maxX, maxY := w.cellRange(body.Pos.X, body.Pos.Y, body.Radius+w.CellSize)

	var hits []*Enemy
	for cellX := minX; cellX <= maxX; cellX++ {
		for cellY := minY; cellY <= maxY; cellY++ {
			cell := w.Cells[cellX][cellY]
			for i := 0; i < cell.Count; i++ {
				e := cell.Enemies[i]
				if e.Alive && body.Overlaps(&e.Body) {
					hits = append(hits, e)
				}
			}
		}
	}
	return hits
}

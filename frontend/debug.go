package frontend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavesurvivor/game"
)

var (
	gridLineColor     = color.NRGBA{80, 200, 120, 90}
	occupiedCellColor = color.NRGBA{80, 200, 120, 40}
)

// DebugState holds debug flags that persist across restarts
type DebugState struct {
	ShowGrid bool // Show cell grid lines, occupancy and frame stats
}

// Toggle flips the grid overlay
func (d *DebugState) Toggle() {
	d.ShowGrid = !d.ShowGrid
}

// drawGrid draws the collision grid, shading cells that hold enemies
func drawGrid(dst *ebiten.Image, origin game.Vec2, w *game.World) {
	if w == nil {
		return
	}
	size := float32(w.CellSize)
	ox, oy := float32(origin.X), float32(origin.Y)

	for x := 0; x < w.CellCountX; x++ {
		for y := 0; y < w.CellCountY; y++ {
			cell := w.GetCell(x, y)
			if cell == nil || cell.Count == 0 {
				continue
			}
			cx := ox + float32(x)*size
			cy := oy + float32(y)*size
			vector.DrawFilledRect(dst, cx, cy, size, size, occupiedCellColor, false)
			ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%d", cell.Count), int(cx)+3, int(cy)+2)
		}
	}

	width := float32(w.CellCountX) * size
	height := float32(w.CellCountY) * size
	for x := 0; x <= w.CellCountX; x++ {
		lx := ox + float32(x)*size
		vector.StrokeLine(dst, lx, oy, lx, oy+height, 1, gridLineColor, false)
	}
	for y := 0; y <= w.CellCountY; y++ {
		ly := oy + float32(y)*size
		vector.StrokeLine(dst, ox, ly, ox+width, ly, 1, gridLineColor, false)
	}
}

// debugStats formats the frame stats line
func debugStats(fps float64, s game.Snapshot) string {
	return fmt.Sprintf("FPS: %.0f  enemies: %d  projectiles: %d  clock: %s  phase: %s",
		fps, len(s.Enemies), len(s.Projectiles), s.Clock, s.Phase)
}

package frontend

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavesurvivor/game"
)

const (
	// Distance kept between a marker and the field edge
	indicatorInset = 12.0
	// Enemies farther than this outside the field are drawn fully faded
	indicatorFadeDistance = 200.0
)

var indicatorColor = color.NRGBA{255, 110, 110, 220}

// edgeMarker places a marker for an enemy outside the field. The marker sits
// where the line from the field center to the enemy crosses the inset edge.
// ok is false for enemies inside the field.
func edgeMarker(f game.PlayField, enemy game.Vec2) (pos game.Vec2, opacity float64, ok bool) {
	if f.Contains(enemy, 0) {
		return game.Vec2{}, 0, false
	}

	c := f.Center()
	d := enemy.Sub(c)
	halfW := f.Width/2 - indicatorInset
	halfH := f.Height/2 - indicatorInset

	// Scale the direction so it lands on the inset rectangle
	t := math.Inf(1)
	if d.X != 0 {
		t = math.Min(t, halfW/math.Abs(d.X))
	}
	if d.Y != 0 {
		t = math.Min(t, halfH/math.Abs(d.Y))
	}
	pos = c.Add(d.Scale(t))

	outside := math.Max(math.Max(-enemy.X, enemy.X-f.Width), math.Max(-enemy.Y, enemy.Y-f.Height))
	opacity = clampUnit(1 - outside/indicatorFadeDistance)
	return pos, math.Max(opacity, 0.25), true
}

// drawIndicators marks every enemy approaching from outside the field
func drawIndicators(dst *ebiten.Image, origin game.Vec2, f game.PlayField, enemies []*game.Enemy) {
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		pos, opacity, ok := edgeMarker(f, e.Pos)
		if !ok {
			continue
		}
		c := indicatorColor
		c.A = uint8(float64(c.A) * opacity)
		vector.DrawFilledCircle(dst, float32(origin.X+pos.X), float32(origin.Y+pos.Y), 5, c, true)
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

package frontend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"wavesurvivor/game"
)

// Base font height of basicfont.Face7x13 in pixels
const baseFontSize = 13.0

// Rect is an axis-aligned rectangle in field coordinates
type Rect struct {
	Min, Max game.Vec2
}

// Contains reports whether p lies inside r. An empty Rect contains nothing.
func (r Rect) Contains(p game.Vec2) bool {
	return !r.Empty() && p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// labelStyle places one text label on the field
type labelStyle struct {
	Pos     game.Vec2
	Size    float64
	Align   text.Align
	VAlign  text.Align
	Color   color.RGBA
	Outline float64
}

var (
	white = color.RGBA{255, 255, 255, 255}
	gold  = color.RGBA{255, 215, 0, 255}
)

// hudLayout returns where every label goes on field. Vertical fields put the
// HUD on one row across the top; landscape fields stack it top left.
func hudLayout(f game.PlayField) map[game.TextID]labelStyle {
	var fontSize float64
	if f.Vertical {
		fontSize = f.Scaled(20)
	} else {
		fontSize = f.Scaled(24)
	}
	pad := f.Scaled(10)

	l := make(map[game.TextID]labelStyle, 6)
	if f.Vertical {
		l[game.TextHealth] = labelStyle{Pos: game.Vec2{X: pad, Y: pad}, Size: fontSize, Align: text.AlignStart, VAlign: text.AlignStart, Color: white, Outline: 2}
		l[game.TextScore] = labelStyle{Pos: game.Vec2{X: f.Width / 2, Y: pad}, Size: fontSize, Align: text.AlignCenter, VAlign: text.AlignStart, Color: white, Outline: 2}
		l[game.TextWave] = labelStyle{Pos: game.Vec2{X: f.Width - pad, Y: pad}, Size: fontSize, Align: text.AlignEnd, VAlign: text.AlignStart, Color: white, Outline: 2}
	} else {
		for i, id := range []game.TextID{game.TextScore, game.TextHealth, game.TextWave} {
			y := pad + float64(i)*(fontSize+5)
			l[id] = labelStyle{Pos: game.Vec2{X: pad, Y: y}, Size: fontSize, Align: text.AlignStart, VAlign: text.AlignStart, Color: white, Outline: 2}
		}
	}

	pauseSize := f.Scaled(48)
	if f.Vertical {
		pauseSize = f.Scaled(36)
	}
	l[game.TextPause] = labelStyle{Pos: f.Center(), Size: pauseSize, Align: text.AlignCenter, VAlign: text.AlignCenter, Color: white, Outline: 4}

	center := f.Center()
	l[game.TextGameOver] = labelStyle{
		Pos:  game.Vec2{X: center.X, Y: center.Y - f.Scaled(50)},
		Size: f.Scaled(32), Align: text.AlignCenter, VAlign: text.AlignCenter, Color: white, Outline: 3,
	}
	l[game.TextRestart] = labelStyle{
		Pos:  game.Vec2{X: center.X, Y: center.Y + f.Scaled(80)},
		Size: f.Scaled(28), Align: text.AlignCenter, VAlign: text.AlignCenter, Color: gold, Outline: 2,
	}
	return l
}

// labelBounds returns the rectangle covered by s rendered in style
func labelBounds(face text.Face, s string, style labelStyle) Rect {
	w, h := text.Measure(s, face, baseFontSize+2)
	scale := style.Size / baseFontSize
	w *= scale
	h *= scale

	var minX, minY float64
	switch style.Align {
	case text.AlignCenter:
		minX = style.Pos.X - w/2
	case text.AlignEnd:
		minX = style.Pos.X - w
	default:
		minX = style.Pos.X
	}
	switch style.VAlign {
	case text.AlignCenter:
		minY = style.Pos.Y - h/2
	case text.AlignEnd:
		minY = style.Pos.Y - h
	default:
		minY = style.Pos.Y
	}
	return Rect{Min: game.Vec2{X: minX, Y: minY}, Max: game.Vec2{X: minX + w, Y: minY + h}}
}

// pauseButtonRect is the touch pause button, below the HUD on the right edge
func pauseButtonRect(f game.PlayField) Rect {
	side := max(f.Scaled(64), 36)
	pad := f.Scaled(10)
	top := pad + f.Scaled(24) + 10
	return Rect{
		Min: game.Vec2{X: f.Width - pad - side, Y: top},
		Max: game.Vec2{X: f.Width - pad, Y: top + side},
	}
}

// fieldOrigin centers the play field in the window
func fieldOrigin(f game.PlayField, screenW, screenH int) game.Vec2 {
	return game.Vec2{
		X: max(0, (float64(screenW)-f.Width)/2),
		Y: max(0, (float64(screenH)-f.Height)/2),
	}
}

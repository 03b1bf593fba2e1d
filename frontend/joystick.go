package frontend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavesurvivor/game"
)

var (
	stickBaseColor = color.NRGBA{255, 255, 255, 60}
	stickRimColor  = color.NRGBA{255, 255, 255, 140}
	stickKnobColor = color.NRGBA{255, 255, 255, 170}
	buttonColor    = color.NRGBA{0, 0, 0, 120}
)

// drawJoystick draws the base ring and the knob of an active stick
func drawJoystick(dst *ebiten.Image, origin game.Vec2, j game.Joystick) {
	if !j.Active {
		return
	}
	cx := float32(origin.X + j.Center.X)
	cy := float32(origin.Y + j.Center.Y)
	r := float32(j.Radius)

	vector.DrawFilledCircle(dst, cx, cy, r, stickBaseColor, true)
	vector.StrokeCircle(dst, cx, cy, r, 2, stickRimColor, true)
	vector.DrawFilledCircle(dst, cx+float32(j.Knob.X), cy+float32(j.Knob.Y), r*0.45, stickKnobColor, true)
}

// drawPauseButton draws the touch pause button as two bars
func drawPauseButton(dst *ebiten.Image, origin game.Vec2, r Rect) {
	if r.Empty() {
		return
	}
	x := float32(origin.X + r.Min.X)
	y := float32(origin.Y + r.Min.Y)
	w := float32(r.Max.X - r.Min.X)
	h := float32(r.Max.Y - r.Min.Y)

	vector.DrawFilledRect(dst, x, y, w, h, buttonColor, false)
	vector.StrokeRect(dst, x, y, w, h, 2, stickRimColor, false)
	bar := w / 6
	vector.DrawFilledRect(dst, x+w/2-bar*1.5, y+h/4, bar, h/2, stickKnobColor, false)
	vector.DrawFilledRect(dst, x+w/2+bar*0.5, y+h/4, bar, h/2, stickKnobColor, false)
}

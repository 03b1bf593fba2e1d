package frontend

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavesurvivor/game"
)

const (
	starCount = 120
	// Constant drift in pixels per second, on top of the parallax
	starDrift = 12.0
	// How strongly stars move against the player's velocity
	starParallax = 0.15
)

type star struct {
	pos   game.Vec2
	speed float64 // parallax multiplier per star
	size  float64
	shade uint8
}

// Backdrop is a parallax starfield that wraps around the play field
type Backdrop struct {
	stars  []star
	width  float64
	height float64
}

// NewBackdrop scatters stars over f
func NewBackdrop(rng *rand.Rand, f game.PlayField) *Backdrop {
	b := &Backdrop{stars: make([]star, starCount), width: f.Width, height: f.Height}
	for i := range b.stars {
		b.stars[i] = star{
			pos:   game.Vec2{X: rng.Float64() * f.Width, Y: rng.Float64() * f.Height},
			speed: 0.3 + rng.Float64()*0.7,
			size:  1 + rng.Float64()*1.5,
			shade: uint8(90 + rng.Intn(140)),
		}
	}
	return b
}

// Update drifts the stars opposite to the player's velocity. Stars leaving
// the field re-enter on the opposite edge.
func (b *Backdrop) Update(dt float64, playerVel game.Vec2, f game.PlayField) {
	if f.Width != b.width || f.Height != b.height {
		b.rescale(f)
	}

	// Drift follows the long axis so it reads as forward motion
	drift := game.Vec2{X: -starDrift}
	if f.Vertical {
		drift = game.Vec2{Y: starDrift}
	}

	for i := range b.stars {
		s := &b.stars[i]
		s.pos.X += (drift.X - playerVel.X*starParallax) * dt * s.speed
		s.pos.Y += (drift.Y - playerVel.Y*starParallax) * dt * s.speed
		s.pos.X = wrap(s.pos.X, b.width)
		s.pos.Y = wrap(s.pos.Y, b.height)
	}
}

// rescale keeps every star at the same relative position after a resize
func (b *Backdrop) rescale(f game.PlayField) {
	sx := f.Width / b.width
	sy := f.Height / b.height
	for i := range b.stars {
		b.stars[i].pos.X *= sx
		b.stars[i].pos.Y *= sy
	}
	b.width, b.height = f.Width, f.Height
}

// Draw renders the stars offset by origin
func (b *Backdrop) Draw(dst *ebiten.Image, origin game.Vec2) {
	for _, s := range b.stars {
		clr := color.RGBA{s.shade, s.shade, s.shade, 255}
		vector.DrawFilledRect(dst,
			float32(origin.X+s.pos.X), float32(origin.Y+s.pos.Y),
			float32(s.size), float32(s.size), clr, false)
	}
}

// wrap folds v into [0, span)
func wrap(v, span float64) float64 {
	if span <= 0 {
		return 0
	}
	for v < 0 {
		v += span
	}
	for v >= span {
		v -= span
	}
	return v
}

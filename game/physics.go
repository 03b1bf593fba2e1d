package game

import (
	"math"
	"time"
)

// MoveToward sets b's velocity to point at target with magnitude speed.
// A body already on the target gets zero velocity.
func MoveToward(b *Body, target Vec2, speed float64) {
	dir := target.Sub(b.Pos)
	if dir.Len() == 0 {
		b.Vel = Vec2{}
		return
	}
	b.Vel = dir.Normalize().Scale(speed)
}

// Steer moves b toward target and stops it inside arriveRadius
func Steer(b *Body, target Vec2, speed, arriveRadius float64) {
	if b.Pos.DistanceTo(target) <= arriveRadius {
		b.Vel = Vec2{}
		return
	}
	MoveToward(b, target, speed)
}

// SetVelocity replaces b's velocity
func SetVelocity(b *Body, vx, vy float64) {
	b.Vel = Vec2{X: vx, Y: vy}
}

// Integrate advances b by its velocity over dt
func Integrate(b *Body, dt time.Duration) {
	s := dt.Seconds()
	b.Pos.X += b.Vel.X * s
	b.Pos.Y += b.Vel.Y * s
}

// ClampToField keeps b's center inside the field; velocity into a wall is dropped
func ClampToField(b *Body, field PlayField) {
	if b.Pos.X < 0 || b.Pos.X > field.Width {
		b.Pos.X = math.Max(0, math.Min(b.Pos.X, field.Width))
		b.Vel.X = 0
	}
	if b.Pos.Y < 0 || b.Pos.Y > field.Height {
		b.Pos.Y = math.Max(0, math.Min(b.Pos.Y, field.Height))
		b.Vel.Y = 0
	}
}

// Heading returns the rotation of a velocity; 0 points right (east)
func Heading(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// unitFromAngle returns the unit vector for a rotation
func unitFromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

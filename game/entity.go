package game

import (
	"math"
	"sync/atomic"
	"time"
)

// EntityID is a unique identifier for any entity in the game.
// IDs survive pooling so the renderer can keep per-sprite state.
type EntityID uint64

// InvalidEntityID represents an unset entity reference
const InvalidEntityID EntityID = 0

var nextEntityID uint64

// generateEntityID creates a new unique entity ID
func generateEntityID() EntityID {
	return EntityID(atomic.AddUint64(&nextEntityID, 1))
}

// Vec2 is a 2D vector in field pixels
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Body is the kinematic part shared by every entity
type Body struct {
	ID     EntityID
	Pos    Vec2
	Vel    Vec2
	Radius float64
}

// Overlaps reports whether two circular bodies intersect
func (b *Body) Overlaps(o *Body) bool {
	return b.Pos.DistanceTo(o.Pos) < b.Radius+o.Radius
}

// Player is the session's single avatar. It is never removed; losing all
// health moves the session to game over instead.
type Player struct {
	Body
	Health          int
	MaxHealth       int
	Invulnerable    bool
	InvulnerableFor time.Duration
	Tint            Tint
}

// NewPlayer creates a player with full health at pos
func NewPlayer(pos Vec2, maxHealth int, radius float64) *Player {
	return &Player{
		Body:      Body{ID: generateEntityID(), Pos: pos, Radius: radius},
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}
}

// Enemy homes toward the player at the session's shared speed.
// One hit from either side destroys it.
type Enemy struct {
	Body
	Alive bool
}

// NewEnemy creates a live enemy at pos
func NewEnemy(pos Vec2, radius float64) *Enemy {
	return &Enemy{
		Body:  Body{ID: generateEntityID(), Pos: pos, Radius: radius},
		Alive: true,
	}
}

// Projectile is a pooled shot. Inactive projectiles are kept for reuse.
type Projectile struct {
	Body
	Active   bool
	Lifespan time.Duration
	Speed    float64
	Rotation float64
}

// Reset clears all flight state for reuse in pooling
func (p *Projectile) Reset() {
	p.Pos = Vec2{}
	p.Vel = Vec2{}
	p.Active = false
	p.Lifespan = 0
	p.Speed = 0
	p.Rotation = 0
}

package frontend

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavesurvivor/game"
)

const maxParticles = 512

// Particle represents a single particle in a burst
type Particle struct {
	pos      game.Vec2
	vel      game.Vec2
	age      float64 // age in seconds
	lifetime float64 // total lifetime in seconds
	color    color.NRGBA
	size     float64
}

// IsAlive returns true if the particle is still alive
func (p *Particle) IsAlive() bool {
	return p.age < p.lifetime
}

// BurstStyle describes one kind of burst
type BurstStyle struct {
	Count       int
	SpeedMin    float64
	SpeedMax    float64
	LifetimeMin float64
	LifetimeMax float64
	SizeMin     float64
	SizeMax     float64
	Color       color.NRGBA
}

var (
	// Enemy destroyed
	KillBurst = BurstStyle{Count: 14, SpeedMin: 60, SpeedMax: 220, LifetimeMin: 0.25, LifetimeMax: 0.6, SizeMin: 2, SizeMax: 4, Color: color.NRGBA{255, 170, 80, 255}}
	// Player damaged
	HitBurst = BurstStyle{Count: 20, SpeedMin: 80, SpeedMax: 260, LifetimeMin: 0.3, LifetimeMax: 0.7, SizeMin: 2, SizeMax: 5, Color: color.NRGBA{255, 80, 80, 255}}
)

// ParticleSystem holds short-lived hit and kill bursts. It is purely visual
// and never feeds back into the game.
type ParticleSystem struct {
	rng       *rand.Rand
	particles []Particle
}

// NewParticleSystem creates an empty system
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{rng: rng, particles: make([]Particle, 0, 64)}
}

// Burst emits style.Count particles in every direction from pos
func (ps *ParticleSystem) Burst(pos game.Vec2, style BurstStyle) {
	for i := 0; i < style.Count && len(ps.particles) < maxParticles; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := between(ps.rng, style.SpeedMin, style.SpeedMax)
		ps.particles = append(ps.particles, Particle{
			pos:      pos,
			vel:      game.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			lifetime: between(ps.rng, style.LifetimeMin, style.LifetimeMax),
			color:    style.Color,
			size:     between(ps.rng, style.SizeMin, style.SizeMax),
		})
	}
}

// Update ages and moves every particle, dropping the expired ones
func (ps *ParticleSystem) Update(dt float64) {
	live := ps.particles[:0]
	for _, p := range ps.particles {
		p.age += dt
		p.pos.X += p.vel.X * dt
		p.pos.Y += p.vel.Y * dt
		if p.IsAlive() {
			live = append(live, p)
		}
	}
	ps.particles = live
}

// Count returns the number of live particles
func (ps *ParticleSystem) Count() int {
	return len(ps.particles)
}

// Clear drops every particle
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// Draw renders particles offset by origin, fading them out with age
func (ps *ParticleSystem) Draw(dst *ebiten.Image, origin game.Vec2) {
	for _, p := range ps.particles {
		c := p.color
		c.A = uint8(float64(c.A) * (1 - p.age/p.lifetime))
		vector.DrawFilledCircle(dst, float32(origin.X+p.pos.X), float32(origin.Y+p.pos.Y), float32(p.size), c, true)
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

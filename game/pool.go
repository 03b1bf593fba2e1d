package game

import "time"

// Base projectile tuning at reference resolution
const (
	projectileSpeedVertical   = 600.0
	projectileSpeedLandscape  = 500.0
	projectileMarginVertical  = 30.0
	projectileMarginLandscape = 50.0
)

// ProjectilePool hands out reusable projectiles. Projectiles are created
// lazily up to the pool capacity and are never deallocated.
type ProjectilePool struct {
	projectiles []*Projectile
	capacity    int
	radius      float64

	// Optional overrides from ProjectileConfig; zero means the built-in base
	speedVertical     float64
	speedLandscape    float64
	lifespanVertical  time.Duration
	lifespanLandscape time.Duration
}

// NewProjectilePool creates an empty pool that grows to at most capacity projectiles
func NewProjectilePool(capacity int) *ProjectilePool {
	if capacity < 1 {
		capacity = 1
	}
	return &ProjectilePool{
		projectiles:       make([]*Projectile, 0, capacity),
		capacity:          capacity,
		radius:            DefaultConfig().Combat.ProjectileRadius,
		lifespanVertical:  2500 * time.Millisecond,
		lifespanLandscape: 3000 * time.Millisecond,
	}
}

// newProjectilePoolFromConfig applies projectile tuning from cfg
func newProjectilePoolFromConfig(cfg Config) *ProjectilePool {
	p := NewProjectilePool(cfg.Projectiles.PoolSize)
	p.radius = cfg.Combat.ProjectileRadius
	p.speedVertical = cfg.Projectiles.SpeedVertical
	p.speedLandscape = cfg.Projectiles.SpeedLandscape
	p.lifespanVertical = cfg.Projectiles.LifespanVertical
	p.lifespanLandscape = cfg.Projectiles.LifespanLandscape
	return p
}

// Capacity returns the maximum number of projectiles the pool will create
func (p *ProjectilePool) Capacity() int {
	return p.capacity
}

// Acquire returns an inactive projectile, or nil when every projectile is in flight
func (p *ProjectilePool) Acquire() *Projectile {
	for _, pr := range p.projectiles {
		if !pr.Active {
			return pr
		}
	}
	if len(p.projectiles) >= p.capacity {
		return nil
	}
	pr := &Projectile{Body: Body{ID: generateEntityID(), Radius: p.radius}}
	p.projectiles = append(p.projectiles, pr)
	return pr
}

// Fire launches pr from one point toward another. Every flight field is
// overwritten so a reused projectile carries nothing from its last shot.
func (p *ProjectilePool) Fire(pr *Projectile, from, to Vec2, field PlayField) {
	pr.Reset()

	heading := Heading(to.Sub(from))
	pr.Speed = p.SpeedFor(field)
	if field.Vertical {
		pr.Lifespan = p.lifespanVertical
	} else {
		pr.Lifespan = p.lifespanLandscape
	}

	pr.Pos = from
	pr.Radius = field.AssetScaled(p.radius)
	pr.Rotation = heading
	pr.Vel = unitFromAngle(heading).Scale(pr.Speed)
	pr.Active = true
}

// SpeedFor returns the muzzle speed of a projectile fired on field
func (p *ProjectilePool) SpeedFor(field PlayField) float64 {
	return field.Scaled(field.byOrientation(
		orDefault(p.speedVertical, projectileSpeedVertical),
		orDefault(p.speedLandscape, projectileSpeedLandscape),
	))
}

// Tick advances one projectile and deactivates it on expiry or when it has
// left the field by more than the margin
func (p *ProjectilePool) Tick(pr *Projectile, dt time.Duration, field PlayField) {
	if !pr.Active {
		return
	}
	Integrate(&pr.Body, dt)
	pr.Lifespan -= dt

	margin := field.Scaled(field.byOrientation(projectileMarginVertical, projectileMarginLandscape))
	if pr.Lifespan <= 0 || !field.Contains(pr.Pos, margin) {
		p.Release(pr)
	}
}

// Release returns pr to the pool
func (p *ProjectilePool) Release(pr *Projectile) {
	pr.Active = false
	pr.Vel = Vec2{}
}

// Update ticks every active projectile
func (p *ProjectilePool) Update(dt time.Duration, field PlayField) {
	for _, pr := range p.projectiles {
		p.Tick(pr, dt, field)
	}
}

// Active returns the projectiles currently in flight
func (p *ProjectilePool) Active() []*Projectile {
	active := make([]*Projectile, 0, len(p.projectiles))
	for _, pr := range p.projectiles {
		if pr.Active {
			active = append(active, pr)
		}
	}
	return active
}

// ActiveCount returns how many projectiles are in flight
func (p *ProjectilePool) ActiveCount() int {
	n := 0
	for _, pr := range p.projectiles {
		if pr.Active {
			n++
		}
	}
	return n
}

// Reset deactivates every projectile, keeping them allocated
func (p *ProjectilePool) Reset() {
	for _, pr := range p.projectiles {
		pr.Reset()
	}
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

package game

// CollisionHandler reacts to overlaps found by the collision system
type CollisionHandler interface {
	ProjectileHitEnemy(p *Projectile, e *Enemy)
	EnemyHitPlayer(e *Enemy)
}

// CollisionSystem handles collision detection using spatial partitioning
type CollisionSystem struct {
	world *World
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(world *World) *CollisionSystem {
	return &CollisionSystem{
		world: world,
	}
}

// World returns the grid the system queries
func (c *CollisionSystem) World() *World {
	return c.world
}

// SetWorld swaps the grid, used after the play field is resized
func (c *CollisionSystem) SetWorld(world *World) {
	c.world = world
}

// CheckCollisions rebuilds the grid from enemies and reports every
// projectile↔enemy and player↔enemy overlap to h. Handlers may destroy
// enemies or release projectiles; later pairs skip anything already gone.
func (c *CollisionSystem) CheckCollisions(player *Player, enemies []*Enemy, projectiles []*Projectile, h CollisionHandler) {
	c.world.Rebuild(enemies)

	for _, p := range projectiles {
		if !p.Active {
			continue
		}
		for _, e := range c.world.Overlapping(&p.Body) {
			if !p.Active {
				break
			}
			if !e.Alive {
				continue
			}
			h.ProjectileHitEnemy(p, e)
		}
	}

	if player == nil {
		return
	}
	for _, e := range c.world.Overlapping(&player.Body) {
		if !e.Alive {
			continue
		}
		h.EnemyHitPlayer(e)
	}
}

package game

import "time"

// EntityState is a read-only copy of an entity's kinematics
type EntityState struct {
	ID     EntityID `json:"id"`
	Pos    Vec2     `json:"pos"`
	Vel    Vec2     `json:"vel"`
	Radius float64  `json:"radius"`
}

func stateOf(b *Body) EntityState {
	return EntityState{ID: b.ID, Pos: b.Pos, Vel: b.Vel, Radius: b.Radius}
}

// Snapshot is a read-only view of the game for bots, HUDs and the simulator
type Snapshot struct {
	Clock          time.Duration `json:"clock"`
	Phase          Phase         `json:"phase"`
	Score          int           `json:"score"`
	Wave           int           `json:"wave"`
	WavesCompleted int           `json:"waves_completed"`
	EnemiesPerWave int           `json:"enemies_per_wave"`
	EnemySpeed     float64       `json:"enemy_speed"`
	Defeated       int           `json:"defeated"`
	Health         int           `json:"health"`
	MaxHealth      int           `json:"max_health"`
	Invulnerable   bool          `json:"invulnerable"`
	Player         EntityState   `json:"player"`
	Enemies        []EntityState `json:"enemies"`
	Projectiles    []EntityState `json:"projectiles"`
	Field          PlayField     `json:"-"`
}

// Snapshot copies the current state
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Clock:          g.scheduler.Now(),
		Phase:          g.session.Phase,
		Score:          g.session.Score,
		Wave:           g.session.Wave,
		WavesCompleted: g.session.WavesCompleted(),
		EnemiesPerWave: g.session.EnemiesPerWave,
		EnemySpeed:     g.session.EnemySpeed,
		Defeated:       g.session.Defeated,
		Health:         g.player.Health,
		MaxHealth:      g.player.MaxHealth,
		Invulnerable:   g.player.Invulnerable,
		Player:         stateOf(&g.player.Body),
		Enemies:        g.enemyStates(),
		Field:          g.field,
	}
	for _, pr := range g.pool.Active() {
		s.Projectiles = append(s.Projectiles, stateOf(&pr.Body))
	}
	return s
}

func (g *Game) enemyStates() []EntityState {
	states := make([]EntityState, 0, len(g.enemies))
	for _, e := range g.enemies {
		if e.Alive {
			states = append(states, stateOf(&e.Body))
		}
	}
	return states
}

package game

import (
	"math"
	"time"
)

// HitOutcome is what a player↔enemy contact did
type HitOutcome int

const (
	// HitIgnored means nothing changed: not running, invulnerable, or the enemy was already gone
	HitIgnored HitOutcome = iota
	HitDamaged
	HitFatal
)

func (o HitOutcome) String() string {
	switch o {
	case HitDamaged:
		return "damaged"
	case HitFatal:
		return "fatal"
	default:
		return "ignored"
	}
}

// CombatResolver applies collision outcomes to the session. Every reaction
// checks the current state first, so a pair reported twice in one step
// only counts once.
type CombatResolver struct {
	session *Session
	player  *Player
	pool    *ProjectilePool
	timers  Timers
	cfg     CombatConfig

	// onFatal is called once when the player's health reaches zero
	onFatal func(e *Enemy)
}

// NewCombatResolver wires a resolver to the session it mutates
func NewCombatResolver(session *Session, player *Player, pool *ProjectilePool, timers Timers, cfg CombatConfig, onFatal func(e *Enemy)) *CombatResolver {
	return &CombatResolver{
		session: session,
		player:  player,
		pool:    pool,
		timers:  timers,
		cfg:     cfg,
		onFatal: onFatal,
	}
}

// HitEnemy handles a projectile striking an enemy. It returns false when
// the projectile was already spent or the enemy already destroyed.
func (r *CombatResolver) HitEnemy(p *Projectile, e *Enemy) bool {
	if !p.Active || !e.Alive {
		return false
	}
	r.pool.Release(p)
	e.Alive = false
	e.Vel = Vec2{}
	r.session.Score += r.cfg.ScorePerKill
	r.session.Defeated++
	return true
}

// HitPlayer handles an enemy touching the player
func (r *CombatResolver) HitPlayer(e *Enemy) HitOutcome {
	if r.session.Phase != PhaseRunning || r.player.Invulnerable || !e.Alive {
		return HitIgnored
	}

	r.player.Health--
	r.player.Invulnerable = true
	r.player.InvulnerableFor = r.cfg.Invulnerability

	r.player.Tint = r.cfg.HitTint
	r.timers.DelayedCall(r.cfg.HitFlash, func() {
		if r.player.Tint == r.cfg.HitTint {
			r.player.Tint = NoTint
		}
	})

	if r.player.Health <= 0 {
		r.player.Health = 0
		// The enemy stays where it is; the frozen game-over scene shows it
		if r.onFatal != nil {
			r.onFatal(e)
		}
		return HitFatal
	}

	e.Alive = false
	e.Vel = Vec2{}
	return HitDamaged
}

// ProjectileHitEnemy implements CollisionHandler
func (r *CombatResolver) ProjectileHitEnemy(p *Projectile, e *Enemy) {
	r.HitEnemy(p, e)
}

// EnemyHitPlayer implements CollisionHandler
func (r *CombatResolver) EnemyHitPlayer(e *Enemy) {
	r.HitPlayer(e)
}

// Tick decays the invulnerability window. Only the running step calls it,
// so the window is frozen while paused.
func (r *CombatResolver) Tick(dt time.Duration) {
	if !r.player.Invulnerable {
		return
	}
	r.player.InvulnerableFor -= dt
	if r.player.InvulnerableFor <= 0 {
		r.player.InvulnerableFor = 0
		r.player.Invulnerable = false
	}
}

// BlinkAlpha is the player's opacity at a game time
func (r *CombatResolver) BlinkAlpha(now time.Duration) float64 {
	if !r.player.Invulnerable {
		return 1
	}
	ms := float64(now) / float64(time.Millisecond)
	return math.Sin(ms*0.01)*0.5 + 0.5
}

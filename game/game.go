package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Sprite geometry relative to the source artwork
const (
	playerSpriteScale     = 1.0
	enemySpriteScale      = 0.15
	projectileSpriteScale = 0.3
)

// Options configures a Game. Zero values pick headless defaults.
type Options struct {
	Config Config
	Logger zerolog.Logger
	Audio  Audio
	Input  InputAdapter
	Rand   *rand.Rand
	Touch  bool
}

// Game is the frame driver. It owns the session and every entity, and is
// not safe for concurrent use.
type Game struct {
	cfg    Config
	logger zerolog.Logger

	field     PlayField
	session   Session
	player    *Player
	enemies   []*Enemy
	pool      *ProjectilePool
	spawner   *SpawnDirector
	combat    *CombatResolver
	collision *CollisionSystem
	scheduler *Scheduler
	audio     Audio
	input     InputAdapter

	// Game time at which the next shot may be fired
	nextFireAt time.Duration
}

// NewGame creates a session for a window of the given size and spawns wave 1.
// Unset config fields take their defaults; a config that still fails
// Validate is logged and replaced by DefaultConfig.
func NewGame(windowWidth, windowHeight float64, opts Options) *Game {
	cfg := opts.Config.withDefaults()
	if err := cfg.Validate(); err != nil {
		opts.Logger.Error().Err(err).Msg("falling back to the default config")
		cfg = DefaultConfig()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	audio := opts.Audio
	if audio == nil {
		audio = NopAudio{}
	}
	input := opts.Input
	if input == nil {
		input = SelectInput(cfg.Input, opts.Touch)
	}

	field := Recompute(windowWidth, windowHeight, opts.Touch)
	g := &Game{
		cfg:       cfg,
		logger:    opts.Logger,
		field:     field,
		session:   NewSession(cfg.Waves),
		pool:      newProjectilePoolFromConfig(cfg),
		spawner:   NewSpawnDirector(rng, cfg.Waves, cfg.Combat.EnemyRadius, opts.Logger),
		collision: NewCollisionSystem(NewWorld(field, cfg.CellSize)),
		scheduler: NewScheduler(),
		audio:     audio,
		input:     input,
	}
	g.player = NewPlayer(field.Center(), cfg.Player.MaxHealth, field.AssetScaled(cfg.Player.Radius))
	g.combat = NewCombatResolver(&g.session, g.player, g.pool, g.scheduler, cfg.Combat, g.endGame)

	g.logger.Info().
		Str("policy", field.Policy.String()).
		Float64("width", field.Width).
		Float64("height", field.Height).
		Msg("session started")

	g.spawnWave()
	g.audio.PlayLoop(cfg.MusicTrack)
	return g
}

// Update advances the game by dt. Pause and restart requests are honoured
// in every phase; the simulation itself only steps while running.
func (g *Game) Update(dt time.Duration) {
	intent := g.input.Sample(g.sampleContext())

	if intent.TogglePause {
		g.TogglePause()
	}
	if intent.Restart {
		g.Restart()
	}
	if g.session.Phase != PhaseRunning {
		return
	}
	g.step(dt, intent)
}

func (g *Game) sampleContext() SampleContext {
	return SampleContext{
		Field:           g.field,
		Player:          g.player.Pos,
		PlayerSpeed:     g.cfg.Player.Speed,
		Clock:           g.scheduler.Now(),
		ProjectileSpeed: g.pool.SpeedFor(g.field),
		Enemies:         g.enemyStates(),
	}
}

// step runs one running frame
func (g *Game) step(dt time.Duration, intent Intent) {
	g.scheduler.Advance(dt)
	g.combat.Tick(dt)

	g.movePlayer(intent.Move, dt)
	if intent.Fire {
		g.fire(intent)
	}

	// Homing is recomputed from the current player position every frame
	for _, e := range g.enemies {
		if !e.Alive {
			continue
		}
		MoveToward(&e.Body, g.player.Pos, g.session.EnemySpeed)
		Integrate(&e.Body, dt)
	}

	g.pool.Update(dt, g.field)
	g.collision.CheckCollisions(g.player, g.enemies, g.pool.Active(), g.combat)
	if g.session.Phase != PhaseRunning {
		return
	}

	g.removeDead()
	if len(g.enemies) == 0 {
		g.advanceWave()
	}
}

func (g *Game) movePlayer(m Movement, dt time.Duration) {
	b := &g.player.Body
	switch m.Kind {
	case MoveSteer:
		Steer(b, m.Target, g.cfg.Player.Speed, m.Arrive)
	case MoveDirect:
		SetVelocity(b, m.Velocity.X, m.Velocity.Y)
	default:
		SetVelocity(b, 0, 0)
	}
	Integrate(b, dt)
	ClampToField(b, g.field)
}

// fire launches one projectile if the cooldown has elapsed. The cooldown is
// only armed when a projectile actually left the pool.
func (g *Game) fire(intent Intent) {
	now := g.scheduler.Now()
	if now < g.nextFireAt {
		return
	}
	pr := g.pool.Acquire()
	if pr == nil {
		g.logger.Debug().Int("capacity", g.pool.Capacity()).Msg("projectile pool exhausted")
		return
	}
	g.pool.Fire(pr, g.player.Pos, intent.Aim, g.field)
	g.nextFireAt = now + intent.FireCooldown
}

func (g *Game) removeDead() {
	live := g.enemies[:0]
	for _, e := range g.enemies {
		if e.Alive {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = live
}

func (g *Game) advanceWave() {
	g.session.AdvanceWave(g.cfg.Waves)
	g.spawnWave()
}

func (g *Game) spawnWave() {
	res := g.spawner.SpawnWave(g.field, g.player.Pos, g.session.EnemiesPerWave)
	g.enemies = append(g.enemies, res.Enemies...)
	g.logger.Info().
		Int("wave", g.session.Wave).
		Int("spawned", len(res.Enemies)).
		Int("attempts", res.Attempts).
		Float64("enemy_speed", g.session.EnemySpeed).
		Msg("wave started")
}

// TogglePause switches between running and paused. It does nothing after game over.
func (g *Game) TogglePause() {
	switch g.session.Phase {
	case PhaseRunning:
		g.session.Phase = PhasePaused
		g.audio.Pause()
		g.logger.Info().Int("wave", g.session.Wave).Msg("paused")
	case PhasePaused:
		g.session.Phase = PhaseRunning
		g.audio.Resume()
		g.logger.Info().Int("wave", g.session.Wave).Msg("resumed")
	}
}

// endGame moves a running session to game over. Later calls are ignored.
func (g *Game) endGame(e *Enemy) {
	if g.session.Phase != PhaseRunning {
		return
	}
	g.session.Phase = PhaseGameOver
	g.audio.Stop()
	g.player.Tint = g.cfg.Combat.GameOverTint
	g.player.Vel = Vec2{}

	ev := g.logger.Info().
		Int("score", g.session.Score).
		Int("waves_completed", g.session.WavesCompleted()).
		Int("defeated", g.session.Defeated)
	if e != nil {
		ev = ev.Uint64("enemy", uint64(e.ID))
	}
	ev.Msg("game over")
}

// Restart resets everything to the wave 1 defaults. It only works from game over.
func (g *Game) Restart() {
	if g.session.Phase != PhaseGameOver {
		return
	}

	g.session = NewSession(g.cfg.Waves)
	*g.player = *NewPlayer(g.field.Center(), g.cfg.Player.MaxHealth, g.field.AssetScaled(g.cfg.Player.Radius))
	for i := range g.enemies {
		g.enemies[i] = nil
	}
	g.enemies = g.enemies[:0]
	g.pool.Reset()
	g.scheduler.Reset()
	g.nextFireAt = 0
	g.input.Reset()

	g.logger.Info().Msg("restarted")
	g.spawnWave()
	g.audio.PlayLoop(g.cfg.MusicTrack)
}

// Resize installs the play field for a new window size. Entity positions are
// left alone; the player is pulled back inside on the next step.
func (g *Game) Resize(windowWidth, windowHeight float64) {
	field := Recompute(windowWidth, windowHeight, g.field.Touch)
	if field == g.field {
		return
	}
	g.field = field
	g.collision.SetWorld(NewWorld(field, g.cfg.CellSize))
	g.player.Radius = field.AssetScaled(g.cfg.Player.Radius)
	for _, e := range g.enemies {
		e.Radius = field.AssetScaled(g.cfg.Combat.EnemyRadius)
	}
	g.logger.Debug().
		Str("policy", field.Policy.String()).
		Float64("width", field.Width).
		Float64("height", field.Height).
		Msg("play field resized")
}

// Present pushes this frame's sprites and texts to r
func (g *Game) Present(r Renderer) {
	f := g.field
	now := g.scheduler.Now()

	p := g.player
	r.PlaceSprite(SpriteID{Kind: SpritePlayer, Entity: p.ID},
		p.Pos.X, p.Pos.Y, 0, f.AssetScaled(playerSpriteScale), g.combat.BlinkAlpha(now), p.Tint)

	for _, e := range g.enemies {
		if !e.Alive {
			continue
		}
		r.PlaceSprite(SpriteID{Kind: SpriteEnemy, Entity: e.ID},
			e.Pos.X, e.Pos.Y, Heading(e.Vel), f.AssetScaled(enemySpriteScale), 1, NoTint)
	}
	for _, pr := range g.pool.Active() {
		r.PlaceSprite(SpriteID{Kind: SpriteProjectile, Entity: pr.ID},
			pr.Pos.X, pr.Pos.Y, pr.Rotation, f.AssetScaled(projectileSpriteScale), 1, NoTint)
	}

	r.SetText(TextScore, fmt.Sprintf("Score: %d", g.session.Score))
	r.SetText(TextHealth, fmt.Sprintf("Health: %d", p.Health))
	r.SetText(TextWave, fmt.Sprintf("Wave: %d", g.session.Wave))

	r.SetText(TextPause, "PAUSED\nPress ESC to resume")
	r.SetVisible(TextPause, g.session.Phase == PhasePaused)

	over := g.session.Phase == PhaseGameOver
	if over {
		r.SetText(TextGameOver, fmt.Sprintf("Game Over!\nFinal Score: %d\nWaves Completed: %d",
			g.session.Score, g.session.WavesCompleted()))
		r.SetText(TextRestart, "Restart Game")
	}
	r.SetVisible(TextGameOver, over)
	r.SetVisible(TextRestart, over)
}

// Phase returns the session phase
func (g *Game) Phase() Phase { return g.session.Phase }

// Session returns a copy of the scoring and difficulty state
func (g *Game) Session() Session { return g.session }

// Field returns the current play field
func (g *Game) Field() PlayField { return g.field }

// Player returns the avatar
func (g *Game) Player() *Player { return g.player }

// Enemies returns the enemies still in play
func (g *Game) Enemies() []*Enemy { return g.enemies }

// Pool returns the projectile pool
func (g *Game) Pool() *ProjectilePool { return g.pool }

// Combat returns the combat resolver
func (g *Game) Combat() *CombatResolver { return g.combat }

// Clock returns the game time, which stands still outside the running phase
func (g *Game) Clock() time.Duration { return g.scheduler.Now() }

// Input returns the active input adapter
func (g *Game) Input() InputAdapter { return g.input }

// CollisionWorld returns the spatial grid used for overlap queries
func (g *Game) CollisionWorld() *World { return g.collision.World() }

// Config returns the tuning the game was built with
func (g *Game) Config() Config { return g.cfg }

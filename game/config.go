package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the gameplay tuning values
type Config struct {
	Player      PlayerConfig     `yaml:"player"`
	Combat      CombatConfig     `yaml:"combat"`
	Waves       WaveConfig       `yaml:"waves"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Input       InputConfig      `yaml:"input"`

	// CellSize is the size of each spatial partition cell in pixels
	CellSize float64 `yaml:"cell_size"`

	// MusicTrack is handed to the Audio collaborator at session start
	MusicTrack string `yaml:"music_track"`
}

// PlayerConfig holds avatar tuning
type PlayerConfig struct {
	// Speed in pixels per second (not scaled by the viewport)
	Speed     float64 `yaml:"speed"`
	MaxHealth int     `yaml:"max_health"`
	// Radius is the unscaled collision radius
	Radius float64 `yaml:"radius"`
}

// CombatConfig holds collision outcome tuning
type CombatConfig struct {
	ScorePerKill     int           `yaml:"score_per_kill"`
	Invulnerability  time.Duration `yaml:"invulnerability"`
	HitFlash         time.Duration `yaml:"hit_flash"`
	HitTint          Tint          `yaml:"hit_tint"`
	GameOverTint     Tint          `yaml:"game_over_tint"`
	EnemyRadius      float64       `yaml:"enemy_radius"`
	ProjectileRadius float64       `yaml:"projectile_radius"`
}

// WaveConfig holds the spawn director and difficulty curve
type WaveConfig struct {
	InitialEnemies     int     `yaml:"initial_enemies"`
	MaxEnemies         int     `yaml:"max_enemies"`
	EnemiesIncrement   int     `yaml:"enemies_increment"`
	InitialEnemySpeed  float64 `yaml:"initial_enemy_speed"`
	EnemySpeedIncrease float64 `yaml:"enemy_speed_increase"`
	SpawnAttemptFactor int     `yaml:"spawn_attempt_factor"`
	// TopBottomBias is the chance a vertical field prefers a top/bottom edge
	TopBottomBias float64 `yaml:"top_bottom_bias"`
}

// ProjectileConfig holds pool and flight tuning
type ProjectileConfig struct {
	PoolSize          int           `yaml:"pool_size"`
	SpeedLandscape    float64       `yaml:"speed_landscape"`
	SpeedVertical     float64       `yaml:"speed_vertical"`
	LifespanLandscape time.Duration `yaml:"lifespan_landscape"`
	LifespanVertical  time.Duration `yaml:"lifespan_vertical"`
}

// InputConfig holds adapter tuning
type InputConfig struct {
	PointerCooldown       time.Duration `yaml:"pointer_cooldown"`
	TouchCooldown         time.Duration `yaml:"touch_cooldown"`
	DualStickCooldownVert time.Duration `yaml:"dual_stick_cooldown_vertical"`
	DualStickCooldownLand time.Duration `yaml:"dual_stick_cooldown_landscape"`
	DeadZone              float64       `yaml:"dead_zone"`
	ArriveRadius          float64       `yaml:"arrive_radius"`
	VerticalSpeedFactor   float64       `yaml:"vertical_speed_factor"`
	ShootDistanceFactor   float64       `yaml:"shoot_distance_factor"`
	TouchLayout           TouchLayout   `yaml:"touch_layout"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Player: PlayerConfig{
			Speed:     200.0,
			MaxHealth: 3,
			Radius:    24.0,
		},
		Combat: CombatConfig{
			ScorePerKill:     10,
			Invulnerability:  2000 * time.Millisecond,
			HitFlash:         200 * time.Millisecond,
			HitTint:          0xff6666,
			GameOverTint:     0xff0000,
			EnemyRadius:      20.0,
			ProjectileRadius: 6.0,
		},
		Waves: WaveConfig{
			InitialEnemies:     10,
			MaxEnemies:         20,
			EnemiesIncrement:   2,
			InitialEnemySpeed:  100.0,
			EnemySpeedIncrease: 15.0,
			SpawnAttemptFactor: 5,
			TopBottomBias:      0.7,
		},
		Projectiles: ProjectileConfig{
			PoolSize:          64,
			SpeedLandscape:    500.0,
			SpeedVertical:     600.0,
			LifespanLandscape: 3000 * time.Millisecond,
			LifespanVertical:  2500 * time.Millisecond,
		},
		Input: InputConfig{
			PointerCooldown:       100 * time.Millisecond,
			TouchCooldown:         100 * time.Millisecond,
			DualStickCooldownVert: 60 * time.Millisecond,
			DualStickCooldownLand: 80 * time.Millisecond,
			DeadZone:              0.1,
			ArriveRadius:          10.0,
			VerticalSpeedFactor:   0.8,
			ShootDistanceFactor:   0.6,
			TouchLayout:           TouchLayoutDualStick,
		},
		CellSize:   128.0,
		MusicTrack: "background",
	}
}

// LoadConfig reads a YAML file and overlays it onto DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range value. The wave curve is tuning:
// DefaultConfig carries the standard values (10 enemies growing by 2 up to 20,
// speed 100 growing by 15), and a config may set other counts and speeds as
// long as the curve never shrinks.
func (c Config) Validate() error {
	switch {
	case c.Player.Speed <= 0:
		return fmt.Errorf("%w: player.speed must be positive", ErrInvalidConfig)
	case c.Player.MaxHealth < 1:
		return fmt.Errorf("%w: player.max_health must be at least 1", ErrInvalidConfig)
	case c.Waves.InitialEnemies < 1 || c.Waves.MaxEnemies < c.Waves.InitialEnemies:
		return fmt.Errorf("%w: waves.initial_enemies must be in [1, max_enemies]", ErrInvalidConfig)
	case c.Waves.EnemiesIncrement < 0:
		return fmt.Errorf("%w: waves.enemies_increment must not be negative", ErrInvalidConfig)
	case c.Waves.InitialEnemySpeed <= 0:
		return fmt.Errorf("%w: waves.initial_enemy_speed must be positive", ErrInvalidConfig)
	case c.Waves.EnemySpeedIncrease < 0:
		return fmt.Errorf("%w: waves.enemy_speed_increase must not be negative", ErrInvalidConfig)
	case c.Waves.SpawnAttemptFactor < 1:
		return fmt.Errorf("%w: waves.spawn_attempt_factor must be at least 1", ErrInvalidConfig)
	case c.Waves.TopBottomBias < 0 || c.Waves.TopBottomBias > 1:
		return fmt.Errorf("%w: waves.top_bottom_bias must be in [0, 1]", ErrInvalidConfig)
	case c.Projectiles.PoolSize < 1:
		return fmt.Errorf("%w: projectiles.pool_size must be at least 1", ErrInvalidConfig)
	case c.Projectiles.LifespanLandscape <= 0 || c.Projectiles.LifespanVertical <= 0:
		return fmt.Errorf("%w: projectile lifespans must be positive", ErrInvalidConfig)
	case c.Input.DeadZone < 0 || c.Input.DeadZone >= 1:
		return fmt.Errorf("%w: input.dead_zone must be in [0, 1)", ErrInvalidConfig)
	case c.Input.TouchLayout != TouchLayoutDualStick && c.Input.TouchLayout != TouchLayoutZones:
		return fmt.Errorf("%w: input.touch_layout %q is not one of dual, zones", ErrInvalidConfig, c.Input.TouchLayout)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// withDefaults fills every field whose zero value can never be meant with
// the DefaultConfig value. Fields where zero is a real setting (cooldowns,
// increments, dead zone, bias, tints) are kept as given. A zero Config
// becomes DefaultConfig.
func (c Config) withDefaults() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	d := DefaultConfig()

	fill(&c.Player.Speed, d.Player.Speed)
	fill(&c.Player.MaxHealth, d.Player.MaxHealth)
	fill(&c.Player.Radius, d.Player.Radius)

	fill(&c.Combat.EnemyRadius, d.Combat.EnemyRadius)
	fill(&c.Combat.ProjectileRadius, d.Combat.ProjectileRadius)

	fill(&c.Waves.InitialEnemies, d.Waves.InitialEnemies)
	fill(&c.Waves.MaxEnemies, d.Waves.MaxEnemies)
	fill(&c.Waves.InitialEnemySpeed, d.Waves.InitialEnemySpeed)
	fill(&c.Waves.SpawnAttemptFactor, d.Waves.SpawnAttemptFactor)

	fill(&c.Projectiles.PoolSize, d.Projectiles.PoolSize)
	fill(&c.Projectiles.SpeedLandscape, d.Projectiles.SpeedLandscape)
	fill(&c.Projectiles.SpeedVertical, d.Projectiles.SpeedVertical)
	fill(&c.Projectiles.LifespanLandscape, d.Projectiles.LifespanLandscape)
	fill(&c.Projectiles.LifespanVertical, d.Projectiles.LifespanVertical)

	fill(&c.Input.VerticalSpeedFactor, d.Input.VerticalSpeedFactor)
	fill(&c.Input.ShootDistanceFactor, d.Input.ShootDistanceFactor)
	fill(&c.Input.TouchLayout, d.Input.TouchLayout)

	fill(&c.CellSize, d.CellSize)
	fill(&c.MusicTrack, d.MusicTrack)
	return c
}

func fill[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Spawn geometry at reference resolution
const (
	spawnOffsetVertical   = 30.0
	spawnOffsetLandscape  = 50.0
	spawnMinDistVertical  = 150.0
	spawnMinDistLandscape = 200.0
	defaultSpawnAttempts  = 5
)

// SpawnResult reports what a wave placement produced
type SpawnResult struct {
	Enemies  []*Enemy
	Attempts int
}

// SpawnDirector places wave enemies just outside the field edges, away from the player
type SpawnDirector struct {
	rng    *rand.Rand
	logger zerolog.Logger

	attemptFactor int
	topBottomBias float64
	enemyRadius   float64
}

// NewSpawnDirector creates a director drawing from rng
func NewSpawnDirector(rng *rand.Rand, cfg WaveConfig, enemyRadius float64, logger zerolog.Logger) *SpawnDirector {
	d := &SpawnDirector{
		rng:           rng,
		logger:        logger,
		attemptFactor: cfg.SpawnAttemptFactor,
		topBottomBias: cfg.TopBottomBias,
		enemyRadius:   enemyRadius,
	}
	if d.attemptFactor < 1 {
		d.attemptFactor = defaultSpawnAttempts
	}
	return d
}

// SpawnWave tries up to count*attemptFactor edge positions and keeps the ones
// farther than the exclusion radius from player. When the field is too small
// to satisfy the radius the wave comes back short instead of looping forever.
func (d *SpawnDirector) SpawnWave(field PlayField, player Vec2, count int) SpawnResult {
	var res SpawnResult
	if count <= 0 {
		return res
	}
	res.Enemies = make([]*Enemy, 0, count)

	offset := field.Scaled(field.byOrientation(spawnOffsetVertical, spawnOffsetLandscape))
	minDist := field.Scaled(field.byOrientation(spawnMinDistVertical, spawnMinDistLandscape))
	radius := field.AssetScaled(d.enemyRadius)
	maxAttempts := count * d.attemptFactor

	for len(res.Enemies) < count && res.Attempts < maxAttempts {
		res.Attempts++

		var pos Vec2
		if field.Vertical {
			pos = d.verticalEdge(field, offset)
		} else {
			pos = d.landscapeEdge(field, offset)
		}

		if pos.DistanceTo(player) > minDist {
			res.Enemies = append(res.Enemies, NewEnemy(pos, radius))
		}
	}

	if len(res.Enemies) < count {
		d.logger.Warn().
			Int("wanted", count).
			Int("spawned", len(res.Enemies)).
			Int("attempts", res.Attempts).
			Msg("wave under-populated")
	}
	return res
}

// verticalEdge favours the top and bottom edges, which are the short ones on a tall field
func (d *SpawnDirector) verticalEdge(field PlayField, offset float64) Vec2 {
	side := d.rng.Intn(4)
	switch {
	case (side <= 1 && d.rng.Float64() < d.topBottomBias) || side == 0:
		return Vec2{X: d.between(offset, field.Width-offset), Y: -offset}
	case (side <= 1 && d.rng.Float64() < d.topBottomBias) || side == 2:
		return Vec2{X: d.between(offset, field.Width-offset), Y: field.Height + offset}
	case side == 1:
		return Vec2{X: field.Width + offset, Y: d.between(offset, field.Height-offset)}
	default:
		return Vec2{X: -offset, Y: d.between(offset, field.Height-offset)}
	}
}

func (d *SpawnDirector) landscapeEdge(field PlayField, offset float64) Vec2 {
	switch d.rng.Intn(4) {
	case 0:
		return Vec2{X: d.between(0, field.Width), Y: -offset}
	case 1:
		return Vec2{X: field.Width + offset, Y: d.between(0, field.Height)}
	case 2:
		return Vec2{X: d.between(0, field.Width), Y: field.Height + offset}
	default:
		return Vec2{X: -offset, Y: d.between(0, field.Height)}
	}
}

// between draws uniformly from [lo, hi]; a collapsed range yields its midpoint
func (d *SpawnDirector) between(lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + d.rng.Float64()*(hi-lo)
}

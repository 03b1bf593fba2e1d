package autopilot

import (
	"math"
	"sort"

	"wavesurvivor/game"
)

// BotContext is passed to bot scripts as input
type BotContext struct {
	PlayerX     float64 `json:"playerX"`
	PlayerY     float64 `json:"playerY"`
	PlayerSpeed float64 `json:"playerSpeed"`

	FieldWidth  float64 `json:"fieldWidth"`
	FieldHeight float64 `json:"fieldHeight"`
	Vertical    bool    `json:"vertical"`

	ProjectileSpeed float64 `json:"projectileSpeed"`
	GameTime        float64 `json:"gameTime"`

	// Enemies sorted nearest first
	Enemies []EnemyInfo `json:"enemies"`
}

// EnemyInfo describes one enemy relative to the player
type EnemyInfo struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
}

// BotDecision is returned from bot scripts.
// Movement uses the target when one is set, otherwise the direction.
type BotDecision struct {
	// Direction to move in, -1 to 1 per axis
	MoveX float64 `json:"moveX"`
	MoveY float64 `json:"moveY"`

	// Optional point to steer toward
	TargetX *float64 `json:"targetX,omitempty"`
	TargetY *float64 `json:"targetY,omitempty"`

	// Optional point to shoot at; the nearest enemy is led when unset
	AimX *float64 `json:"aimX,omitempty"`
	AimY *float64 `json:"aimY,omitempty"`

	Shoot bool `json:"shoot"`
}

// BuildBotContext creates a BotContext from a sample context
func BuildBotContext(ctx game.SampleContext) BotContext {
	bc := BotContext{
		PlayerX:         ctx.Player.X,
		PlayerY:         ctx.Player.Y,
		PlayerSpeed:     ctx.PlayerSpeed,
		FieldWidth:      ctx.Field.Width,
		FieldHeight:     ctx.Field.Height,
		Vertical:        ctx.Field.Vertical,
		ProjectileSpeed: ctx.ProjectileSpeed,
		GameTime:        ctx.Clock.Seconds(),
		Enemies:         make([]EnemyInfo, 0, len(ctx.Enemies)),
	}

	for _, e := range ctx.Enemies {
		d := e.Pos.Sub(ctx.Player)
		bc.Enemies = append(bc.Enemies, EnemyInfo{
			X:        e.Pos.X,
			Y:        e.Pos.Y,
			VX:       e.Vel.X,
			VY:       e.Vel.Y,
			Distance: d.Len(),
			Angle:    math.Atan2(d.Y, d.X),
		})
	}
	sort.SliceStable(bc.Enemies, func(i, j int) bool {
		return bc.Enemies[i].Distance < bc.Enemies[j].Distance
	})
	return bc
}

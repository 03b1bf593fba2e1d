package autopilot

import (
	"time"

	"wavesurvivor/game"
)

// Bot distances at reference resolution
const (
	dangerRadius = 260.0
	centerPull   = 0.5
	arriveRadius = 10.0
)

// Bot is the built-in autopilot. It leads the nearest enemy with every shot,
// backs away from anything inside the danger radius and otherwise drifts
// back to the middle of the field.
type Bot struct {
	cfg   game.InputConfig
	touch bool
}

// NewBot creates a bot that fires at the cadence of the given modality
func NewBot(cfg game.InputConfig, touch bool) *Bot {
	return &Bot{cfg: cfg, touch: touch}
}

// cooldown matches the human modality the bot stands in for
func (b *Bot) cooldown(field game.PlayField) time.Duration {
	switch {
	case !b.touch:
		return b.cfg.PointerCooldown
	case field.Vertical:
		return b.cfg.DualStickCooldownVert
	default:
		return b.cfg.DualStickCooldownLand
	}
}

// Sample implements game.InputAdapter
func (b *Bot) Sample(ctx game.SampleContext) game.Intent {
	f := ctx.Field
	in := game.Intent{FireCooldown: b.cooldown(f)}

	center := f.Center()
	home := game.Movement{Kind: game.MoveSteer, Target: center, Arrive: f.Scaled(arriveRadius)}

	i := nearest(ctx.Player, ctx.Enemies)
	if i < 0 {
		in.Move = home
		in.Aim = center
		return in
	}
	target := ctx.Enemies[i]

	in.Aim = PredictiveAim(ctx.Player, target.Pos, target.Vel, ctx.ProjectileSpeed)
	in.Fire = true

	if ctx.Player.DistanceTo(target.Pos) < f.Scaled(dangerRadius) {
		away := ctx.Player.Sub(target.Pos).Normalize()
		pull := center.Sub(ctx.Player).Normalize().Scale(centerPull)
		dir := away.Add(pull).Normalize()
		in.Move = game.Movement{Kind: game.MoveDirect, Velocity: dir.Scale(ctx.PlayerSpeed)}
	} else {
		in.Move = home
	}
	return in
}

// Reset implements game.InputAdapter
func (b *Bot) Reset() {}

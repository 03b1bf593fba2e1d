package autopilot

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"wavesurvivor/game"
)

func sampleContext(field game.PlayField, player game.Vec2, enemies ...game.EntityState) game.SampleContext {
	return game.SampleContext{
		Field:           field,
		Player:          player,
		PlayerSpeed:     200,
		ProjectileSpeed: 500,
		Enemies:         enemies,
	}
}

func TestBotIdleWithoutEnemies(t *testing.T) {
	f := game.Recompute(1920, 1080, false)
	b := NewBot(game.DefaultConfig().Input, false)
	in := b.Sample(sampleContext(f, game.Vec2{X: 100, Y: 100}))

	if in.Fire {
		t.Error("fired with no enemies")
	}
	if in.Move.Kind != game.MoveSteer || in.Move.Target != f.Center() {
		t.Errorf("move = %+v, want steer home", in.Move)
	}
	if in.FireCooldown != 100*time.Millisecond {
		t.Errorf("cooldown = %v", in.FireCooldown)
	}
}

func TestBotLeadsNearestEnemy(t *testing.T) {
	f := game.Recompute(1920, 1080, false)
	player := f.Center()
	near := game.EntityState{Pos: game.Vec2{X: 1400, Y: 540}, Vel: game.Vec2{X: 0, Y: 100}}
	far := game.EntityState{Pos: game.Vec2{X: 0, Y: 0}}

	in := NewBot(game.DefaultConfig().Input, false).Sample(sampleContext(f, player, far, near))
	if !in.Fire {
		t.Fatal("bot did not fire")
	}
	want := PredictiveAim(player, near.Pos, near.Vel, 500)
	if in.Aim != want {
		t.Errorf("aim = %+v, want %+v", in.Aim, want)
	}
	if in.Aim.Y <= near.Pos.Y {
		t.Errorf("aim %+v does not lead a target moving down", in.Aim)
	}
}

func TestBotBacksAway(t *testing.T) {
	f := game.Recompute(1920, 1080, false)
	player := f.Center()
	threat := game.EntityState{Pos: player.Add(game.Vec2{X: 50})}

	in := NewBot(game.DefaultConfig().Input, false).Sample(sampleContext(f, player, threat))
	if in.Move.Kind != game.MoveDirect {
		t.Fatalf("move = %+v, want direct", in.Move)
	}
	if in.Move.Velocity.X >= 0 {
		t.Errorf("velocity %+v moves toward the threat", in.Move.Velocity)
	}
	if !approx(in.Move.Velocity.Len(), 200) {
		t.Errorf("speed = %v, want 200", in.Move.Velocity.Len())
	}
}

func TestBotTouchCooldowns(t *testing.T) {
	cfg := game.DefaultConfig().Input
	b := NewBot(cfg, true)
	if got := b.cooldown(game.Recompute(480, 853, true)); got != cfg.DualStickCooldownVert {
		t.Errorf("vertical = %v", got)
	}
	if got := b.cooldown(game.Recompute(800, 450, true)); got != cfg.DualStickCooldownLand {
		t.Errorf("landscape = %v", got)
	}
}

func TestBotPlaysAGame(t *testing.T) {
	cfg := game.DefaultConfig()
	g := game.NewGame(1920, 1080, game.Options{
		Config: cfg,
		Logger: zerolog.Nop(),
		Input:  NewBot(cfg.Input, false),
		Rand:   rand.New(rand.NewSource(11)),
	})

	for i := 0; i < 60*20 && g.Phase() == game.PhaseRunning; i++ {
		g.Update(time.Second / 60)
	}
	if g.Session().Defeated == 0 {
		t.Error("bot defeated no enemies in 20s")
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

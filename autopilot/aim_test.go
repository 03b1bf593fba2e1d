package autopilot

import (
	"math"
	"testing"

	"wavesurvivor/game"
)

func TestPredictiveAimStationary(t *testing.T) {
	target := game.Vec2{X: 300, Y: 400}
	got := PredictiveAim(game.Vec2{}, target, game.Vec2{}, 500)
	if got != target {
		t.Errorf("aim = %+v, want the target itself", got)
	}
}

func TestPredictiveAimIntercepts(t *testing.T) {
	tests := []struct {
		name   string
		target game.Vec2
		vel    game.Vec2
		speed  float64
	}{
		{"crossing", game.Vec2{X: 500, Y: 0}, game.Vec2{X: 0, Y: 100}, 500},
		{"approaching", game.Vec2{X: 800, Y: 300}, game.Vec2{X: -115, Y: -40}, 500},
		{"receding", game.Vec2{X: 200, Y: 200}, game.Vec2{X: 60, Y: 60}, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shooter := game.Vec2{}
			aim := PredictiveAim(shooter, tt.target, tt.vel, tt.speed)

			// Time for the shot to reach the aim point must match the time
			// the target needs to get there
			shotTime := shooter.DistanceTo(aim) / tt.speed
			targetTime := tt.target.DistanceTo(aim) / tt.vel.Len()
			if math.Abs(shotTime-targetTime) > 0.01 {
				t.Errorf("shot arrives at %.3fs, target at %.3fs", shotTime, targetTime)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	enemies := []game.EntityState{
		{Pos: game.Vec2{X: 100}},
		{Pos: game.Vec2{X: 10}},
		{Pos: game.Vec2{X: -50}},
	}
	if got := nearest(game.Vec2{}, enemies); got != 1 {
		t.Errorf("nearest = %d, want 1", got)
	}
	if got := nearest(game.Vec2{}, nil); got != -1 {
		t.Errorf("nearest of none = %d", got)
	}
}

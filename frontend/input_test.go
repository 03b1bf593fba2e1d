package frontend

import (
	"testing"

	"wavesurvivor/game"
)

// latchlessInput stands in for a bot adapter with no latches of its own
type latchlessInput struct {
	resets int
}

func (l *latchlessInput) Sample(game.SampleContext) game.Intent { return game.Intent{} }
func (l *latchlessInput) Reset() { l.resets++ }

func touchField() game.PlayField {
	return game.Recompute(800, 450, true)
}

func sampleCtx(f game.PlayField) game.SampleContext {
	return game.SampleContext{Field: f, Player: f.Center(), PlayerSpeed: 200}
}

func TestRouterDualSticks(t *testing.T) {
	f := touchField()
	d := game.NewDualStickInput(game.DefaultConfig().Input)
	r := NewInputRouter(d)

	r.TouchStarted(1, game.Vec2{X: 100, Y: 300}, f)
	r.TouchMoved(1, game.Vec2{X: 150, Y: 300})
	if !d.Left.Active || d.Left.Dir.X != 1 {
		t.Fatalf("left stick = %+v", d.Left)
	}
	if d.Left.Center != (game.Vec2{X: 100, Y: 300}) || d.Left.Radius != stickRadius {
		t.Errorf("left stick base = %v r=%v", d.Left.Center, d.Left.Radius)
	}

	// A second finger on the held side is ignored
	r.TouchStarted(2, game.Vec2{X: 200, Y: 100}, f)
	r.TouchMoved(2, game.Vec2{X: 200, Y: 50})
	if d.Left.Center != (game.Vec2{X: 100, Y: 300}) || d.Left.Dir.Y != 0 {
		t.Errorf("second finger moved the left stick: %+v", d.Left)
	}

	r.TouchStarted(3, game.Vec2{X: 700, Y: 300}, f)
	if !d.Right.Active {
		t.Fatal("right half should press the right stick")
	}
	in := r.Sample(sampleCtx(f))
	if !in.Fire || in.Move.Kind != game.MoveDirect {
		t.Errorf("intent = %+v", in)
	}

	r.TouchEnded(2)
	if !d.Left.Active {
		t.Error("releasing the ignored finger must not release the stick")
	}
	r.TouchEnded(1)
	r.TouchEnded(3)
	if d.Left.Active || d.Right.Active {
		t.Error("sticks should be released")
	}
	if in := r.Sample(sampleCtx(f)); in.Fire || in.Move.Kind != game.MoveHold {
		t.Errorf("intent after release = %+v", in)
	}
}

func TestRouterTouchZones(t *testing.T) {
	f := touchField()
	z := game.NewTouchZoneInput(game.DefaultConfig().Input)
	r := NewInputRouter(z)

	r.TouchStarted(1, game.Vec2{X: 100, Y: 100}, f)
	r.TouchMoved(1, game.Vec2{X: 120, Y: 140})
	r.TouchStarted(2, game.Vec2{X: 700, Y: 100}, f)

	in := r.Sample(sampleCtx(f))
	if in.Move.Kind != game.MoveSteer || in.Move.Target != (game.Vec2{X: 120, Y: 140}) {
		t.Errorf("move = %+v", in.Move)
	}
	if !in.Fire {
		t.Error("shoot zone finger should fire")
	}

	r.TouchEnded(2)
	if in := r.Sample(sampleCtx(f)); in.Fire {
		t.Error("fire should stop when the shoot finger lifts")
	}
}

func TestRouterPointer(t *testing.T) {
	f := game.Recompute(1920, 1080, false)
	p := game.NewPointerInput(game.DefaultConfig().Input)
	r := NewInputRouter(p)

	r.PointerMoved(game.Vec2{X: 300, Y: 400})
	r.PointerButton(true)
	in := r.Sample(sampleCtx(f))
	if !in.Fire || in.Aim != (game.Vec2{X: 300, Y: 400}) {
		t.Errorf("intent = %+v", in)
	}

	// Touches on a pointer layout behave like a held mouse
	r.TouchStarted(5, game.Vec2{X: 10, Y: 20}, f)
	if in := r.Sample(sampleCtx(f)); in.Aim != (game.Vec2{X: 10, Y: 20}) || !in.Fire {
		t.Errorf("touch intent = %+v", in)
	}
	r.TouchEnded(5)
	if in := r.Sample(sampleCtx(f)); in.Fire {
		t.Error("lifting the finger should release the button")
	}
}

func TestRouterClaimedButtonFinger(t *testing.T) {
	d := game.NewDualStickInput(game.DefaultConfig().Input)
	r := NewInputRouter(d)

	r.claimButton(9)
	r.TouchMoved(9, game.Vec2{X: 100, Y: 100})
	r.TouchEnded(9)
	if d.Left.Active || d.Right.Active {
		t.Error("a button finger must not drive a stick")
	}
}

func TestRouterRequests(t *testing.T) {
	f := touchField()

	t.Run("core adapter latches", func(t *testing.T) {
		r := NewInputRouter(game.NewDualStickInput(game.DefaultConfig().Input))
		r.RequestPause()
		if in := r.Sample(sampleCtx(f)); !in.TogglePause {
			t.Error("pause request lost")
		}
		if in := r.Sample(sampleCtx(f)); in.TogglePause {
			t.Error("pause request should be consumed once")
		}
	})

	t.Run("adapter without latches", func(t *testing.T) {
		bot := &latchlessInput{}
		r := NewInputRouter(bot)
		r.RequestRestart()
		if in := r.Sample(sampleCtx(f)); !in.Restart {
			t.Error("restart request lost")
		}
		if in := r.Sample(sampleCtx(f)); in.Restart {
			t.Error("restart request should be consumed once")
		}

		r.RequestPause()
		r.Reset()
		if bot.resets != 1 {
			t.Errorf("resets = %d, want 1", bot.resets)
		}
		if in := r.Sample(sampleCtx(f)); in.TogglePause {
			t.Error("reset should drop pending requests")
		}
	})
}

func TestRouterDrivesGamePause(t *testing.T) {
	r := NewInputRouter(game.NewPointerInput(game.DefaultConfig().Input))
	g := newHeadlessGame(t, r)

	r.RequestPause()
	g.Update(16_000_000)
	if g.Phase() != game.PhasePaused {
		t.Fatalf("phase = %v, want paused", g.Phase())
	}
	r.RequestPause()
	g.Update(16_000_000)
	if g.Phase() != game.PhaseRunning {
		t.Fatalf("phase = %v, want running", g.Phase())
	}
}

package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wavesurvivor/game"
)

// Base radius of a virtual joystick in pixels
const stickRadius = 50.0

type stickSide int

const (
	stickLeft stickSide = iota
	stickRight
	// a finger that landed on a button and drives nothing else
	stickNone
)

// requester is implemented by the core input adapters
type requester interface {
	RequestPause()
	RequestRestart()
}

// Commands are window-level toggles read from the keyboard
type Commands struct {
	ToggleFullscreen bool
	ToggleDebug      bool
}

// View is what the router needs to know about the current frame
type View struct {
	Field       game.PlayField
	Origin      game.Vec2
	Phase       game.Phase
	Restart     Rect
	PauseButton Rect
}

// InputRouter turns raw ebiten events into calls on a game.InputAdapter.
// It is itself the adapter handed to the game, so requests from adapters
// that have no latches of their own (bots) still reach the session.
type InputRouter struct {
	adapter game.InputAdapter
	owners  map[int]stickSide

	pause   bool
	restart bool

	// Reused event buffers
	held     []ebiten.TouchID
	pressed  []ebiten.TouchID
	released []ebiten.TouchID

	prevFullscreenCombo bool
}

// NewInputRouter wraps adapter
func NewInputRouter(adapter game.InputAdapter) *InputRouter {
	return &InputRouter{
		adapter: adapter,
		owners:  make(map[int]stickSide),
	}
}

// Adapter returns the wrapped adapter
func (r *InputRouter) Adapter() game.InputAdapter {
	return r.adapter
}

// Sample implements game.InputAdapter
func (r *InputRouter) Sample(ctx game.SampleContext) game.Intent {
	in := r.adapter.Sample(ctx)
	if r.pause {
		in.TogglePause = true
	}
	if r.restart {
		in.Restart = true
	}
	r.pause, r.restart = false, false
	return in
}

// Reset implements game.InputAdapter
func (r *InputRouter) Reset() {
	r.adapter.Reset()
	clear(r.owners)
	r.pause, r.restart = false, false
}

// RequestPause asks the session to toggle pause on the next sample
func (r *InputRouter) RequestPause() {
	if q, ok := r.adapter.(requester); ok {
		q.RequestPause()
		return
	}
	r.pause = true
}

// RequestRestart asks the session to restart on the next sample
func (r *InputRouter) RequestRestart() {
	if q, ok := r.adapter.(requester); ok {
		q.RequestRestart()
		return
	}
	r.restart = true
}

// PointerMoved latches the mouse position in field coordinates
func (r *InputRouter) PointerMoved(pos game.Vec2) {
	if p, ok := r.adapter.(*game.PointerInput); ok {
		p.SetPointer(pos.X, pos.Y)
	}
}

// PointerButton latches the primary button
func (r *InputRouter) PointerButton(down bool) {
	if p, ok := r.adapter.(*game.PointerInput); ok {
		p.SetButton(down)
	}
}

// TouchStarted routes a new finger. Dual-stick layouts give the left half of
// the field to the move stick and the right half to the aim stick; a finger
// landing on a side whose stick is already held is ignored.
func (r *InputRouter) TouchStarted(id int, pos game.Vec2, f game.PlayField) {
	switch a := r.adapter.(type) {
	case *game.TouchZoneInput:
		a.TouchDown(id, pos)
	case *game.DualStickInput:
		side := stickRight
		if pos.X < f.Width/2 {
			side = stickLeft
		}
		stick := r.stick(a, side)
		if stick.Active {
			r.owners[id] = stickNone
			return
		}
		stick.Press(pos, stickRadius)
		r.owners[id] = side
	case *game.PointerInput:
		a.SetPointer(pos.X, pos.Y)
		a.SetButton(true)
	}
}

// TouchMoved updates a held finger
func (r *InputRouter) TouchMoved(id int, pos game.Vec2) {
	side, owned := r.owners[id]
	if owned && side == stickNone {
		return
	}
	switch a := r.adapter.(type) {
	case *game.TouchZoneInput:
		a.TouchMove(id, pos)
	case *game.DualStickInput:
		if owned {
			r.stick(a, side).Drag(pos)
		}
	case *game.PointerInput:
		a.SetPointer(pos.X, pos.Y)
	}
}

// TouchEnded releases a finger
func (r *InputRouter) TouchEnded(id int) {
	side, owned := r.owners[id]
	delete(r.owners, id)

	switch a := r.adapter.(type) {
	case *game.TouchZoneInput:
		a.TouchUp(id)
	case *game.DualStickInput:
		if owned && side != stickNone {
			r.stick(a, side).Release()
		}
	case *game.PointerInput:
		a.SetButton(false)
	}
}

// claimButton marks a finger as consumed by an on-screen button
func (r *InputRouter) claimButton(id int) {
	r.owners[id] = stickNone
}

func (r *InputRouter) stick(d *game.DualStickInput, side stickSide) *game.Joystick {
	if side == stickLeft {
		return &d.Left
	}
	return &d.Right
}

// Poll reads this frame's keyboard, mouse and touch state from ebiten
func (r *InputRouter) Poll(v View) Commands {
	var cmd Commands

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		r.RequestPause()
	}
	if v.Phase == game.PhaseGameOver && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		r.RequestRestart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		cmd.ToggleDebug = true
	}

	// Alt+Enter, edge triggered
	combo := ebiten.IsKeyPressed(ebiten.KeyAlt) && ebiten.IsKeyPressed(ebiten.KeyEnter)
	if combo && !r.prevFullscreenCombo {
		cmd.ToggleFullscreen = true
	}
	r.prevFullscreenCombo = combo

	r.pollMouse(v)
	r.pollTouches(v)
	return cmd
}

func (r *InputRouter) pollMouse(v View) {
	cx, cy := ebiten.CursorPosition()
	pos := toField(v, float64(cx), float64(cy))

	if v.Phase == game.PhaseGameOver && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) &&
		v.Restart.Contains(pos) {
		r.RequestRestart()
	}
	if _, ok := r.adapter.(*game.PointerInput); !ok || len(r.held) > 0 {
		return
	}
	r.PointerMoved(pos)
	r.PointerButton(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (r *InputRouter) pollTouches(v View) {
	r.pressed = inpututil.AppendJustPressedTouchIDs(r.pressed[:0])
	for _, tid := range r.pressed {
		tx, ty := ebiten.TouchPosition(tid)
		pos := toField(v, float64(tx), float64(ty))
		id := int(tid)

		switch {
		case v.PauseButton.Contains(pos):
			r.claimButton(id)
			if v.Phase == game.PhaseGameOver {
				r.RequestRestart()
			} else {
				r.RequestPause()
			}
		case v.Phase == game.PhaseGameOver && v.Restart.Contains(pos):
			r.claimButton(id)
			r.RequestRestart()
		default:
			r.TouchStarted(id, pos, v.Field)
		}
	}

	r.held = ebiten.AppendTouchIDs(r.held[:0])
	for _, tid := range r.held {
		tx, ty := ebiten.TouchPosition(tid)
		r.TouchMoved(int(tid), toField(v, float64(tx), float64(ty)))
	}

	r.released = inpututil.AppendJustReleasedTouchIDs(r.released[:0])
	for _, tid := range r.released {
		r.TouchEnded(int(tid))
	}
}

// toField converts window coordinates to field coordinates
func toField(v View, x, y float64) game.Vec2 {
	return game.Vec2{X: x - v.Origin.X, Y: y - v.Origin.Y}
}

package game

import (
	"math"
	"time"
)

// TouchLayout selects the touch control scheme
type TouchLayout string

const (
	TouchLayoutDualStick TouchLayout = "dual"
	TouchLayoutZones     TouchLayout = "zones"
)

// MoveKind says how Movement should be applied to the player
type MoveKind int

const (
	// MoveHold stops the player
	MoveHold MoveKind = iota
	// MoveSteer heads for Target and stops within Arrive of it
	MoveSteer
	// MoveDirect sets the player's velocity to Velocity
	MoveDirect
)

// Movement is the movement part of an Intent
type Movement struct {
	Kind     MoveKind
	Target   Vec2
	Arrive   float64
	Velocity Vec2
}

// Intent is one frame of player input in modality-neutral form
type Intent struct {
	Move         Movement
	Aim          Vec2
	Fire         bool
	FireCooldown time.Duration
	TogglePause  bool
	Restart      bool
}

// SampleContext is what an adapter may look at while sampling
type SampleContext struct {
	Field       PlayField
	Player      Vec2
	PlayerSpeed float64

	// Filled for autopilots; human adapters ignore them
	Clock           time.Duration
	ProjectileSpeed float64
	Enemies         []EntityState
}

// InputAdapter turns latched input into an Intent once per frame.
// Raw event handlers only write latches; Sample is the single reader.
type InputAdapter interface {
	Sample(ctx SampleContext) Intent
	Reset()
}

// latches holds the one-shot requests shared by every modality
type latches struct {
	pause   bool
	restart bool
}

// RequestPause asks for a pause toggle on the next Sample
func (l *latches) RequestPause() { l.pause = true }

// RequestRestart asks for a restart on the next Sample
func (l *latches) RequestRestart() { l.restart = true }

func (l *latches) consume(in *Intent) {
	in.TogglePause = l.pause
	in.Restart = l.restart
	l.pause = false
	l.restart = false
}

// SelectInput picks the modality for a session. It runs once, at startup.
func SelectInput(cfg InputConfig, touch bool) InputAdapter {
	switch {
	case !touch:
		return NewPointerInput(cfg)
	case cfg.TouchLayout == TouchLayoutZones:
		return NewTouchZoneInput(cfg)
	default:
		return NewDualStickInput(cfg)
	}
}

// defaultAim is where touch modes shoot when they have no direction of their own
func defaultAim(ctx SampleContext) Vec2 {
	f := ctx.Field
	if f.Vertical {
		return Vec2{X: ctx.Player.X, Y: ctx.Player.Y - f.Height*0.8}
	}
	return Vec2{X: f.Width * 0.85, Y: f.Height * 0.3}
}

// PointerInput steers the player toward the mouse and fires at it while the
// primary button is held
type PointerInput struct {
	latches

	cfg        InputConfig
	pointer    Vec2
	hasPointer bool
	down       bool
}

// NewPointerInput creates a desktop pointer adapter
func NewPointerInput(cfg InputConfig) *PointerInput {
	return &PointerInput{cfg: cfg}
}

// SetPointer latches the pointer position in field coordinates
func (p *PointerInput) SetPointer(x, y float64) {
	p.pointer = Vec2{X: x, Y: y}
	p.hasPointer = true
}

// SetButton latches the primary button state
func (p *PointerInput) SetButton(down bool) {
	p.down = down
}

// Sample implements InputAdapter
func (p *PointerInput) Sample(ctx SampleContext) Intent {
	in := Intent{FireCooldown: p.cfg.PointerCooldown}
	if p.hasPointer {
		in.Move = Movement{
			Kind:   MoveSteer,
			Target: p.pointer,
			Arrive: ctx.Field.Scaled(p.cfg.ArriveRadius),
		}
		in.Aim = p.pointer
		in.Fire = p.down
	}
	p.consume(&in)
	return in
}

// Reset implements InputAdapter
func (p *PointerInput) Reset() {
	*p = PointerInput{cfg: p.cfg}
}

// touchPoint is one finger tracked by TouchZoneInput
type touchPoint struct {
	id    int
	start Vec2
	pos   Vec2
}

// TouchZoneInput splits the screen into a move zone and a shoot zone. The
// zone a finger belongs to is decided by where it first touched down.
type TouchZoneInput struct {
	latches

	cfg     InputConfig
	touches []touchPoint
}

// NewTouchZoneInput creates a single-stick touch adapter
func NewTouchZoneInput(cfg InputConfig) *TouchZoneInput {
	return &TouchZoneInput{cfg: cfg}
}

// TouchDown latches a new finger
func (t *TouchZoneInput) TouchDown(id int, pos Vec2) {
	t.TouchUp(id)
	t.touches = append(t.touches, touchPoint{id: id, start: pos, pos: pos})
}

// TouchMove updates a finger's position
func (t *TouchZoneInput) TouchMove(id int, pos Vec2) {
	for i := range t.touches {
		if t.touches[i].id == id {
			t.touches[i].pos = pos
			return
		}
	}
}

// TouchUp forgets a finger
func (t *TouchZoneInput) TouchUp(id int) {
	for i := range t.touches {
		if t.touches[i].id == id {
			t.touches = append(t.touches[:i], t.touches[i+1:]...)
			return
		}
	}
}

// InMoveZone reports whether a touch starting at p drives movement
func InMoveZone(field PlayField, p Vec2) bool {
	if field.Vertical {
		return p.Y < field.Height*2/3
	}
	return p.X < field.Width/2
}

// Sample implements InputAdapter
func (t *TouchZoneInput) Sample(ctx SampleContext) Intent {
	in := Intent{FireCooldown: t.cfg.TouchCooldown, Aim: defaultAim(ctx)}

	moving := false
	for _, tp := range t.touches {
		if InMoveZone(ctx.Field, tp.start) {
			if !moving {
				in.Move = Movement{
					Kind:   MoveSteer,
					Target: tp.pos,
					Arrive: ctx.Field.Scaled(t.cfg.ArriveRadius),
				}
				moving = true
			}
		} else {
			in.Fire = true
		}
	}
	t.consume(&in)
	return in
}

// Reset implements InputAdapter
func (t *TouchZoneInput) Reset() {
	t.touches = t.touches[:0]
	t.latches = latches{}
}

// Joystick is a virtual analog stick. Dir is the knob offset divided by
// the base radius, so each component is in [-1, 1].
type Joystick struct {
	Active bool
	Center Vec2
	Radius float64
	Knob   Vec2
	Dir    Vec2
}

// Press activates the stick with its base at center
func (j *Joystick) Press(center Vec2, radius float64) {
	j.Active = true
	j.Center = center
	j.Radius = radius
	j.Knob = Vec2{}
	j.Dir = Vec2{}
}

// Drag moves the knob toward point, clamped to the base radius
func (j *Joystick) Drag(point Vec2) {
	if !j.Active || j.Radius <= 0 {
		return
	}
	off := point.Sub(j.Center)
	if l := off.Len(); l > j.Radius {
		off = off.Scale(j.Radius / l)
	}
	j.Knob = off
	j.Dir = Vec2{
		X: math.Max(-1, math.Min(off.X/j.Radius, 1)),
		Y: math.Max(-1, math.Min(off.Y/j.Radius, 1)),
	}
}

// Release centers and deactivates the stick
func (j *Joystick) Release() {
	j.Active = false
	j.Knob = Vec2{}
	j.Dir = Vec2{}
}

// Deflected reports whether either axis is outside the dead zone
func (j *Joystick) Deflected(deadZone float64) bool {
	return j.Active && (math.Abs(j.Dir.X) > deadZone || math.Abs(j.Dir.Y) > deadZone)
}

// DualStickInput drives movement from the left stick and aims and fires
// with the right one
type DualStickInput struct {
	latches

	cfg   InputConfig
	Left  Joystick
	Right Joystick
}

// NewDualStickInput creates a two-stick touch adapter
func NewDualStickInput(cfg InputConfig) *DualStickInput {
	return &DualStickInput{cfg: cfg}
}

// Sample implements InputAdapter
func (d *DualStickInput) Sample(ctx SampleContext) Intent {
	f := ctx.Field
	in := Intent{Aim: defaultAim(ctx)}
	if f.Vertical {
		in.FireCooldown = d.cfg.DualStickCooldownVert
	} else {
		in.FireCooldown = d.cfg.DualStickCooldownLand
	}

	if d.Left.Deflected(d.cfg.DeadZone) {
		speed := ctx.PlayerSpeed
		if f.Vertical {
			speed *= d.cfg.VerticalSpeedFactor
		}
		in.Move = Movement{Kind: MoveDirect, Velocity: d.Left.Dir.Scale(speed)}
	}

	if d.Right.Active {
		in.Fire = true
		if d.Right.Deflected(d.cfg.DeadZone) {
			dist := f.LongAxis() * d.cfg.ShootDistanceFactor
			in.Aim = ctx.Player.Add(d.Right.Dir.Scale(dist))
		}
	}

	d.consume(&in)
	return in
}

// Reset implements InputAdapter
func (d *DualStickInput) Reset() {
	d.Left.Release()
	d.Right.Release()
	d.latches = latches{}
}

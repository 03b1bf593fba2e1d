package game

import (
	"fmt"
	"time"
)

// Tint is a 0xRRGGBB multiply color; NoTint leaves a sprite unchanged
type Tint uint32

const NoTint Tint = 0

// RGB splits the tint into channel factors in [0, 1]
func (t Tint) RGB() (r, g, b float64) {
	if t == NoTint {
		return 1, 1, 1
	}
	return float64(t>>16&0xff) / 255, float64(t>>8&0xff) / 255, float64(t&0xff) / 255
}

// SpriteKind selects the artwork for a sprite
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteEnemy
	SpriteProjectile
)

// SpriteID names one on-screen sprite. Entity IDs are reused by pooled
// projectiles, so the renderer may keep per-sprite state between frames.
type SpriteID struct {
	Kind   SpriteKind
	Entity EntityID
}

func (id SpriteID) String() string {
	switch id.Kind {
	case SpritePlayer:
		return fmt.Sprintf("player/%d", id.Entity)
	case SpriteEnemy:
		return fmt.Sprintf("enemy/%d", id.Entity)
	default:
		return fmt.Sprintf("projectile/%d", id.Entity)
	}
}

// TextID names a HUD or overlay label
type TextID string

const (
	TextScore    TextID = "score"
	TextHealth   TextID = "health"
	TextWave     TextID = "wave"
	TextPause    TextID = "pause"
	TextGameOver TextID = "game-over"
	TextRestart  TextID = "restart"
)

// Renderer draws what the core tells it to. Implementations are expected to
// treat every call as "state for this frame".
type Renderer interface {
	PlaceSprite(id SpriteID, x, y, rotation, scale, alpha float64, tint Tint)
	SetText(id TextID, text string)
	SetVisible(id TextID, visible bool)
}

// Audio plays the looping background track
type Audio interface {
	PlayLoop(track string)
	Pause()
	Resume()
	Stop()
}

// Timers schedules one-shot callbacks; there is no cancellation
type Timers interface {
	DelayedCall(d time.Duration, fn func())
}

// NopRenderer discards everything
type NopRenderer struct{}

func (NopRenderer) PlaceSprite(SpriteID, float64, float64, float64, float64, float64, Tint) {}
func (NopRenderer) SetText(TextID, string) {}
func (NopRenderer) SetVisible(TextID, bool) {}

// NopAudio is used by headless runs
type NopAudio struct{}

func (NopAudio) PlayLoop(string) {}
func (NopAudio) Pause() {}
func (NopAudio) Resume() {}
func (NopAudio) Stop() {}

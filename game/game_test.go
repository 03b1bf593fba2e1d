package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// stubInput replays a fixed intent, consuming one-shot flags
type stubInput struct {
	intent Intent
	resets int
}

func (s *stubInput) Sample(SampleContext) Intent {
	in := s.intent
	s.intent.TogglePause = false
	s.intent.Restart = false
	return in
}

func (s *stubInput) Reset() {
	s.resets++
	s.intent = Intent{}
}

type recordingAudio struct {
	calls []string
}

func (a *recordingAudio) PlayLoop(track string) { a.calls = append(a.calls, "play:"+track) }
func (a *recordingAudio) Pause() { a.calls = append(a.calls, "pause") }
func (a *recordingAudio) Resume() { a.calls = append(a.calls, "resume") }
func (a *recordingAudio) Stop() { a.calls = append(a.calls, "stop") }

func (a *recordingAudio) count(call string) int {
	n := 0
	for _, c := range a.calls {
		if c == call {
			n++
		}
	}
	return n
}

type sprite struct {
	x, y, rotation, scale, alpha float64
	tint                         Tint
}

type recordingRenderer struct {
	sprites map[SpriteID]sprite
	texts   map[TextID]string
	visible map[TextID]bool
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		sprites: map[SpriteID]sprite{},
		texts:   map[TextID]string{},
		visible: map[TextID]bool{},
	}
}

func (r *recordingRenderer) PlaceSprite(id SpriteID, x, y, rotation, scale, alpha float64, tint Tint) {
	r.sprites[id] = sprite{x, y, rotation, scale, alpha, tint}
}
func (r *recordingRenderer) SetText(id TextID, text string) { r.texts[id] = text }
func (r *recordingRenderer) SetVisible(id TextID, visible bool) { r.visible[id] = visible }

func newTestGame(t *testing.T, w, h float64, touch bool, input InputAdapter) (*Game, *recordingAudio) {
	t.Helper()
	audio := &recordingAudio{}
	g := NewGame(w, h, Options{
		Config: DefaultConfig(),
		Logger: zerolog.Nop(),
		Audio:  audio,
		Input:  input,
		Rand:   rand.New(rand.NewSource(1)),
		Touch:  touch,
	})
	return g, audio
}

func killAll(g *Game) {
	for _, e := range g.enemies {
		e.Alive = false
	}
}

func TestNewGameStartsWaveOne(t *testing.T) {
	g, audio := newTestGame(t, 1920, 1080, false, &stubInput{})

	s := g.Session()
	if s.Wave != 1 || s.EnemiesPerWave != 10 || s.EnemySpeed != 100 || s.Score != 0 || s.Phase != PhaseRunning {
		t.Errorf("session = %+v", s)
	}
	if len(g.Enemies()) != 10 {
		t.Errorf("wave 1 enemies = %d", len(g.Enemies()))
	}
	if g.Player().Pos != g.Field().Center() {
		t.Errorf("player at %+v, want center", g.Player().Pos)
	}
	if audio.count("play:background") != 1 {
		t.Errorf("audio = %v", audio.calls)
	}
}

func TestWaveProgression(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})

	want := []struct {
		wave, perWave int
		speed         float64
	}{
		{2, 12, 115},
		{3, 14, 130},
		{4, 16, 145},
		{5, 18, 160},
		{6, 20, 175},
		{7, 20, 190},
	}
	for _, w := range want {
		killAll(g)
		g.Update(0)

		s := g.Session()
		if s.Wave != w.wave || s.EnemiesPerWave != w.perWave || s.EnemySpeed != w.speed {
			t.Fatalf("after clearing: wave %d, per wave %d, speed %v; want %d, %d, %v",
				s.Wave, s.EnemiesPerWave, s.EnemySpeed, w.wave, w.perWave, w.speed)
		}
		// Spawning ran exactly once
		if len(g.Enemies()) != w.perWave {
			t.Fatalf("wave %d has %d enemies, want %d", w.wave, len(g.Enemies()), w.perWave)
		}
	}
}

func TestNoWaveAdvanceWhileEnemiesRemain(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})
	for _, e := range g.enemies[1:] {
		e.Alive = false
	}
	g.Update(0)
	if g.Session().Wave != 1 || len(g.Enemies()) != 1 {
		t.Errorf("wave %d with %d enemies", g.Session().Wave, len(g.Enemies()))
	}
}

func TestEnemiesHomeOnPlayer(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})
	before := make(map[EntityID]float64)
	for _, e := range g.enemies {
		before[e.ID] = e.Pos.DistanceTo(g.player.Pos)
	}

	g.Update(100 * time.Millisecond)
	for _, e := range g.enemies {
		got := e.Pos.DistanceTo(g.player.Pos)
		if !approx(before[e.ID]-got, 10) {
			t.Errorf("enemy %d closed %v px in 100ms, want 10", e.ID, before[e.ID]-got)
		}
		if !approx(e.Vel.Len(), 100) {
			t.Errorf("enemy speed = %v", e.Vel.Len())
		}
	}
}

func TestGameOverExactlyOnce(t *testing.T) {
	g, audio := newTestGame(t, 1920, 1080, false, &stubInput{})
	g.player.Health = 1

	e := g.enemies[0]
	if got := g.Combat().HitPlayer(e); got != HitFatal {
		t.Fatalf("outcome = %v", got)
	}
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v", g.Phase())
	}
	if g.player.Tint != 0xff0000 {
		t.Errorf("tint = %#x, want red", g.player.Tint)
	}

	g.player.Invulnerable = false
	g.Combat().HitPlayer(g.enemies[1])
	g.endGame(nil)
	g.TogglePause()

	if audio.count("stop") != 1 {
		t.Errorf("stop called %d times", audio.count("stop"))
	}
	if g.player.Health != 0 {
		t.Errorf("health = %d", g.player.Health)
	}
	if g.Phase() != PhaseGameOver {
		t.Errorf("pause toggled out of game over: %v", g.Phase())
	}

	// Nothing moves after game over
	pos := g.enemies[2].Pos
	g.Update(time.Second)
	if g.enemies[2].Pos != pos {
		t.Error("enemies moved after game over")
	}
}

func TestRestartResetsEverything(t *testing.T) {
	input := &stubInput{}
	g, audio := newTestGame(t, 1920, 1080, false, input)

	// Play into a worn state
	g.session.Score = 420
	g.session.Defeated = 42
	killAll(g)
	g.Update(0)
	killAll(g)
	g.Update(0)
	g.pool.Fire(g.pool.Acquire(), g.player.Pos, Vec2{}, g.field)
	g.player.Pos = Vec2{X: 10, Y: 10}
	g.nextFireAt = time.Hour
	g.player.Health = 1
	g.Combat().HitPlayer(g.enemies[0])
	if g.Phase() != PhaseGameOver {
		t.Fatal("setup did not reach game over")
	}

	g.Restart()

	s := g.Session()
	want := NewSession(DefaultConfig().Waves)
	if s != want {
		t.Errorf("session = %+v, want %+v", s, want)
	}
	p := g.Player()
	if p.Health != 3 || p.Invulnerable || p.InvulnerableFor != 0 || p.Tint != NoTint || p.Pos != g.field.Center() {
		t.Errorf("player = %+v", p)
	}
	if g.pool.ActiveCount() != 0 {
		t.Errorf("projectiles survived restart: %d", g.pool.ActiveCount())
	}
	if len(g.enemies) != 10 {
		t.Errorf("enemies after restart = %d, want a fresh wave of 10", len(g.enemies))
	}
	if g.Clock() != 0 || g.nextFireAt != 0 || g.scheduler.Pending() != 0 {
		t.Errorf("clock %v, next fire %v, pending %d", g.Clock(), g.nextFireAt, g.scheduler.Pending())
	}
	if input.resets != 1 {
		t.Errorf("input reset %d times", input.resets)
	}
	if audio.count("play:background") != 2 {
		t.Errorf("audio = %v", audio.calls)
	}
}

func TestRestartOnlyFromGameOver(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})
	g.session.Score = 50
	g.Restart()
	if g.Session().Score != 50 {
		t.Error("restart while running reset the session")
	}
}

func TestRestartViaIntent(t *testing.T) {
	input := &stubInput{}
	g, _ := newTestGame(t, 1920, 1080, false, input)
	g.player.Health = 1
	g.Combat().HitPlayer(g.enemies[0])

	input.intent.Restart = true
	g.Update(16 * time.Millisecond)
	if g.Phase() != PhaseRunning || g.Player().Health != 3 {
		t.Errorf("phase %v health %d after restart intent", g.Phase(), g.Player().Health)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	input := &stubInput{}
	g, audio := newTestGame(t, 1920, 1080, false, input)
	g.Combat().HitPlayer(g.enemies[0])
	left := g.player.InvulnerableFor

	input.intent.TogglePause = true
	g.Update(16 * time.Millisecond)
	if g.Phase() != PhasePaused {
		t.Fatalf("phase = %v", g.Phase())
	}

	clock := g.Clock()
	positions := make([]Vec2, len(g.enemies))
	for i, e := range g.enemies {
		positions[i] = e.Pos
	}
	for i := 0; i < 10; i++ {
		g.Update(time.Second)
	}
	if g.Clock() != clock {
		t.Errorf("clock moved while paused: %v -> %v", clock, g.Clock())
	}
	if g.player.InvulnerableFor != left {
		t.Errorf("invulnerability decayed while paused: %v -> %v", left, g.player.InvulnerableFor)
	}
	for i, e := range g.enemies {
		if e.Pos != positions[i] {
			t.Errorf("enemy %d moved while paused", i)
		}
	}

	input.intent.TogglePause = true
	g.Update(0)
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v after second toggle", g.Phase())
	}
	if audio.count("pause") != 1 || audio.count("resume") != 1 {
		t.Errorf("audio = %v", audio.calls)
	}
}

func TestPauseFreezesProjectiles(t *testing.T) {
	pointer := NewPointerInput(DefaultConfig().Input)
	g, _ := newTestGame(t, 1920, 1080, false, pointer)

	pointer.SetPointer(960, 100)
	pointer.SetButton(true)
	g.Update(16 * time.Millisecond)
	active := g.Pool().Active()
	if len(active) != 1 {
		t.Fatalf("%d projectiles active, want 1", len(active))
	}
	shot := active[0]

	pointer.RequestPause()
	g.Update(16 * time.Millisecond)
	if g.Phase() != PhasePaused {
		t.Fatalf("phase = %v", g.Phase())
	}
	pos, life := shot.Pos, shot.Lifespan

	for i := 0; i < 10; i++ {
		g.Update(time.Second)
	}
	if shot.Pos != pos {
		t.Errorf("projectile moved while paused: %+v -> %+v", pos, shot.Pos)
	}
	if shot.Lifespan != life {
		t.Errorf("lifespan decayed while paused: %v -> %v", life, shot.Lifespan)
	}
	if !shot.Active || g.Pool().ActiveCount() != 1 {
		t.Error("projectile expired while paused")
	}
}

func TestNewGameConfigDefaults(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantCell   float64
		wantHealth int
	}{
		{"partial config", Config{CellSize: 64, Player: PlayerConfig{MaxHealth: 5}}, 64, 5},
		{"invalid config", Config{CellSize: 64, Input: InputConfig{DeadZone: 2}}, 128, 3},
		{"zero config", Config{}, 128, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame(1920, 1080, Options{Config: tt.cfg, Logger: zerolog.Nop(), Rand: rand.New(rand.NewSource(1))})
			if got := g.Config().CellSize; got != tt.wantCell {
				t.Errorf("cell size = %v, want %v", got, tt.wantCell)
			}
			if got := g.Player().MaxHealth; got != tt.wantHealth {
				t.Errorf("max health = %d, want %d", got, tt.wantHealth)
			}
		})
	}
}

func TestPointerFireCooldownScenario(t *testing.T) {
	cfg := DefaultConfig()
	pointer := NewPointerInput(cfg.Input)
	g, _ := newTestGame(t, 1920, 1080, false, pointer)
	if g.Player().Pos != (Vec2{X: 960, Y: 540}) {
		t.Fatalf("player at %+v", g.Player().Pos)
	}

	pointer.SetPointer(1500, 540)
	pointer.SetButton(true)

	g.Update(0)
	if g.Pool().ActiveCount() != 1 {
		t.Fatalf("shot at t=0 not fired: %d active", g.Pool().ActiveCount())
	}
	g.Update(50 * time.Millisecond)
	if g.Pool().ActiveCount() != 1 {
		t.Fatalf("shot at t=50 not dropped: %d active", g.Pool().ActiveCount())
	}
	g.Update(50 * time.Millisecond)
	if g.Pool().ActiveCount() != 2 {
		t.Fatalf("shot at t=100 not fired: %d active", g.Pool().ActiveCount())
	}
}

func TestFireCooldownNotArmedWhenPoolExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Projectiles.PoolSize = 1
	pointer := NewPointerInput(cfg.Input)
	g := NewGame(1920, 1080, Options{Config: cfg, Logger: zerolog.Nop(), Input: pointer, Rand: rand.New(rand.NewSource(3))})

	pointer.SetPointer(1500, 540)
	pointer.SetButton(true)
	g.Update(0)
	held := g.Pool().Active()[0]
	armed := g.nextFireAt

	g.Update(200 * time.Millisecond)
	if g.nextFireAt != armed {
		t.Errorf("cooldown re-armed without a shot: %v -> %v", armed, g.nextFireAt)
	}

	g.pool.Release(held)
	g.Update(10 * time.Millisecond)
	if g.Pool().ActiveCount() != 1 {
		t.Error("freed projectile was not fired on the next frame")
	}
}

func TestDualStickScenario(t *testing.T) {
	cfg := DefaultConfig()
	sticks := NewDualStickInput(cfg.Input)
	g, _ := newTestGame(t, 480, 853, true, sticks)
	if !g.Field().Vertical {
		t.Fatal("480x853 touch field should be vertical")
	}

	sticks.Left.Press(Vec2{X: 80, Y: 700}, 50)
	sticks.Left.Drag(Vec2{X: 130, Y: 700})
	g.Update(16 * time.Millisecond)

	want := Vec2{X: cfg.Player.Speed * 0.8}
	if got := g.Player().Vel; !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Errorf("velocity = %+v, want %+v", got, want)
	}

	sticks.Left.Release()
	g.Update(16 * time.Millisecond)
	if got := g.Player().Vel; got != (Vec2{}) {
		t.Errorf("velocity after release = %+v", got)
	}
}

func TestPlayerClampedToField(t *testing.T) {
	pointer := NewPointerInput(DefaultConfig().Input)
	g, _ := newTestGame(t, 1920, 1080, false, pointer)
	pointer.SetPointer(-500, -500)

	for i := 0; i < 100; i++ {
		g.Update(100 * time.Millisecond)
		if g.Phase() != PhaseRunning {
			break
		}
	}
	p := g.Player().Pos
	if p.X < 0 || p.Y < 0 || p.X > g.Field().Width || p.Y > g.Field().Height {
		t.Errorf("player left the field: %+v", p)
	}
}

func TestResizeKeepsPositions(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})
	enemy := g.enemies[0].Pos
	player := g.player.Pos

	g.Resize(800, 600)
	if g.Field().Width != 800 {
		t.Fatalf("field = %+v", g.Field())
	}
	if g.enemies[0].Pos != enemy || g.player.Pos != player {
		t.Error("resize moved entities")
	}

	g.Update(0)
	p := g.player.Pos
	if p.X > 800 || p.Y > 450 {
		t.Errorf("player not clamped into the new field: %+v", p)
	}
}

func TestPresent(t *testing.T) {
	input := &stubInput{}
	g, _ := newTestGame(t, 1920, 1080, false, input)
	r := newRecordingRenderer()
	g.Present(r)

	if len(r.sprites) != 1+len(g.enemies) {
		t.Errorf("sprites = %d, want player + %d enemies", len(r.sprites), len(g.enemies))
	}
	if r.texts[TextScore] != "Score: 0" || r.texts[TextHealth] != "Health: 3" || r.texts[TextWave] != "Wave: 1" {
		t.Errorf("hud = %v", r.texts)
	}
	if r.visible[TextPause] || r.visible[TextGameOver] {
		t.Errorf("overlays visible while running: %v", r.visible)
	}

	g.player.Health = 1
	g.session.Score = 30
	g.Combat().HitPlayer(g.enemies[0])
	r = newRecordingRenderer()
	g.Present(r)
	if !r.visible[TextGameOver] || !r.visible[TextRestart] {
		t.Errorf("game over overlay hidden: %v", r.visible)
	}
	if want := "Game Over!\nFinal Score: 30\nWaves Completed: 0"; r.texts[TextGameOver] != want {
		t.Errorf("game over text = %q, want %q", r.texts[TextGameOver], want)
	}
	ps := r.sprites[SpriteID{Kind: SpritePlayer, Entity: g.player.ID}]
	if ps.tint != 0xff0000 {
		t.Errorf("player tint = %#x", ps.tint)
	}
}

func TestPresentPauseOverlay(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})
	g.TogglePause()
	r := newRecordingRenderer()
	g.Present(r)
	if !r.visible[TextPause] {
		t.Error("pause text hidden while paused")
	}
}

func TestSnapshot(t *testing.T) {
	g, _ := newTestGame(t, 1920, 1080, false, &stubInput{})
	s := g.Snapshot()
	if s.Wave != 1 || s.Health != 3 || len(s.Enemies) != 10 || s.Phase != PhaseRunning {
		t.Errorf("snapshot = %+v", s)
	}
	if s.Player.Pos != g.Field().Center() {
		t.Errorf("player = %+v", s.Player)
	}
}

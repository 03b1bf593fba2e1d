package frontend

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"wavesurvivor/game"
)

// Frame steps longer than this are clamped to prevent large jumps
const maxFrameStep = 100 * time.Millisecond

var (
	letterboxColor  = color.RGBA{8, 8, 16, 255}
	backgroundColor = color.RGBA{20, 20, 40, 255}
)

// AppOptions wires an App
type AppOptions struct {
	Game    *game.Game
	Router  *InputRouter
	Sprites *Sprites
	// Profiler is optional; nil disables captures on frame drops
	Profiler     *Profiler
	FPSThreshold float64
	Logger       zerolog.Logger
	Rand         *rand.Rand
}

// App implements ebiten.Game around a game.Game
type App struct {
	game      *game.Game
	router    *InputRouter
	renderer  *Renderer
	backdrop  *Backdrop
	particles *ParticleSystem
	watcher   *hitWatcher
	monitor   *FrameMonitor
	profiler  *Profiler
	debug     DebugState
	logger    zerolog.Logger

	lastUpdate time.Time
	screenW    int
	screenH    int
}

// NewApp creates the ebiten adapter
func NewApp(opts AppOptions) *App {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &App{
		game:      opts.Game,
		router:    opts.Router,
		renderer:  NewRenderer(opts.Sprites),
		backdrop:  NewBackdrop(rng, opts.Game.Field()),
		particles: NewParticleSystem(rng),
		watcher:   newHitWatcher(),
		monitor:   NewFrameMonitor(opts.FPSThreshold),
		profiler:  opts.Profiler,
		logger:    opts.Logger,
	}
}

// Update advances the game by the wall-clock time since the last frame
func (a *App) Update() error {
	now := time.Now()
	frame, dt := frameTimes(now, a.lastUpdate, ebiten.TPS())
	a.lastUpdate = now

	if a.screenW > 0 && a.screenH > 0 {
		a.game.Resize(float64(a.screenW), float64(a.screenH))
	}

	cmd := a.router.Poll(a.view())
	if cmd.ToggleDebug {
		a.debug.Toggle()
	}
	if cmd.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.watcher.observe(a.game)
	a.game.Update(dt)
	a.watcher.react(a.game, a.particles)

	if a.game.Phase() != game.PhasePaused {
		secs := dt.Seconds()
		a.backdrop.Update(secs, a.game.Player().Vel, a.game.Field())
		a.particles.Update(secs)
	}

	// The monitor sees the real frame time, stalls included
	if a.monitor.Tick(frame) {
		a.frameDropped()
	}
	return nil
}

// frameTimes returns the wall-clock frame length and the simulation step,
// which is the frame clamped to maxFrameStep. The first frame is one tick.
func frameTimes(now, last time.Time, tps int) (frame, dt time.Duration) {
	frame = time.Second / time.Duration(max(tps, 1))
	if !last.IsZero() {
		frame = now.Sub(last)
	}
	return frame, min(frame, maxFrameStep)
}

func (a *App) frameDropped() {
	c := newCapture(a.monitor.FPS(), a.game.Snapshot())
	a.logger.Warn().
		Float64("fps", c.FPS).
		Int("wave", c.Wave).
		Int("enemies", c.Enemies).
		Int("projectiles", c.Projectiles).
		Msg("frame rate drop")
	if a.profiler == nil {
		return
	}
	if err := a.profiler.CaptureProfile(c); err != nil {
		a.logger.Debug().Err(err).Msg("profile capture skipped")
	}
}

// view describes the current frame to the input router
func (a *App) view() View {
	f := a.game.Field()
	v := View{
		Field:   f,
		Origin:  fieldOrigin(f, a.screenW, a.screenH),
		Phase:   a.game.Phase(),
		Restart: a.renderer.LabelRect(game.TextRestart, f),
	}
	if f.Touch {
		v.PauseButton = pauseButtonRect(f)
	}
	return v
}

// Draw renders the frame
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(letterboxColor)

	f := a.game.Field()
	origin := fieldOrigin(f, a.screenW, a.screenH)
	vector.DrawFilledRect(screen, float32(origin.X), float32(origin.Y), float32(f.Width), float32(f.Height), backgroundColor, false)

	// Everything in the field is clipped to it
	bounds := image.Rect(int(origin.X), int(origin.Y), int(origin.X+f.Width), int(origin.Y+f.Height))
	field := screen.SubImage(bounds).(*ebiten.Image)

	a.backdrop.Draw(field, origin)
	if a.debug.ShowGrid {
		drawGrid(field, origin, a.game.CollisionWorld())
	}
	a.particles.Draw(field, origin)
	drawIndicators(field, origin, f, a.game.Enemies())

	a.game.Present(a.renderer)
	a.renderer.Draw(field, origin, f)

	if d, ok := a.router.Adapter().(*game.DualStickInput); ok {
		drawJoystick(field, origin, d.Left)
		drawJoystick(field, origin, d.Right)
	}
	if f.Touch {
		drawPauseButton(field, origin, pauseButtonRect(f))
	}

	if a.debug.ShowGrid {
		ebitenutil.DebugPrintAt(screen, debugStats(a.monitor.FPS(), a.game.Snapshot()), 4, screen.Bounds().Dy()-16)
	}
}

// Layout uses the window size as the logical screen
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.screenW, a.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// hitWatcher turns state changes across one Update into particle bursts
type hitWatcher struct {
	phase   game.Phase
	health  int
	enemies map[game.EntityID]game.Vec2
}

func newHitWatcher() *hitWatcher {
	return &hitWatcher{enemies: make(map[game.EntityID]game.Vec2, 32)}
}

// observe records the state before an Update
func (w *hitWatcher) observe(g *game.Game) {
	w.phase = g.Phase()
	w.health = g.Player().Health
	clear(w.enemies)
	for _, e := range g.Enemies() {
		if e.Alive {
			w.enemies[e.ID] = e.Pos
		}
	}
}

// react bursts where enemies vanished and where the player lost health
func (w *hitWatcher) react(g *game.Game, ps *ParticleSystem) {
	if w.phase == game.PhaseGameOver && g.Phase() == game.PhaseRunning {
		ps.Clear()
		return
	}

	for _, e := range g.Enemies() {
		if e.Alive {
			delete(w.enemies, e.ID)
		}
	}
	for _, pos := range w.enemies {
		ps.Burst(pos, KillBurst)
	}

	if p := g.Player(); p.Health < w.health {
		ps.Burst(p.Pos, HitBurst)
	}
}

package autopilot

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/rs/zerolog"

	"wavesurvivor/game"
)

// ErrNoDecide is returned for scripts that do not define a decide function
var ErrNoDecide = errors.New("script must define a 'decide' function")

// DefaultBudget bounds a single decide call
const DefaultBudget = 50 * time.Millisecond

// ScriptRunner executes a JavaScript bot with goja. The script is run once
// to define its globals; decide is then called with a BotContext every frame,
// so scripts may keep state between calls.
type ScriptRunner struct {
	mu     sync.Mutex
	name   string
	vm     *goja.Runtime
	decide goja.Callable
	budget time.Duration
}

// NewScriptRunner compiles and runs code, then looks up its decide function
func NewScriptRunner(name, code string) (*ScriptRunner, error) {
	prog, err := goja.Compile(name, code, false)
	if err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	vm := goja.New()
	if _, err := vm.RunProgram(prog); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	decide, ok := goja.AssertFunction(vm.Get("decide"))
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoDecide)
	}

	return &ScriptRunner{
		name:   name,
		vm:     vm,
		decide: decide,
		budget: DefaultBudget,
	}, nil
}

// LoadScript reads a bot script from disk
func LoadScript(path string) (*ScriptRunner, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return NewScriptRunner(filepath.Base(path), string(code))
}

// Name returns the script's file or source name
func (r *ScriptRunner) Name() string {
	return r.name
}

// Decide calls the script's decide function. A call that outlives the
// runner's budget is interrupted and reported as an error.
func (r *ScriptRunner) Decide(ctx BotContext) (BotDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return BotDecision{}, fmt.Errorf("failed to serialize context: %w", err)
	}
	ctxObj, err := r.vm.RunString(fmt.Sprintf("(%s)", ctxJSON))
	if err != nil {
		return BotDecision{}, fmt.Errorf("failed to parse context: %w", err)
	}

	timer := time.AfterFunc(r.budget, func() {
		r.vm.Interrupt("decide exceeded its time budget")
	})
	result, err := r.decide(goja.Undefined(), ctxObj)
	timer.Stop()
	r.vm.ClearInterrupt()
	if err != nil {
		return BotDecision{}, fmt.Errorf("decide function failed: %w", err)
	}

	var decision BotDecision
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return decision, nil
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return BotDecision{}, fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return BotDecision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, string(resultJSON))
	}
	return decision, nil
}

// ScriptBot drives the game from a script. The first script error switches
// it to the built-in bot for the rest of the run.
type ScriptBot struct {
	runner   *ScriptRunner
	fallback *Bot
	logger   zerolog.Logger
	failed   bool
}

// NewScriptBot wraps runner; fallback takes over if the script fails
func NewScriptBot(runner *ScriptRunner, fallback *Bot, logger zerolog.Logger) *ScriptBot {
	return &ScriptBot{
		runner:   runner,
		fallback: fallback,
		logger:   logger.With().Str("script", runner.Name()).Logger(),
	}
}

// Failed reports whether the script has been abandoned
func (b *ScriptBot) Failed() bool {
	return b.failed
}

// Sample implements game.InputAdapter
func (b *ScriptBot) Sample(ctx game.SampleContext) game.Intent {
	if b.failed {
		return b.fallback.Sample(ctx)
	}

	bc := BuildBotContext(ctx)
	decision, err := b.runner.Decide(bc)
	if err != nil {
		b.failed = true
		b.logger.Warn().Err(err).Msg("bot script failed, switching to built-in bot")
		return b.fallback.Sample(ctx)
	}
	return b.intentFrom(ctx, bc, decision)
}

func (b *ScriptBot) intentFrom(ctx game.SampleContext, bc BotContext, d BotDecision) game.Intent {
	f := ctx.Field
	in := game.Intent{FireCooldown: b.fallback.cooldown(f), Fire: d.Shoot}

	switch {
	case d.TargetX != nil && d.TargetY != nil:
		in.Move = game.Movement{
			Kind:   game.MoveSteer,
			Target: game.Vec2{X: *d.TargetX, Y: *d.TargetY},
			Arrive: f.Scaled(arriveRadius),
		}
	case d.MoveX != 0 || d.MoveY != 0:
		dir := game.Vec2{X: clampUnit(d.MoveX), Y: clampUnit(d.MoveY)}
		in.Move = game.Movement{Kind: game.MoveDirect, Velocity: dir.Scale(ctx.PlayerSpeed)}
	}

	switch {
	case d.AimX != nil && d.AimY != nil:
		in.Aim = game.Vec2{X: *d.AimX, Y: *d.AimY}
	case len(bc.Enemies) > 0:
		e := bc.Enemies[0]
		in.Aim = PredictiveAim(ctx.Player, game.Vec2{X: e.X, Y: e.Y}, game.Vec2{X: e.VX, Y: e.VY}, ctx.ProjectileSpeed)
	default:
		in.Aim = f.Center()
	}
	return in
}

// Reset implements game.InputAdapter
func (b *ScriptBot) Reset() {
	b.fallback.Reset()
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(v, 1))
}

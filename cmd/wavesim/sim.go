package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"wavesurvivor/autopilot"
	"wavesurvivor/game"
)

type simOptions struct {
	duration   time.Duration
	dt         time.Duration
	seed       int64
	runs       int
	width      int
	height     int
	touch      bool
	script     string
	configPath string
}

// Summary is the result of one simulated run
type Summary struct {
	Seed         int64         `json:"seed"`
	Policy       string        `json:"policy"`
	Frames       int           `json:"frames"`
	Survived     float64       `json:"survived_seconds"`
	GameOver     bool          `json:"game_over"`
	ScriptFailed bool          `json:"script_failed,omitempty"`
	Final        game.Snapshot `json:"final"`
}

// simulate runs until the configured game time has passed or the session ends
func simulate(opts simOptions, logger zerolog.Logger) (Summary, error) {
	if opts.dt <= 0 {
		return Summary{}, fmt.Errorf("frame step must be positive, got %v", opts.dt)
	}

	cfg := game.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := game.LoadConfig(opts.configPath)
		if err != nil {
			return Summary{}, err
		}
		cfg = loaded
	}

	adapter, err := autopilot.NewAutopilot(cfg.Input, opts.touch, opts.script, logger)
	if err != nil {
		return Summary{}, err
	}

	g := game.NewGame(float64(opts.width), float64(opts.height), game.Options{
		Config: cfg,
		Logger: logger.With().Int64("seed", opts.seed).Logger(),
		Input:  adapter,
		Rand:   rand.New(rand.NewSource(opts.seed)),
		Touch:  opts.touch,
	})

	frames := 0
	for g.Clock() < opts.duration && g.Phase() != game.PhaseGameOver {
		g.Update(opts.dt)
		frames++
	}

	s := Summary{
		Seed:     opts.seed,
		Policy:   g.Field().Policy.String(),
		Frames:   frames,
		Survived: g.Clock().Seconds(),
		GameOver: g.Phase() == game.PhaseGameOver,
		Final:    g.Snapshot(),
	}
	if sb, ok := adapter.(*autopilot.ScriptBot); ok {
		s.ScriptFailed = sb.Failed()
	}
	return s, nil
}

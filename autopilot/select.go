package autopilot

import (
	"fmt"

	"github.com/rs/zerolog"

	"wavesurvivor/game"
)

// NewAutopilot returns the built-in bot, or a script bot backed by it when
// scriptPath is set
func NewAutopilot(cfg game.InputConfig, touch bool, scriptPath string, logger zerolog.Logger) (game.InputAdapter, error) {
	bot := NewBot(cfg, touch)
	if scriptPath == "" {
		return bot, nil
	}

	runner, err := LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load autopilot: %w", err)
	}
	logger.Info().Str("script", runner.Name()).Msg("script autopilot loaded")
	return NewScriptBot(runner, bot, logger), nil
}

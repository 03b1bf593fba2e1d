package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"wavesurvivor/autopilot"
	"wavesurvivor/frontend"
	"wavesurvivor/game"
	"wavesurvivor/internal/logging"
)

type options struct {
	configPath string
	touch      bool
	layout     string
	logLevel   string
	width      int
	height     int
	profileFPS float64
	demo       bool
	script     string
}

func main() {
	// A missing .env is fine; anything else is reported
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	var opts options
	flag.StringVar(&opts.configPath, "config", os.Getenv("WAVESURVIVOR_CONFIG"), "YAML tuning file")
	flag.BoolVar(&opts.touch, "touch", envBool("WAVESURVIVOR_TOUCH"), "use touch layouts and controls")
	flag.StringVar(&opts.layout, "layout", "", "touch layout: dual or zones (overrides the config)")
	flag.StringVar(&opts.logLevel, "log-level", os.Getenv("WAVESURVIVOR_LOG_LEVEL"), "log level")
	flag.IntVar(&opts.width, "width", 1280, "initial window width")
	flag.IntVar(&opts.height, "height", 720, "initial window height")
	flag.Float64Var(&opts.profileFPS, "profile-fps", 0, "capture a CPU profile when FPS drops below this (0 disables)")
	flag.BoolVar(&opts.demo, "demo", false, "let the built-in autopilot play")
	flag.StringVar(&opts.script, "script", "", "JavaScript autopilot with a decide(ctx) function (implies -demo)")
	flag.Parse()

	logger, err := logging.New(os.Stderr, opts.logLevel, "wavesurvivor")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts, logger); err != nil {
		logger.Fatal().Err(err).Msg("wavesurvivor failed")
	}
}

func run(opts options, logger zerolog.Logger) error {
	cfg := game.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := game.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.layout != "" {
		cfg.Input.TouchLayout = game.TouchLayout(opts.layout)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	adapter := game.SelectInput(cfg.Input, opts.touch)
	if opts.demo || opts.script != "" {
		bot, err := autopilot.NewAutopilot(cfg.Input, opts.touch, opts.script, logger)
		if err != nil {
			return err
		}
		adapter = bot
	}
	router := frontend.NewInputRouter(adapter)

	g := game.NewGame(float64(opts.width), float64(opts.height), game.Options{
		Config: cfg,
		Logger: logger,
		Audio:  frontend.NewMusic(logger),
		Input:  router,
		Touch:  opts.touch,
	})

	var profiler *frontend.Profiler
	if opts.profileFPS > 0 {
		p, err := frontend.NewProfiler("profiles", logger)
		if err != nil {
			return err
		}
		profiler = p
	}

	app := frontend.NewApp(frontend.AppOptions{
		Game:         g,
		Router:       router,
		Sprites:      frontend.LoadSprites(logger),
		Profiler:     profiler,
		FPSThreshold: opts.profileFPS,
		Logger:       logger,
	})

	ebiten.SetWindowSize(opts.width, opts.height)
	ebiten.SetWindowTitle("Wave Survivor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// envBool reads a boolean env var; unset or unparsable means false
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

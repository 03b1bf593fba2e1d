// Command wavesim plays the game headless with an autopilot and logs a
// summary of each run. It is used for balancing and smoke testing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wavesurvivor/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	var opts simOptions
	flag.DurationVar(&opts.duration, "duration", 2*time.Minute, "game time to simulate per run")
	flag.DurationVar(&opts.dt, "dt", time.Second/60, "fixed frame step")
	flag.Int64Var(&opts.seed, "seed", 1, "random seed of the first run")
	flag.IntVar(&opts.runs, "runs", 1, "number of runs; run i uses seed+i")
	flag.IntVar(&opts.width, "width", 1920, "window width")
	flag.IntVar(&opts.height, "height", 1080, "window height")
	flag.BoolVar(&opts.touch, "touch", false, "simulate a touch device")
	flag.StringVar(&opts.script, "script", "", "JavaScript autopilot with a decide(ctx) function")
	flag.StringVar(&opts.configPath, "config", os.Getenv("WAVESURVIVOR_CONFIG"), "YAML tuning file")
	logLevel := flag.String("log-level", os.Getenv("WAVESURVIVOR_LOG_LEVEL"), "log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel, "wavesim")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	for i := 0; i < max(1, opts.runs); i++ {
		run := opts
		run.seed = opts.seed + int64(i)
		summary, err := simulate(run, logger)
		if err != nil {
			logger.Fatal().Err(err).Int64("seed", run.seed).Msg("simulation failed")
		}
		logger.Info().Interface("summary", summary).Msg("simulation finished")
	}
}

package main

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"github.com/gekko3d/spinny"
	"github.com/gekko3d/spinny/rt/app"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	preset := flag.String("preset", spinny.Preset14, "Cube configuration: 14 or 13")
	configPath := flag.String("config", "", "Optional YAML file overriding the preset")
	debug := flag.Bool("debug", false, "Log limits and per-second frame stats")
	flag.Parse()

	runID := uuid.NewString()[:8]
	logger := spinny.NewDefaultLogger("spinny "+runID, *debug)

	cfg, err := spinny.LoadConfig(*configPath, *preset, logger)
	if err != nil {
		logger.Errorf("Config: %v", err)
		os.Exit(2)
	}
	logger.WithField("preset", cfg.Preset)
	if cfg.Debug {
		logger.SetDebug(true)
	}
	logger.Infof("Preset %s: %d vertices, fov %.3f, auto-spin %v, tilt %s",
		cfg.Preset, cfg.Vertices, cfg.FovY, cfg.AutoSpin, cfg.TiltMode)

	os.Exit(run(cfg, runID, logger))
}

func run(cfg spinny.Config, runID string, logger spinny.Logger) int {
	errs := &spinny.SetupError{}
	if err := glfw.Init(); err != nil {
		errs.Addf("window system unavailable: %v", err)
		return report(logger, errs.Err())
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(spinny.Resolution, spinny.Resolution, "Spinny cube", nil, nil)
	if err != nil {
		errs.Addf("create window: %v", err)
		return report(logger, errs.Err())
	}
	defer window.Destroy()

	application := app.NewApp(cfg, logger)
	application.RunID = runID
	if err := application.Init(window); err != nil {
		return report(logger, err)
	}
	defer application.Release()

	if err := application.Run(&app.WindowScheduler{Window: window}); err != nil {
		return 1
	}
	return 0
}

// report prints every accumulated setup message and returns the exit status.
func report(logger spinny.Logger, err error) int {
	var se *spinny.SetupError
	if errors.As(err, &se) {
		for _, msg := range se.Messages() {
			logger.Errorf("%s", msg)
		}
	} else {
		logger.Errorf("%v", err)
	}
	return 1
}

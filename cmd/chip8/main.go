package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
)

const (
	backendTerminal = "terminal"
	backendSDL2     = "sdl2"
	backendHeadless = "headless"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "rom",
			Usage:  "Path to the ROM file",
			EnvVar: "CHIP8_ROM",
		},
		cli.IntFlag{
			Name:   "speed",
			Usage:  "Instructions executed per frame",
			Value:  cpu.DefaultSpeed,
			EnvVar: "CHIP8_SPEED",
		},
		cli.Int64Flag{
			Name:   "seed",
			Usage:  "Seed for the random number generator (0 = time based)",
			EnvVar: "CHIP8_SEED",
		},
		cli.StringFlag{
			Name:   "limiter",
			Usage:  "Frame limiter: adaptive, ticker or none",
			Value:  timing.KindAdaptive,
			EnvVar: "CHIP8_LIMITER",
		},
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Backend: terminal, sdl2 or headless",
			Value:  backendTerminal,
			EnvVar: "CHIP8_BACKEND",
		},
		cli.BoolFlag{
			Name:   "headless",
			Usage:  "Run the emulator without a graphical interface",
			EnvVar: "CHIP8_HEADLESS",
		},
		cli.IntFlag{
			Name:   "frames",
			Usage:  "Number of frames to run in headless mode (required for headless)",
			EnvVar: "CHIP8_FRAMES",
		},
		cli.IntFlag{
			Name:   "snapshot-interval",
			Usage:  "Save frame snapshots every N frames in headless mode (0 = disabled)",
			EnvVar: "CHIP8_SNAPSHOT_INTERVAL",
		},
		cli.StringFlag{
			Name:   "snapshot-dir",
			Usage:  "Directory to save frame snapshots (default: temp directory)",
			EnvVar: "CHIP8_SNAPSHOT_DIR",
		},
		cli.IntFlag{
			Name:   "scale",
			Usage:  "Window pixels per CHIP-8 pixel (sdl2 backend)",
			Value:  display.DefaultPixelScale,
			EnvVar: "CHIP8_SCALE",
		},
		cli.BoolFlag{
			Name:   "test-pattern",
			Usage:  "Display a test pattern instead of emulation (for debugging display)",
			EnvVar: "CHIP8_TEST_PATTERN",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Minimum log level: debug, info, warn or error",
			Value:  "info",
			EnvVar: "CHIP8_LOG_LEVEL",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return errors.Wrap(err, "invalid log level")
	}

	backendName := c.String("backend")
	if c.Bool("headless") {
		backendName = backendHeadless
	}
	if backendName == backendHeadless {
		// headless runs are for debugging, log everything
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	limiterKind := c.String("limiter")
	if backendName == backendHeadless && !c.IsSet("limiter") {
		limiterKind = timing.KindNone
	}
	limiter, err := timing.New(limiterKind)
	if err != nil {
		return err
	}
	if ticker, ok := limiter.(*timing.TickerLimiter); ok {
		defer ticker.Stop()
	}

	var (
		emu     chip8.Emulator
		vm      *chip8.VM
		romPath string
	)

	if c.Bool("test-pattern") {
		slog.Info("Running in test pattern mode")
		emu = chip8.NewTestPatternEmulator()
	} else {
		romPath = c.String("rom")
		if romPath == "" {
			if c.NArg() == 0 {
				cli.ShowAppHelp(c)
				return errors.New("no ROM path provided")
			}
			romPath = c.Args().Get(0)
		}

		vm, err = chip8.NewWithFile(romPath, chip8.Config{
			Speed: c.Int("speed"),
			Seed:  c.Int64("seed"),
		})
		if err != nil {
			return err
		}
		emu = vm
	}
	emu.SetFrameLimiter(limiter)

	b, err := createBackend(c, backendName, romPath, level)
	if err != nil {
		return err
	}

	config := backend.BackendConfig{
		Title:       windowTitle(romPath),
		Scale:       c.Int("scale"),
		TestPattern: c.Bool("test-pattern"),
	}
	if vm != nil {
		config.Status = vm
	}

	if err := b.Init(config); err != nil {
		return errors.Wrapf(err, "failed to initialize %s backend", backendName)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
		// the terminal backend redirects logging into its panel
		slog.SetDefault(logger)
	}()

	var keys input.KeySink
	if vm != nil {
		keys = vm
	}
	manager := input.NewManager(keys)

	running := true
	registerHandlers(manager, emu, b, func() { running = false })

	for running {
		if err := emu.RunUntilFrame(); err != nil {
			return err
		}

		events, err := b.Update(emu.GetCurrentFrame())
		if err != nil {
			return errors.Wrap(err, "backend update failed")
		}

		for _, evt := range events {
			manager.Trigger(evt.Action, evt.Type)
		}
	}

	if vm != nil {
		slog.Info("Emulation finished", "frames", vm.FrameCount(), "instructions", vm.CPU().Instructions())
	}

	return nil
}

func createBackend(c *cli.Context, name, romPath string, level slog.Level) (backend.Backend, error) {
	switch name {
	case backendHeadless:
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return nil, err
		}

		return headless.New(frames, snapshotConfig), nil
	case backendSDL2:
		return sdl2.New(), nil
	case backendTerminal:
		t := terminal.New()
		t.SetLogLevel(level)
		return t, nil
	}

	return nil, errors.Errorf("unknown backend %q", name)
}

// registerHandlers wires the emulator actions coming from the backend.
// Keypad actions reach the VM through the manager's key sink.
func registerHandlers(manager *input.Manager, emu chip8.Emulator, b backend.Backend, quit func()) {
	for _, act := range []action.Action{
		action.EmulatorPauseToggle,
		action.EmulatorStepFrame,
		action.EmulatorReset,
		action.EmulatorTestPatternCycle,
	} {
		manager.On(act, event.Press, func() {
			emu.HandleAction(act, true)
		})
	}

	if handler, ok := b.(backend.ActionHandler); ok {
		for _, act := range []action.Action{
			action.EmulatorSnapshot,
			action.DebugLogLevelIncrease,
			action.DebugLogLevelDecrease,
		} {
			manager.On(act, event.Press, func() {
				handler.HandleAction(act)
			})
		}
	}

	manager.On(action.EmulatorQuit, event.Press, quit)
}

func windowTitle(romPath string) string {
	if romPath == "" {
		return "CHIP-8"
	}
	name := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	return "CHIP-8 - " + name
}

// Package headless runs the emulator for a fixed number of frames without
// any output, optionally saving PNG snapshots along the way.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	defaultROMName   = "chip8"
	progressInterval = 60
)

var quitEvents = []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}

// SnapshotConfig controls the PNG snapshots taken while running.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // frames between snapshots
	Directory string // where snapshots are written
	ROMName   string // snapshot file name prefix
}

func (c SnapshotConfig) due(frame int) bool {
	return c.Enabled && c.Interval > 0 && frame%c.Interval == 0
}

// Backend counts frames and asks to quit once maxFrames have been shown.
type Backend struct {
	config         backend.BackendConfig
	maxFrames      int
	frameCount     int
	snapshotConfig SnapshotConfig
	snapshots      []string
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config
	h.frameCount = 0
	h.snapshots = nil

	if config.TestPattern {
		slog.Info("Headless test pattern mode, exiting on first frame")
		return nil
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Update records frame and returns a quit event once the last frame is in.
// The last frame is always snapshotted when snapshots are enabled.
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	if h.config.TestPattern {
		return quitEvents, nil
	}

	h.frameCount++
	last := h.frameCount >= h.maxFrames

	if h.snapshotConfig.due(h.frameCount) || (last && h.snapshotConfig.Enabled) {
		h.saveSnapshot(frame)
	}

	if !last {
		if h.frameCount%progressInterval == 0 {
			slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
		}
		return nil, nil
	}

	slog.Info("Headless execution completed",
		"frames", h.frameCount,
		"lit_pixels", frame.LitCount(),
		"snapshots", len(h.snapshots))

	return quitEvents, nil
}

func (h *Backend) Cleanup() error {
	if len(h.snapshots) > 0 {
		slog.Info("PNG snapshots saved", "dir", h.snapshotConfig.Directory, "count", len(h.snapshots))
	}
	return nil
}

// FrameCount returns the number of frames processed so far.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// Snapshots returns the paths of the snapshots written so far.
func (h *Backend) Snapshots() []string {
	return h.snapshots
}

func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.ROMName, h.frameCount)

	path, err := debug.SaveFramePNGToDir(frame, baseName, h.snapshotConfig.Directory)
	if err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.snapshots = append(h.snapshots, path)
}

// CreateSnapshotConfig builds the snapshot settings from command line values.
// An empty directory selects a fresh temporary one; the snapshot prefix is the
// ROM file name without its extension.
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	if interval <= 0 {
		return SnapshotConfig{}, nil
	}

	dir, err := snapshotDirectory(directory)
	if err != nil {
		return SnapshotConfig{}, errors.Wrap(err, "failed to create snapshot directory")
	}

	return SnapshotConfig{
		Enabled:   true,
		Interval:  interval,
		Directory: dir,
		ROMName:   romName(romPath),
	}, nil
}

func snapshotDirectory(directory string) (string, error) {
	if directory == "" {
		return os.MkdirTemp("", "chip8-snapshots-*")
	}
	return directory, os.MkdirAll(directory, 0o755)
}

func romName(romPath string) string {
	name := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return defaultROMName
	}
	return name
}

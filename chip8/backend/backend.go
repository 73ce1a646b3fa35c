package backend

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete emulator platform (rendering + input)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, log panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame and returns the input events collected
	// since the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// ActionHandler is implemented by backends that react to emulator actions
// themselves, e.g. saving a snapshot of the last rendered frame.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// InputEvent is an action triggered on the platform
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title       string
	Scale       int
	TestPattern bool           // Display test pattern instead of emulation
	Status      StatusProvider // Optional, backends may show emulator status
}

// Status is the emulator state a backend may display next to the frame.
type Status struct {
	Paused      bool
	AwaitingKey bool
	SoundActive bool
	Frame       uint64
}

// StatusProvider reports the current emulator status.
type StatusProvider interface {
	Status() Status
}

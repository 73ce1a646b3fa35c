package chip8

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Emulator is the interface for all emulator implementations
type Emulator interface {
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	SetFrameLimiter(limiter timing.Limiter)
}

var (
	_ Emulator = (*VM)(nil)
	_ Emulator = (*TestPatternEmulator)(nil)
)

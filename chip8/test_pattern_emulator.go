package chip8

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frameBuffer *video.FrameBuffer
	patternType int
	frameCount  int
	limiter     timing.Limiter
}

func NewTestPatternEmulator() *TestPatternEmulator {
	e := &TestPatternEmulator{
		frameBuffer: video.NewFrameBuffer(),
		limiter:     timing.NewNoOpLimiter(),
	}
	e.drawPattern()
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.frameCount++
	e.drawPattern()
	e.limiter.WaitForNextFrame()
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.frameBuffer
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.patternType = (e.patternType + 1) % display.TestPatternCount
	e.drawPattern()
	slog.Info("Switched to test pattern", "pattern", e.PatternName())
}

// PatternName returns the name of the pattern being displayed.
func (e *TestPatternEmulator) PatternName() string {
	return display.TestPatternNames[e.patternType]
}

func (e *TestPatternEmulator) drawPattern() {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			e.frameBuffer.SetPixel(x, y, e.patternPixel(x, y))
		}
	}
}

func (e *TestPatternEmulator) patternPixel(x, y int) bool {
	switch e.patternType {
	case 0: // Checkerboard
		return ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0
	case 1: // Scrolling vertical stripes
		offset := e.frameCount / display.TestPatternStripeSpeed
		return ((x+offset)/display.TestPatternStripeWidth)%2 == 0
	case 2: // Border, catches off-by-one clipping at the frame edges
		return x == 0 || y == 0 || x == video.FramebufferWidth-1 || y == video.FramebufferHeight-1
	default: // Scrolling diagonals
		offset := e.frameCount / display.TestPatternDiagonalSpeed
		return ((x+y+offset)/display.TestPatternTileSize)%2 == 0
	}
}

func (e *TestPatternEmulator) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		e.limiter = timing.NewNoOpLimiter()
	} else {
		e.limiter = limiter
	}
}

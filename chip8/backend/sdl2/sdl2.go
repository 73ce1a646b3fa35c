//go:build sdl2

package sdl2

import (
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const bytesPerPixel = 4

// Backend draws the frame in an SDL2 window and reads the keyboard with real
// key releases. Building it requires the SDL2 development libraries and the
// sdl2 build tag; other builds get the stub.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	config   backend.BackendConfig
	events   []backend.InputEvent
	pixels   []byte
	title    string

	currentFrame *video.FrameBuffer
}

func New() *Backend {
	return &Backend{
		pixels: make([]byte, video.FramebufferSize*bytesPerPixel),
	}
}

// Init opens a window of config.Scale pixels per CHIP-8 pixel.
func (s *Backend) Init(config backend.BackendConfig) (err error) {
	s.config = config

	scale := int32(config.Scale)
	if scale <= 0 {
		scale = display.DefaultPixelScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return errors.Wrap(err, "failed to initialize SDL2")
	}
	defer func() {
		if err != nil {
			s.Cleanup()
		}
	}()

	s.window, err = sdl.CreateWindow(config.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.FramebufferWidth*scale, video.FramebufferHeight*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return errors.Wrap(err, "failed to create window")
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return errors.Wrap(err, "failed to create renderer")
	}

	// the texture is native resolution, Copy scales it to the window
	s.texture, err = s.renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth, video.FramebufferHeight)
	if err != nil {
		return errors.Wrap(err, "failed to create texture")
	}

	s.running = true
	s.title = config.Title
	slog.Info("SDL2 backend initialized", "scale", scale, "test_pattern", config.TestPattern)

	return nil
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	if !s.running {
		return nil, nil
	}

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	events := s.events
	s.events = nil

	if !s.running {
		return events, nil
	}

	s.currentFrame = frame
	s.updateTitle()
	if err := s.renderFrame(frame); err != nil {
		return events, err
	}

	return events, nil
}

// updateTitle shows the session status next to the configured title.
func (s *Backend) updateTitle() {
	if s.config.Status == nil {
		return
	}

	status := s.config.Status.Status()
	title := s.config.Title
	switch {
	case status.Paused:
		title += " [paused]"
	case status.AwaitingKey:
		title += " [press a key]"
	}
	if status.SoundActive {
		title += " \u266a"
	}

	if title != s.title {
		s.window.SetTitle(title)
		s.title = title
	}
}

func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	s.running = false
	sdl.Quit()

	return nil
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	if act == action.EmulatorSnapshot {
		patternName := ""
		if s.config.TestPattern {
			patternName = "test_pattern"
		}
		debug.TakeSnapshot(s.currentFrame, patternName)
	}
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.events = append(s.events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})

	case *sdl.KeyboardEvent:
		// the keypad state is level-triggered, repeats carry no information
		if e.Repeat != 0 {
			return
		}

		act, ok := lookupKeyName(sdl.GetKeyName(e.Keysym.Sym))
		if !ok {
			return
		}

		_, isKeypad := action.KeypadKey(act)
		switch {
		case e.Type == sdl.KEYDOWN:
			if act == action.EmulatorQuit {
				s.running = false
			}
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Press})
		case e.Type == sdl.KEYUP && isKeypad:
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	for i, on := range frame.ToSlice() {
		c := display.PixelColor(on)
		idx := i * bytesPerPixel

		// ABGR byte order for little-endian RGBA8888
		s.pixels[idx] = c.A
		s.pixels[idx+1] = c.B
		s.pixels[idx+2] = c.G
		s.pixels[idx+3] = c.R
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*bytesPerPixel); err != nil {
		return errors.Wrap(err, "failed to update texture")
	}

	off := display.PixelOff
	s.renderer.SetDrawColor(off.R, off.G, off.B, off.A)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()

	return nil
}

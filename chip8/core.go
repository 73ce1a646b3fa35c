package chip8

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// VM is a CHIP-8 session: memory, interpreter, screen and keypad, driven one
// frame at a time.
type VM struct {
	cpu    *cpu.CPU
	mem    *memory.Memory
	screen *video.Screen
	keypad *memory.Keypad

	rom        []byte
	limiter    timing.Limiter
	paused     bool
	stepFrame  bool
	frameCount uint64
}

// New creates a session with an empty program.
func New(cfg Config) *VM {
	vm := &VM{
		mem:    memory.New(),
		screen: video.NewScreen(),
		keypad: memory.NewKeypad(),
	}
	vm.cpu = cpu.New(vm.mem, vm.screen, vm.keypad, cfg.cpuConfig())
	vm.SetFrameLimiter(cfg.Limiter)

	return vm
}

// NewWithROM creates a session running rom.
func NewWithROM(rom []byte, cfg Config) (*VM, error) {
	vm := New(cfg)
	if err := vm.Load(rom); err != nil {
		return nil, err
	}
	return vm, nil
}

// NewWithFile creates a session running the ROM stored at path.
func NewWithFile(path string, cfg Config) (*VM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read ROM")
	}

	vm, err := NewWithROM(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load ROM %s", path)
	}

	return vm, nil
}

// Load starts a new session with rom: memory is cleared and the font reloaded,
// the program copied to memory.ProgramStart and the interpreter reset.
// A ROM that does not fit is rejected and the current session is left as is.
func (vm *VM) Load(rom []byte) error {
	if err := vm.mem.LoadProgram(rom); err != nil {
		return err
	}

	vm.rom = append(vm.rom[:0], rom...)
	vm.Reset()
	slog.Info("Loaded ROM", "bytes", len(rom))

	return nil
}

// Reset restarts the current program from a clean machine state.
func (vm *VM) Reset() {
	vm.mem.Reset()
	// vm.rom already passed LoadProgram in Load
	_ = vm.mem.LoadProgram(vm.rom)
	vm.cpu.Reset()
	vm.screen.Reset()
	vm.keypad.Reset()
	vm.paused = false
	vm.stepFrame = false
	vm.frameCount = 0
	vm.limiter.Reset()
	slog.Debug("Session reset")
}

// RunUntilFrame runs one frame worth of instructions, ticks the timers and
// presents the screen, then waits on the frame limiter. While paused no
// instructions run unless a single frame step was requested.
// A non-nil error means the program faulted; the session cannot continue.
func (vm *VM) RunUntilFrame() error {
	defer vm.limiter.WaitForNextFrame()

	if vm.paused && !vm.stepFrame {
		return nil
	}
	vm.stepFrame = false

	alreadyFaulted := vm.cpu.State() == cpu.Faulted
	vm.frameCount++

	if err := vm.cpu.Drive(); err != nil {
		var execErr *cpu.ExecutionError
		if !alreadyFaulted && errors.As(err, &execErr) {
			slog.Error("Program halted", "opcode", execErr.Opcode.String(), "pc", execErr.PC, "error", execErr.Err)
		}
		return errors.Wrapf(err, "frame %d", vm.frameCount)
	}

	return nil
}

func (vm *VM) GetCurrentFrame() *video.FrameBuffer {
	return vm.screen.Frame()
}

// HandleAction applies an input action to the session.
func (vm *VM) HandleAction(act action.Action, pressed bool) {
	if key, ok := action.KeypadKey(act); ok {
		if pressed {
			vm.PressKey(key)
		} else {
			vm.ReleaseKey(key)
		}
		return
	}

	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		vm.TogglePause()
	case action.EmulatorStepFrame:
		vm.StepFrame()
	case action.EmulatorReset:
		slog.Info("Resetting session")
		vm.Reset()
	}
}

// PressKey marks key as held and hands it to a pending key wait.
func (vm *VM) PressKey(key uint8) {
	vm.keypad.Press(key)
	vm.cpu.DeliverKey(key)
}

func (vm *VM) ReleaseKey(key uint8) {
	vm.keypad.Release(key)
}

func (vm *VM) TogglePause() {
	vm.paused = !vm.paused
	if vm.paused {
		slog.Info("Paused", "frame", vm.frameCount)
	} else {
		slog.Info("Resumed", "frame", vm.frameCount)
		vm.limiter.Reset()
	}
}

// StepFrame runs a single frame on the next RunUntilFrame while paused.
func (vm *VM) StepFrame() {
	if !vm.paused {
		return
	}
	vm.stepFrame = true
	slog.Debug("Stepping one frame", "frame", vm.frameCount+1)
}

func (vm *VM) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		vm.limiter = timing.NewNoOpLimiter()
	} else {
		vm.limiter = limiter
	}
}

// Status reports the session state for display by backends.
func (vm *VM) Status() backend.Status {
	return backend.Status{
		Paused:      vm.paused,
		AwaitingKey: vm.cpu.State() == cpu.AwaitingKey,
		SoundActive: vm.cpu.SoundActive(),
		Frame:       vm.frameCount,
	}
}

func (vm *VM) CPU() *cpu.CPU {
	return vm.cpu
}

func (vm *VM) Memory() *memory.Memory {
	return vm.mem
}

func (vm *VM) Paused() bool {
	return vm.paused
}

func (vm *VM) FrameCount() uint64 {
	return vm.frameCount
}

// Keypad returns the key held state read by the interpreter.
func (vm *VM) Keypad() *memory.Keypad {
	return vm.keypad
}

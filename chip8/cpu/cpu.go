package cpu

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/valerio/go-chip8/chip8/memory"
)

const (
	// DisplayWidth and DisplayHeight bound the coordinates passed to Display.SetPixel.
	DisplayWidth  = 64
	DisplayHeight = 32

	// DefaultSpeed is the number of instructions executed per drive cycle.
	DefaultSpeed = 10

	registerCount = 16
)

// Display is the surface the interpreter draws on.
type Display interface {
	// SetPixel toggles the pixel at (x, y) and returns true if it ended unset.
	SetPixel(x, y int) bool
	Clear()
	// Present flushes the current frame, called once per drive cycle.
	Present()
}

// Keypad reports the held state of the 16 logical keys.
type Keypad interface {
	IsPressed(key uint8) bool
}

// State is the execution state of the interpreter.
type State uint8

const (
	// Running executes instructions on every drive cycle.
	Running State = iota
	// AwaitingKey is entered by FX0A and left by DeliverKey.
	AwaitingKey
	// Faulted is terminal: an instruction failed and the session cannot continue.
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Config tunes the interpreter.
type Config struct {
	// Speed is the number of instructions per drive cycle, DefaultSpeed if <= 0.
	Speed int
	// Seed feeds the CXNN random source. Zero seeds from the clock.
	Seed int64
}

// CPU holds the machine state and executes instructions against it.
type CPU struct {
	v  [registerCount]uint8
	i  uint16
	pc uint16

	stack      Stack
	delayTimer uint8
	soundTimer uint8

	state        State
	waitRegister uint8
	fault        error

	speed        int
	seed         int64
	rng          *rand.Rand
	instructions uint64

	memory  *memory.Memory
	display Display
	keypad  Keypad
}

// New returns a CPU in its initial state, executing from memory.ProgramStart.
func New(mem *memory.Memory, display Display, keypad Keypad, cfg Config) *CPU {
	speed := cfg.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &CPU{
		speed:   speed,
		seed:    seed,
		memory:  mem,
		display: display,
		keypad:  keypad,
	}
	c.Reset()

	return c
}

// Reset restores the initial machine state. Memory is not touched.
// The random source is reseeded, so a reset session replays the same values.
func (c *CPU) Reset() {
	c.v = [registerCount]uint8{}
	c.i = 0
	c.pc = memory.ProgramStart
	c.stack.Reset()
	c.delayTimer = 0
	c.soundTimer = 0
	c.state = Running
	c.waitRegister = 0
	c.fault = nil
	c.instructions = 0
	c.rng = rand.New(rand.NewSource(c.seed))
}

// Drive runs one drive cycle: up to Speed instructions, a timer tick and a
// present. While awaiting a key no instructions run and timers hold, but the
// frame is still presented. A fault stops the cycle and is returned from
// every later call.
func (c *CPU) Drive() error {
	if c.state == Faulted {
		return c.fault
	}

	for n := 0; n < c.speed && c.state == Running; n++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	if c.state == Running {
		c.tickTimers()
	}
	c.display.Present()

	return nil
}

// Step fetches, decodes and executes a single instruction.
// It does nothing while awaiting a key.
func (c *CPU) Step() error {
	switch c.state {
	case Faulted:
		return c.fault
	case AwaitingKey:
		return nil
	}

	pc := c.pc
	op := Opcode(c.memory.ReadWord(pc))
	c.pc = (c.pc + 2) & memory.AddressMask
	c.instructions++

	instr := Decode(op)
	if instr == nil {
		return c.raise(op, pc, ErrUnknownOpcode)
	}
	if err := instr(c, op); err != nil {
		return c.raise(op, pc, err)
	}

	return nil
}

// DeliverKey hands a key press to a pending FX0A. It returns false, and
// changes nothing, unless the CPU is awaiting a key and key is in 0x0-0xF.
func (c *CPU) DeliverKey(key uint8) bool {
	if c.state != AwaitingKey || key >= registerCount {
		return false
	}

	c.v[c.waitRegister] = key
	c.state = Running
	slog.Debug("Key wait resolved", "key", key, "register", c.waitRegister)

	return true
}

func (c *CPU) raise(op Opcode, pc uint16, err error) error {
	c.fault = &ExecutionError{Opcode: op, PC: pc, Err: err}
	c.state = Faulted
	return c.fault
}

func (c *CPU) awaitKey(register uint8) {
	c.waitRegister = register
	c.state = AwaitingKey
	slog.Debug("Awaiting key", "register", register)
}

func (c *CPU) tickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

func (c *CPU) jump(address uint16) {
	c.pc = address & memory.AddressMask
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc = (c.pc + 2) & memory.AddressMask
	}
}

func (c *CPU) keyPressed(key uint8) bool {
	if key >= registerCount {
		return false
	}
	return c.keypad.IsPressed(key)
}

func (c *CPU) PC() uint16 {
	return c.pc
}

func (c *CPU) I() uint16 {
	return c.i
}

// V returns general purpose register Vr, r taken modulo 16.
func (c *CPU) V(r uint8) uint8 {
	return c.v[r&0xF]
}

func (c *CPU) DelayTimer() uint8 {
	return c.delayTimer
}

func (c *CPU) SoundTimer() uint8 {
	return c.soundTimer
}

// SoundActive reports whether the sound timer is running, i.e. a tone should play.
func (c *CPU) SoundActive() bool {
	return c.soundTimer > 0
}

func (c *CPU) State() State {
	return c.state
}

// Fault returns the error that faulted the CPU, nil otherwise.
func (c *CPU) Fault() error {
	return c.fault
}

func (c *CPU) StackDepth() int {
	return c.stack.Len()
}

// Instructions returns the number of instructions executed since the last reset.
func (c *CPU) Instructions() uint64 {
	return c.instructions
}

func (c *CPU) Speed() int {
	return c.speed
}

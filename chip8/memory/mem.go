package memory

import (
	"github.com/pkg/errors"

	"github.com/valerio/go-chip8/chip8/bit"
)

const (
	// Size is the amount of addressable memory, 4KB.
	Size = 0x1000
	// AddressMask reduces any 16 bit address into the 4KB address space.
	AddressMask = Size - 1
	// ProgramStart is where ROMs are loaded and where execution starts.
	ProgramStart = 0x200
	// MaxProgramSize is the largest ROM that fits between ProgramStart and the end of memory.
	MaxProgramSize = Size - ProgramStart
)

// ErrProgramTooLarge is returned when a ROM does not fit in program memory.
var ErrProgramTooLarge = errors.New("program too large")

// Memory is the 4KB CHIP-8 address space.
//
// Every access wraps modulo 4KB: reads and writes never fault, an address
// past 0xFFF refers to the low end of memory again.
type Memory struct {
	data [Size]byte
}

// New returns memory with the built-in font loaded at FontStart and
// everything else zeroed.
func New() *Memory {
	m := &Memory{}
	m.loadFont()
	return m
}

// Reset zeroes all memory and reloads the font.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	m.loadFont()
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&AddressMask]
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address&AddressMask] = value
}

// ReadWord returns the big-endian 16 bit word stored at address and address+1.
func (m *Memory) ReadWord(address uint16) uint16 {
	return bit.Combine(m.Read(address), m.Read(address+1))
}

// LoadProgram copies rom into memory starting at ProgramStart.
// Memory is left untouched if the ROM is larger than MaxProgramSize.
func (m *Memory) LoadProgram(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes, max %d", len(rom), MaxProgramSize)
	}

	copy(m.data[ProgramStart:], rom)
	return nil
}

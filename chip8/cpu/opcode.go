package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// Opcode is a 16 bit instruction word, fetched big-endian from memory.
type Opcode uint16

// Family returns the high nibble, used for the first level of dispatch.
func (op Opcode) Family() uint8 {
	return bit.Nibble(uint16(op), 3)
}

// X returns the register index in the second nibble.
func (op Opcode) X() uint8 {
	return bit.Nibble(uint16(op), 2)
}

// Y returns the register index in the third nibble.
func (op Opcode) Y() uint8 {
	return bit.Nibble(uint16(op), 1)
}

// N returns the lowest nibble.
func (op Opcode) N() uint8 {
	return bit.Nibble(uint16(op), 0)
}

// NN returns the low byte.
func (op Opcode) NN() uint8 {
	return bit.Low(uint16(op))
}

// NNN returns the low 12 bits, an address.
func (op Opcode) NNN() uint16 {
	return uint16(op) & 0x0FFF
}

func (op Opcode) String() string {
	return fmt.Sprintf("0x%04X", uint16(op))
}

// Instruction executes a decoded opcode against the CPU state.
// PC has already been advanced past the opcode when it runs.
type Instruction func(c *CPU, op Opcode) error

// Decode returns the instruction for op, or nil if op is not a valid opcode.
func Decode(op Opcode) Instruction {
	switch op.Family() {
	case 0x0:
		switch op {
		case 0x00E0:
			return opcode00E0
		case 0x00EE:
			return opcode00EE
		}
		return nil
	case 0x8:
		return aluInstructions[op.N()]
	case 0xE:
		return keyInstructions[op.NN()]
	case 0xF:
		return miscInstructions[op.NN()]
	default:
		return instructions[op.Family()]
	}
}

// instructions is indexed by opcode family. Families with sub-dispatch are nil.
var instructions = [16]Instruction{
	0x1: opcode1NNN,
	0x2: opcode2NNN,
	0x3: opcode3XNN,
	0x4: opcode4XNN,
	0x5: opcode5XY0,
	0x6: opcode6XNN,
	0x7: opcode7XNN,
	0x9: opcode9XY0,
	0xA: opcodeANNN,
	0xB: opcodeBNNN,
	0xC: opcodeCXNN,
	0xD: opcodeDXYN,
}

// aluInstructions is the 8XY? family, indexed by the low nibble.
var aluInstructions = [16]Instruction{
	0x0: opcode8XY0,
	0x1: opcode8XY1,
	0x2: opcode8XY2,
	0x3: opcode8XY3,
	0x4: opcode8XY4,
	0x5: opcode8XY5,
	0x6: opcode8XY6,
	0x7: opcode8XY7,
	0xE: opcode8XYE,
}

var keyInstructions = map[uint8]Instruction{
	0x9E: opcodeEX9E,
	0xA1: opcodeEXA1,
}

var miscInstructions = map[uint8]Instruction{
	0x07: opcodeFX07,
	0x0A: opcodeFX0A,
	0x15: opcodeFX15,
	0x18: opcodeFX18,
	0x1E: opcodeFX1E,
	0x29: opcodeFX29,
	0x33: opcodeFX33,
	0x55: opcodeFX55,
	0x65: opcodeFX65,
}

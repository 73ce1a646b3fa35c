package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Fields(t *testing.T) {
	op := Opcode(0xD1A5)

	assert.Equal(t, uint8(0xD), op.Family())
	assert.Equal(t, uint8(0x1), op.X())
	assert.Equal(t, uint8(0xA), op.Y())
	assert.Equal(t, uint8(0x5), op.N())
	assert.Equal(t, uint8(0xA5), op.NN())
	assert.Equal(t, uint16(0x1A5), op.NNN())
	assert.Equal(t, "0xD1A5", op.String())
}

func TestDecode(t *testing.T) {
	valid := []Opcode{
		0x00E0, 0x00EE, 0x1ABC, 0x2ABC, 0x3A12, 0x4A12, 0x5AB0, 0x5001, 0x6A12, 0x7A12,
		0x8AB0, 0x8AB1, 0x8AB2, 0x8AB3, 0x8AB4, 0x8AB5, 0x8AB6, 0x8AB7, 0x8ABE,
		0x9AB0, 0xAABC, 0xBABC, 0xCA12, 0xDAB5, 0xEA9E, 0xEAA1,
		0xFA07, 0xFA0A, 0xFA15, 0xFA18, 0xFA1E, 0xFA29, 0xFA33, 0xFA55, 0xFA65,
	}
	for _, op := range valid {
		assert.NotNilf(t, Decode(op), "opcode %s should decode", op)
	}

	unknown := []Opcode{
		0x0000, 0x0001, 0x00E1, 0x00FF, 0x0123,
		0x8AB8, 0x8AB9, 0x8ABD, 0x8ABF,
		0xEA9F, 0xEA00,
		0xFA00, 0xFA08, 0xFA30, 0xFAFF,
	}
	for _, op := range unknown {
		assert.Nilf(t, Decode(op), "opcode %s should not decode", op)
	}
}

package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-chip8/chip8/memory"
)

func TestCPU_New(t *testing.T) {
	m := newTestMachine(t)

	assert.Equal(t, uint16(memory.ProgramStart), m.cpu.PC())
	assert.Equal(t, uint16(0), m.cpu.I())
	assert.Equal(t, Running, m.cpu.State())
	assert.Equal(t, DefaultSpeed, m.cpu.Speed())
	for r := uint8(0); r < 16; r++ {
		assert.Zero(t, m.cpu.V(r))
	}
}

func TestCPU_PCAdvancesByTwo(t *testing.T) {
	tests := []Opcode{
		0x00E0, 0x6A12, 0x7A12, 0x8AB0, 0x8AB1, 0x8AB2, 0x8AB3, 0x8AB4, 0x8AB5,
		0x8AB6, 0x8AB7, 0x8ABE, 0xA123, 0xCA12, 0xDAB1, 0xFA07, 0xFA15, 0xFA18,
		0xFA1E, 0xFA29, 0xFA33, 0xFA55, 0xFA65,
		// non-taken skips
		0x3A12, 0x4A00, 0x9AB0, 0xEA9E,
	}

	for _, op := range tests {
		t.Run(op.String(), func(t *testing.T) {
			m := newTestMachine(t, uint16(op))
			m.steps(t, 1)
			assert.Equal(t, uint16(memory.ProgramStart+2), m.cpu.PC())
		})
	}
}

func TestCPU_Skips(t *testing.T) {
	tests := []struct {
		name    string
		setup   []uint16
		op      uint16
		skipped bool
	}{
		{"3XNN equal", []uint16{0x6A12}, 0x3A12, true},
		{"3XNN not equal", []uint16{0x6A12}, 0x3A13, false},
		{"4XNN not equal", []uint16{0x6A12}, 0x4A13, true},
		{"4XNN equal", []uint16{0x6A12}, 0x4A12, false},
		{"5XY0 equal", []uint16{0x6A12, 0x6B12}, 0x5AB0, true},
		{"5XY0 not equal", []uint16{0x6A12, 0x6B13}, 0x5AB0, false},
		{"9XY0 not equal", []uint16{0x6A12, 0x6B13}, 0x9AB0, true},
		{"9XY0 equal", []uint16{0x6A12, 0x6B12}, 0x9AB0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, append(tt.setup, tt.op)...)
			m.steps(t, len(tt.setup))

			opAddress := m.cpu.PC()
			m.steps(t, 1)

			want := opAddress + 2
			if tt.skipped {
				want = opAddress + 4
			}
			assert.Equal(t, want, m.cpu.PC())
		})
	}
}

func TestCPU_ALU(t *testing.T) {
	tests := []struct {
		name   string
		x, y   uint8
		op     uint16
		wantX  uint8
		wantVF uint8
	}{
		{"LD", 0x01, 0x02, 0x8AB0, 0x02, 0},
		{"OR", 0xF0, 0x0F, 0x8AB1, 0xFF, 0},
		{"AND", 0xF3, 0x3F, 0x8AB2, 0x33, 0},
		{"XOR", 0xFF, 0x0F, 0x8AB3, 0xF0, 0},
		{"ADD carry", 0xFF, 0x01, 0x8AB4, 0x00, 1},
		{"ADD no carry", 0x10, 0x01, 0x8AB4, 0x11, 0},
		{"SUB borrow", 0x01, 0x02, 0x8AB5, 0xFF, 0},
		{"SUB no borrow", 0x05, 0x02, 0x8AB5, 0x03, 1},
		{"SUB equal", 0x05, 0x05, 0x8AB5, 0x00, 0},
		{"SHR odd", 0x05, 0x00, 0x8AB6, 0x02, 1},
		{"SHR even", 0x04, 0x00, 0x8AB6, 0x02, 0},
		{"SUBN no borrow", 0x02, 0x05, 0x8AB7, 0x03, 1},
		{"SUBN borrow", 0x05, 0x02, 0x8AB7, 0xFD, 0},
		{"SHL high bit", 0x81, 0x00, 0x8ABE, 0x02, 1},
		{"SHL no high bit", 0x41, 0x00, 0x8ABE, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, 0x6A00|uint16(tt.x), 0x6B00|uint16(tt.y), tt.op)
			m.steps(t, 3)

			assert.Equal(t, tt.wantX, m.cpu.V(0xA))
			assert.Equal(t, tt.y, m.cpu.V(0xB))
			assert.Equal(t, tt.wantVF, m.cpu.V(0xF))
		})
	}
}

func TestCPU_ALUWithVFOperand(t *testing.T) {
	// The result is written after the flag, so it wins when X is F.
	m := newTestMachine(t, 0x6FFF, 0x6103, 0x8F14)
	m.steps(t, 3)
	assert.Equal(t, uint8(0x02), m.cpu.V(0xF))

	// The flag is written before the subtraction reads Vx: VF is cleared,
	// 0 > 2 leaves it clear, then 0 - 2 wraps.
	m = newTestMachine(t, 0x6F05, 0x6102, 0x8F15)
	m.steps(t, 3)
	assert.Equal(t, uint8(0xFE), m.cpu.V(0xF))
}

func TestCPU_AddImmediateWraps(t *testing.T) {
	m := newTestMachine(t, 0x6AFF, 0x6F07, 0x7A02)
	m.steps(t, 3)

	assert.Equal(t, uint8(0x01), m.cpu.V(0xA))
	assert.Equal(t, uint8(0x07), m.cpu.V(0xF), "7XNN leaves VF untouched")
}

func TestCPU_Jumps(t *testing.T) {
	m := newTestMachine(t, 0x1ABC)
	m.steps(t, 1)
	assert.Equal(t, uint16(0xABC), m.cpu.PC())

	m = newTestMachine(t, 0x6010, 0xB300)
	m.steps(t, 2)
	assert.Equal(t, uint16(0x310), m.cpu.PC())

	m = newTestMachine(t, 0x60FF, 0xBFFF)
	m.steps(t, 2)
	assert.Equal(t, uint16(0x0FE), m.cpu.PC(), "BNNN wraps into the address space")
}

func TestCPU_CallAndReturn(t *testing.T) {
	// 0x200: CALL 0x206; 0x202: LD V0, 1; 0x204: JP 0x204; 0x206: RET
	m := newTestMachine(t, 0x2206, 0x6001, 0x1204, 0x00EE)

	m.steps(t, 1)
	assert.Equal(t, uint16(0x206), m.cpu.PC())
	assert.Equal(t, 1, m.cpu.StackDepth())

	m.steps(t, 1)
	assert.Equal(t, uint16(0x202), m.cpu.PC())
	assert.Equal(t, 0, m.cpu.StackDepth())

	m.steps(t, 1)
	assert.Equal(t, uint8(1), m.cpu.V(0))
}

func TestCPU_StackOverflow(t *testing.T) {
	// CALL 0x200 recurses forever.
	m := newTestMachine(t, 0x2200)
	m.steps(t, StackDepth)
	assert.Equal(t, StackDepth, m.cpu.StackDepth())

	err := m.cpu.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, Faulted, m.cpu.State())

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, Opcode(0x2200), execErr.Opcode)
	assert.Equal(t, uint16(0x200), execErr.PC)
}

func TestCPU_StackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	err := m.cpu.Step()
	assert.ErrorIs(t, err, ErrStackUnderflow)
	assert.Equal(t, ErrStackUnderflow, errors.Cause(err))
}

func TestCPU_UnknownOpcode(t *testing.T) {
	m := newTestMachine(t, 0x6001, 0x0001)
	m.steps(t, 1)

	err := m.cpu.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOpcode)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, Opcode(0x0001), execErr.Opcode)
	assert.Equal(t, uint16(0x202), execErr.PC)
	assert.Contains(t, err.Error(), "0x0001")
	assert.Contains(t, err.Error(), "0x202")

	// Faults are sticky and nothing else executes.
	pc := m.cpu.PC()
	assert.Equal(t, err, m.cpu.Step())
	assert.Equal(t, err, m.cpu.Drive())
	assert.Equal(t, pc, m.cpu.PC())
	assert.Equal(t, err, m.cpu.Fault())
}

func TestCPU_IndexOperations(t *testing.T) {
	m := newTestMachine(t, 0xA123, 0x6A10, 0xFA1E)
	m.steps(t, 3)
	assert.Equal(t, uint16(0x133), m.cpu.I())

	m = newTestMachine(t, 0xAFFF, 0x6A02, 0xFA1E)
	m.steps(t, 3)
	assert.Equal(t, uint16(0x001), m.cpu.I(), "FX1E wraps into the address space")
}

func TestCPU_BCD(t *testing.T) {
	m := newTestMachine(t, 0xA300, 0x6AFE, 0xFA33)
	m.steps(t, 3)

	assert.Equal(t, byte(2), m.mem.Read(0x300))
	assert.Equal(t, byte(5), m.mem.Read(0x301))
	assert.Equal(t, byte(4), m.mem.Read(0x302))
	assert.Equal(t, uint16(0x300), m.cpu.I())
}

func TestCPU_StoreAndLoadRegisters(t *testing.T) {
	m := newTestMachine(t, 0x6011, 0x6122, 0x6233, 0x6344, 0xA300, 0xF255)
	m.steps(t, 6)

	assert.Equal(t, byte(0x11), m.mem.Read(0x300))
	assert.Equal(t, byte(0x22), m.mem.Read(0x301))
	assert.Equal(t, byte(0x33), m.mem.Read(0x302))
	assert.Equal(t, byte(0x00), m.mem.Read(0x303), "only V0..Vx are stored")
	assert.Equal(t, uint16(0x300), m.cpu.I())

	m = newTestMachine(t, 0x63FF, 0xA300, 0xF165)
	m.mem.Write(0x300, 0xAA)
	m.mem.Write(0x301, 0xBB)
	m.mem.Write(0x302, 0xCC)
	m.steps(t, 3)

	assert.Equal(t, uint8(0xAA), m.cpu.V(0))
	assert.Equal(t, uint8(0xBB), m.cpu.V(1))
	assert.Equal(t, uint8(0x00), m.cpu.V(2))
	assert.Equal(t, uint8(0xFF), m.cpu.V(3))
}

func TestCPU_Random(t *testing.T) {
	m := newTestMachine(t, 0xCA00)
	m.steps(t, 1)
	assert.Zero(t, m.cpu.V(0xA), "CXNN masks with NN")

	program := []uint16{0xC0FF, 0xC1FF, 0xC2FF, 0xC30F}
	a := newTestMachine(t, program...)
	b := newTestMachine(t, program...)
	a.steps(t, 4)
	b.steps(t, 4)

	for r := uint8(0); r < 4; r++ {
		assert.Equal(t, a.cpu.V(r), b.cpu.V(r), "same seed, same sequence")
	}
	assert.LessOrEqual(t, a.cpu.V(3), uint8(0x0F))
}

func TestCPU_Timers(t *testing.T) {
	// LD V0, 3; LD DT, V0; LD ST, V0; JP 0x206
	m := newTestMachine(t, 0x6003, 0xF015, 0xF018, 0x1206)

	require.NoError(t, m.cpu.Drive())
	assert.Equal(t, uint8(2), m.cpu.DelayTimer())
	assert.Equal(t, uint8(2), m.cpu.SoundTimer())
	assert.True(t, m.cpu.SoundActive())

	for i := 0; i < 5; i++ {
		require.NoError(t, m.cpu.Drive())
	}
	assert.Zero(t, m.cpu.DelayTimer(), "timers stop at zero")
	assert.Zero(t, m.cpu.SoundTimer())
	assert.False(t, m.cpu.SoundActive())
}

func TestCPU_ReadDelayTimer(t *testing.T) {
	m := newTestMachine(t, 0x6009, 0xF015, 0xF107)
	m.steps(t, 3)
	assert.Equal(t, uint8(9), m.cpu.V(1))
}

func TestCPU_DriveSpeed(t *testing.T) {
	m := newTestMachine(t, 0x7001, 0x1200)
	m.cpu = New(m.mem, m.screen, m.keypad, Config{Speed: 4, Seed: 1})

	require.NoError(t, m.cpu.Drive())
	assert.Equal(t, uint64(4), m.cpu.Instructions())
	assert.Equal(t, uint8(2), m.cpu.V(0))
	assert.Equal(t, uint64(1), m.screen.PresentCount())
}

func TestCPU_Reset(t *testing.T) {
	m := newTestMachine(t, 0x6A12, 0xA300, 0x2200)
	m.steps(t, 3)

	m.cpu.Reset()
	assert.Equal(t, uint16(memory.ProgramStart), m.cpu.PC())
	assert.Zero(t, m.cpu.V(0xA))
	assert.Zero(t, m.cpu.I())
	assert.Zero(t, m.cpu.StackDepth())
	assert.Zero(t, m.cpu.Instructions())
	assert.Equal(t, Running, m.cpu.State())
}

package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

type testMachine struct {
	cpu    *CPU
	mem    *memory.Memory
	screen *video.Screen
	keypad *memory.Keypad
}

// newTestMachine loads the given opcodes at ProgramStart.
func newTestMachine(t *testing.T, program ...uint16) *testMachine {
	t.Helper()

	rom := make([]byte, 0, len(program)*2)
	for _, op := range program {
		rom = append(rom, bit.High(op), bit.Low(op))
	}

	mem := memory.New()
	require.NoError(t, mem.LoadProgram(rom))

	screen := video.NewScreen()
	keypad := memory.NewKeypad()

	return &testMachine{
		cpu:    New(mem, screen, keypad, Config{Seed: 1}),
		mem:    mem,
		screen: screen,
		keypad: keypad,
	}
}

func (m *testMachine) steps(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, m.cpu.Step())
	}
}

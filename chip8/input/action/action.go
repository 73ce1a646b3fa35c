package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 keypad, one action per logical key 0x0-0xF
	Chip8Key0 Action = iota
	Chip8Key1
	Chip8Key2
	Chip8Key3
	Chip8Key4
	Chip8Key5
	Chip8Key6
	Chip8Key7
	Chip8Key8
	Chip8Key9
	Chip8KeyA
	Chip8KeyB
	Chip8KeyC
	Chip8KeyD
	Chip8KeyE
	Chip8KeyF

	// Emulator features
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorReset
	EmulatorSnapshot
	EmulatorTestPatternCycle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by what handles them.
type Category int

const (
	CategoryKeypad Category = iota
	CategoryEmulator
	CategoryDebug
)

// Info describes an action for help screens and logs.
type Info struct {
	Name     string
	Category Category
}

var infos = map[Action]Info{
	EmulatorPauseToggle:      {"Pause/Resume", CategoryEmulator},
	EmulatorStepFrame:        {"Step frame", CategoryEmulator},
	EmulatorReset:            {"Reset", CategoryEmulator},
	EmulatorSnapshot:         {"Snapshot", CategoryEmulator},
	EmulatorTestPatternCycle: {"Cycle test pattern", CategoryEmulator},
	EmulatorQuit:             {"Quit", CategoryEmulator},
	DebugLogLevelIncrease:    {"Log level up", CategoryDebug},
	DebugLogLevelDecrease:    {"Log level down", CategoryDebug},
}

// GetInfo returns the description of act.
func GetInfo(act Action) Info {
	if key, ok := KeypadKey(act); ok {
		return Info{Name: fmt.Sprintf("Key %X", key), Category: CategoryKeypad}
	}
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Name: fmt.Sprintf("Action(%d)", int(act)), Category: CategoryEmulator}
}

func (a Action) String() string {
	return GetInfo(a).Name
}

// KeypadKey returns the logical key 0x0-0xF for a keypad action.
func KeypadKey(act Action) (uint8, bool) {
	if act < Chip8Key0 || act > Chip8KeyF {
		return 0, false
	}
	return uint8(act - Chip8Key0), true
}

// ForKey returns the keypad action for logical key 0x0-0xF.
func ForKey(key uint8) Action {
	return Chip8Key0 + Action(key&0xF)
}

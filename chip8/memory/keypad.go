package memory

// The computers which originally used CHIP-8 had a 16-key hexadecimal keypad:
//
//	+---+---+---+---+
//	| 1 | 2 | 3 | C |
//	+---+---+---+---+
//	| 4 | 5 | 6 | D |
//	+---+---+---+---+
//	| 7 | 8 | 9 | E |
//	+---+---+---+---+
//	| A | 0 | B | F |
//	+---+---+---+---+

// Key is one of the 16 logical keypad keys, 0x0 to 0xF.
type Key = uint8

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Keypad holds the pressed state of every key.
type Keypad struct {
	pressed uint16
}

// NewKeypad creates a keypad with no keys pressed.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks key as held down. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Press(key Key) {
	if key >= KeyCount {
		return
	}
	k.pressed |= 1 << key
}

// Release marks key as released. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Release(key Key) {
	if key >= KeyCount {
		return
	}
	k.pressed &^= 1 << key
}

// IsPressed reports whether key is currently held down.
// Keys outside 0x0-0xF are never pressed.
func (k *Keypad) IsPressed(key Key) bool {
	if key >= KeyCount {
		return false
	}
	return k.pressed&(1<<key) != 0
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.pressed = 0
}

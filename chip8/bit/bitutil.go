// Package bit has the byte and nibble helpers used to decode opcodes and
// blit sprites.
package bit

// Combine joins two bytes into a big-endian word, high byte first.
func Combine(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// High returns the most significant byte of a word.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Low returns the least significant byte of a word.
func Low(value uint16) uint8 {
	return uint8(value)
}

// Nibble returns the 4 bit group at the given index of a word,
// index 0 being the least significant nibble.
// Example: Nibble(0xABCD, 3) -> 0xA
func Nibble(value uint16, index uint8) uint8 {
	return uint8(value>>(index*4)) & 0x0F
}

// Carry returns the carry out of a+b, 0 or 1.
func Carry(a, b uint8) uint8 {
	return uint8((uint16(a) + uint16(b)) >> 8)
}

// MSB returns bit 7 of value, 0 or 1.
func MSB(value uint8) uint8 {
	return value >> 7
}

// LSB returns bit 0 of value, 0 or 1.
func LSB(value uint8) uint8 {
	return value & 1
}

// SpriteBit reports whether column col of a sprite row is set. Rows are 8
// pixels wide and column 0 is the most significant bit.
func SpriteBit(row uint8, col int) bool {
	if col < 0 || col > 7 {
		return false
	}
	return row&(0x80>>col) != 0
}

package memory

const (
	// FontStart is the address of the first glyph of the built-in font.
	FontStart = 0x000
	// GlyphSize is the number of bytes (rows) of each font glyph.
	GlyphSize = 5
)

// Font holds the 16 hexadecimal digit sprites, 4 pixels wide and 5 rows tall.
// ROMs rely on the exact shapes, FX29 points I at GlyphSize*digit.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the address of the font sprite for the given hex digit.
func GlyphAddress(digit uint8) uint16 {
	return FontStart + uint16(digit)*GlyphSize
}

func (m *Memory) loadFont() {
	copy(m.data[FontStart:], Font[:])
}

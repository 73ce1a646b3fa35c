package render

// Half-block glyphs used to pack two pixel rows into one terminal cell.
const (
	BlockFull  = '█'
	BlockUpper = '▀'
	BlockLower = '▄'
	BlockEmpty = ' '
)

// GetHalfBlockChar returns the character drawing a cell whose upper half
// shows the top pixel and lower half the bottom pixel, in the foreground colour.
func GetHalfBlockChar(top, bottom bool) rune {
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpper
	case bottom:
		return BlockLower
	default:
		return BlockEmpty
	}
}

package display

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for CHIP-8 pixels
	DefaultPixelScale = 10
	// DefaultWindowWidth is the default window width (CHIP-8 width * scale)
	DefaultWindowWidth = 64 * DefaultPixelScale // 640
	// DefaultWindowHeight is the default window height (CHIP-8 height * scale)
	DefaultWindowHeight = 32 * DefaultPixelScale // 320
	// SnapshotScale is the upscaling factor applied to PNG snapshots
	SnapshotScale = 8
)

// Test pattern constants
const (
	// TestPatternCount is the number of available test patterns
	TestPatternCount = 4
	// TestPatternTileSize is the size of tiles for checkerboard and diagonal patterns
	TestPatternTileSize = 4
	// TestPatternStripeWidth is the width of stripes in the stripe pattern
	TestPatternStripeWidth = 2
	// TestPatternStripeSpeed is the animation speed for stripe patterns, in frames per pixel
	TestPatternStripeSpeed = 4
	// TestPatternDiagonalSpeed is the animation speed for diagonal patterns, in frames per pixel
	TestPatternDiagonalSpeed = 8
)

// TestPatternNames names the test patterns, in cycling order.
var TestPatternNames = [TestPatternCount]string{"checkerboard", "stripes", "border", "diagonal"}

// Pixel colours.
var (
	PixelOn  color.RGBA = colornames.White
	PixelOff color.RGBA = colornames.Black
)

// PixelColor returns the colour of a lit or unlit pixel.
func PixelColor(on bool) color.RGBA {
	if on {
		return PixelOn
	}
	return PixelOff
}

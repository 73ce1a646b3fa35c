package video

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// FrameBuffer is a 64x32 monochrome pixel grid, row-major.
type FrameBuffer struct {
	buffer [FramebufferSize]bool
}

// NewFrameBuffer creates a frame buffer with every pixel unset.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// InBounds reports whether (x, y) addresses a pixel of the frame buffer.
func InBounds(x, y int) bool {
	return x >= 0 && x < FramebufferWidth && y >= 0 && y < FramebufferHeight
}

func (fb *FrameBuffer) GetPixel(x, y int) bool {
	return fb.buffer[y*FramebufferWidth+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, on bool) {
	fb.buffer[y*FramebufferWidth+x] = on
}

// Toggle flips the pixel at (x, y) and returns true if it was erased,
// i.e. it went from set to unset.
func (fb *FrameBuffer) Toggle(x, y int) bool {
	idx := y*FramebufferWidth + x
	fb.buffer[idx] = !fb.buffer[idx]
	return !fb.buffer[idx]
}

// Clear unsets every pixel.
func (fb *FrameBuffer) Clear() {
	fb.buffer = [FramebufferSize]bool{}
}

// CopyFrom overwrites this frame buffer with the contents of other.
func (fb *FrameBuffer) CopyFrom(other *FrameBuffer) {
	fb.buffer = other.buffer
}

// LitCount returns the number of set pixels.
func (fb *FrameBuffer) LitCount() int {
	count := 0
	for _, on := range fb.buffer {
		if on {
			count++
		}
	}
	return count
}

func (fb *FrameBuffer) ToSlice() []bool {
	return fb.buffer[:]
}

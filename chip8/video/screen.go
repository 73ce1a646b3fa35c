package video

// Screen is the display the interpreter draws on.
//
// Drawing goes to a back buffer; Present publishes it to the front buffer
// read by backends, so a frame is only ever observed once all of the
// instructions of a drive cycle have run.
type Screen struct {
	back      *FrameBuffer
	front     *FrameBuffer
	presented uint64
}

// NewScreen returns a blank screen.
func NewScreen() *Screen {
	return &Screen{
		back:  NewFrameBuffer(),
		front: NewFrameBuffer(),
	}
}

// SetPixel toggles the pixel at (x, y) and reports whether it was erased.
// Coordinates outside the 64x32 grid are not drawn and never collide.
func (s *Screen) SetPixel(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	return s.back.Toggle(x, y)
}

// Clear unsets every pixel of the frame being drawn.
func (s *Screen) Clear() {
	s.back.Clear()
}

// Present publishes the frame being drawn.
func (s *Screen) Present() {
	s.front.CopyFrom(s.back)
	s.presented++
}

// Reset blanks both the frame being drawn and the presented one.
func (s *Screen) Reset() {
	s.back.Clear()
	s.front.Clear()
	s.presented = 0
}

// Frame returns the last presented frame.
func (s *Screen) Frame() *FrameBuffer {
	return s.front
}

// PresentCount returns how many times Present has been called.
func (s *Screen) PresentCount() uint64 {
	return s.presented
}

//go:build !sdl2

package sdl2

import (
	"github.com/pkg/errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/video"
)

// ErrUnavailable is returned by every call on a binary built without the
// sdl2 tag.
var ErrUnavailable = errors.New("SDL2 backend not available - build with -tags sdl2 to enable")

// Backend lets callers select the SDL2 backend by name in any build and get
// ErrUnavailable from Init when it was not compiled in.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (*Backend) Init(backend.BackendConfig) error {
	return ErrUnavailable
}

func (*Backend) Update(*video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, ErrUnavailable
}

func (*Backend) Cleanup() error {
	return nil
}

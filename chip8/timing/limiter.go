package timing

import (
	"time"

	"github.com/pkg/errors"
)

// Limiter paces the drive cycle to the host frame rate.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// TargetFPS is the rate at which the timers count down and frames are presented.
const TargetFPS = 60

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Second / TargetFPS
}

// Limiter names accepted by New.
const (
	KindAdaptive = "adaptive"
	KindTicker   = "ticker"
	KindNone     = "none"
)

// New returns the limiter identified by kind.
func New(kind string) (Limiter, error) {
	switch kind {
	case KindAdaptive, "":
		return NewAdaptiveLimiter(), nil
	case KindTicker:
		return NewTickerLimiter(), nil
	case KindNone:
		return NewNoOpLimiter(), nil
	}
	return nil, errors.Errorf("unknown frame limiter %q", kind)
}

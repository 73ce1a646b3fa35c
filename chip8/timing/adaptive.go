package timing

import (
	"log/slog"
	"time"
)

const (
	// spinWindow is how long before a deadline the limiter stops sleeping
	// and busy-waits, sleeps overshoot by about that much.
	spinWindow = time.Millisecond
	// maxLag is how far behind a deadline the limiter may fall before it
	// gives up on the missed frames and restarts the cadence.
	maxLag = 5 * time.Millisecond
)

// AdaptiveLimiter keeps frames on a fixed 60 Hz schedule. Each deadline is
// derived from the previous one, not from when the wait returned, so short
// frames don't accumulate drift.
type AdaptiveLimiter struct {
	frame    time.Duration
	deadline time.Time
	resyncs  uint64
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	return &AdaptiveLimiter{frame: FrameDuration()}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	if a.deadline.IsZero() {
		a.deadline = now
	}

	switch behind := now.Sub(a.deadline); {
	case behind > maxLag:
		a.resyncs++
		slog.Debug("Frame limiter behind schedule, resyncing", "behind_ms", behind.Milliseconds(), "resyncs", a.resyncs)
		a.deadline = now
	case behind < 0:
		sleepUntil(a.deadline)
	}

	a.deadline = a.deadline.Add(a.frame)
}

// Reset makes the next frame due immediately.
func (a *AdaptiveLimiter) Reset() {
	a.deadline = time.Time{}
}

func sleepUntil(deadline time.Time) {
	if d := time.Until(deadline); d > spinWindow {
		time.Sleep(d - spinWindow)
	}
	for time.Now().Before(deadline) {
	}
}

package timing

import "time"

// TickerLimiter waits on a time.Ticker firing at TargetFPS. A frame that runs
// longer than FrameDuration only delays the next one, ticks are not queued.
type TickerLimiter struct {
	interval time.Duration
	ticker   *time.Ticker
}

func NewTickerLimiter() *TickerLimiter {
	interval := FrameDuration()
	return &TickerLimiter{
		interval: interval,
		ticker:   time.NewTicker(interval),
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

// Reset restarts the period from now and drops a tick that fired while the
// caller was not waiting.
func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.interval)
	select {
	case <-t.ticker.C:
	default:
	}
}

// Stop releases the ticker, the limiter must not be used afterwards.
func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}

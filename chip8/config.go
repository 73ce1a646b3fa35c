package chip8

import (
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/timing"
)

// Config holds the session settings.
type Config struct {
	// Speed is the number of instructions run per frame, cpu.DefaultSpeed if <= 0.
	Speed int
	// Seed feeds the random number generator, zero picks a time based seed.
	Seed int64
	// Limiter paces RunUntilFrame, nil runs unthrottled.
	Limiter timing.Limiter
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{Speed: cpu.DefaultSpeed}
}

func (c Config) cpuConfig() cpu.Config {
	return cpu.Config{Speed: c.Speed, Seed: c.Seed}
}

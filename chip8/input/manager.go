package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// KeySink receives keypad presses and releases.
type KeySink interface {
	PressKey(key uint8)
	ReleaseKey(key uint8)
}

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]time.Time
	keys          KeySink
	now           func() time.Time
}

func NewManager(keys KeySink) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]time.Time),
		keys:          keys,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}

	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
//
// Keypad actions go straight to the key sink and are never debounced, games
// need every press. Presses of any other action are debounced.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if key, ok := action.KeypadKey(act); ok {
		if m.keys != nil {
			switch evt {
			case event.Press:
				m.keys.PressKey(key)
			case event.Release:
				m.keys.ReleaseKey(key)
			}
		}
		return
	}

	if evt == event.Press {
		now := m.now()
		if last, ok := m.lastTriggered[act]; ok && now.Sub(last) < debounceDuration {
			return
		}
		m.lastTriggered[act] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

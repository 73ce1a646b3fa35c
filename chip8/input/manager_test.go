package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

type recordingSink struct {
	pressed  []uint8
	released []uint8
}

func (r *recordingSink) PressKey(key uint8)   { r.pressed = append(r.pressed, key) }
func (r *recordingSink) ReleaseKey(key uint8) { r.released = append(r.released, key) }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*Manager, *recordingSink, *fakeClock) {
	sink := &recordingSink{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	m := NewManager(sink)
	m.now = clock.now
	return m, sink, clock
}

func TestManager_KeypadRouting(t *testing.T) {
	m, sink, _ := newTestManager()

	m.Trigger(action.Chip8KeyA, event.Press)
	m.Trigger(action.Chip8KeyA, event.Press)
	m.Trigger(action.Chip8KeyA, event.Hold)
	m.Trigger(action.Chip8KeyA, event.Release)

	assert.Equal(t, []uint8{0xA, 0xA}, sink.pressed, "keypad presses are not debounced")
	assert.Equal(t, []uint8{0xA}, sink.released)
}

func TestManager_Debouncing(t *testing.T) {
	tests := []struct {
		name        string
		eventType   event.Type
		timeBetween time.Duration
		wantCalls   int
	}{
		{"rapid press is debounced", event.Press, 100 * time.Millisecond, 1},
		{"slow press is not debounced", event.Press, 400 * time.Millisecond, 2},
		{"release is not debounced", event.Release, 10 * time.Millisecond, 2},
		{"hold is not debounced", event.Hold, 10 * time.Millisecond, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, clock := newTestManager()
			calls := 0
			m.On(action.EmulatorPauseToggle, tt.eventType, func() { calls++ })

			m.Trigger(action.EmulatorPauseToggle, tt.eventType)
			clock.advance(tt.timeBetween)
			m.Trigger(action.EmulatorPauseToggle, tt.eventType)

			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestManager_DebounceIsPerAction(t *testing.T) {
	m, _, _ := newTestManager()
	var got []action.Action
	for _, act := range []action.Action{action.EmulatorSnapshot, action.EmulatorReset} {
		act := act
		m.On(act, event.Press, func() { got = append(got, act) })
	}

	m.Trigger(action.EmulatorSnapshot, event.Press)
	m.Trigger(action.EmulatorReset, event.Press)

	assert.Equal(t, []action.Action{action.EmulatorSnapshot, action.EmulatorReset}, got)
}

func TestManager_MultipleHandlers(t *testing.T) {
	m, _, _ := newTestManager()
	calls := 0
	m.On(action.EmulatorQuit, event.Press, func() { calls++ })
	m.On(action.EmulatorQuit, event.Press, func() { calls++ })

	m.Trigger(action.EmulatorQuit, event.Press)
	m.Trigger(action.EmulatorStepFrame, event.Press)

	assert.Equal(t, 2, calls)
}

func TestManager_NilSink(t *testing.T) {
	m := NewManager(nil)
	assert.NotPanics(t, func() {
		m.Trigger(action.Chip8Key1, event.Press)
	})
}

func TestDefaultKeyMap_KeypadIsBijection(t *testing.T) {
	seen := make(map[uint8]string)
	for name, act := range DefaultKeyMap {
		key, ok := action.KeypadKey(act)
		if !ok {
			continue
		}
		prev, dup := seen[key]
		assert.Falsef(t, dup, "key %X mapped by both %q and %q", key, prev, name)
		seen[key] = name
	}
	assert.Len(t, seen, 16)

	act, ok := GetDefaultMapping("4")
	assert.True(t, ok)
	assert.Equal(t, action.Chip8KeyC, act)

	act, ok = GetDefaultMapping("x")
	assert.True(t, ok)
	assert.Equal(t, action.Chip8Key0, act)
}

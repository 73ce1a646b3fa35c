package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight
	// terminal cells are roughly twice as tall as wide, so each pixel is
	// two cells wide and two pixel rows share a cell
	scaleX = 2

	gameAreaWidth  = width * scaleX
	gameAreaHeight = height / 2
	statusY        = gameAreaHeight + 1
	logPanelHeight = 6
	minTermWidth   = gameAreaWidth + 2
	minTermHeight  = gameAreaHeight + 3
	logBufferSize  = 100
)

// Key expiry timeout - slightly longer than typical key repeat interval.
// Terminals only report key presses, so a key counts as held while it keeps
// repeating.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   *slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent
	signals    chan os.Signal
	now        func() time.Time

	keyStates  map[action.Action]time.Time // Last time each keypad key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame

	currentFrame *video.FrameBuffer // Last rendered frame, for snapshots
}

// New creates a new terminal backend drawing on the controlling terminal
func New() *Backend {
	return NewWithScreen(nil)
}

// NewWithScreen creates a terminal backend drawing on screen, which Init
// initializes. A nil screen selects the controlling terminal.
func NewWithScreen(screen tcell.Screen) *Backend {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	return &Backend{
		screen:   screen,
		logLevel: logLevel,
		now:      time.Now,
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.eventQueue = nil
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "failed to initialize terminal")
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize terminal")
	}
	t.running = true

	t.logBuffer = render.NewLogBuffer(logBufferSize)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	if config.TestPattern {
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized")
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := t.now()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal, quitting", "signal", sig)
		t.quit()
	default:
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	currentlyActive := make(map[action.Action]bool)
	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	t.activeKeys = currentlyActive

	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		patternName := ""
		if t.config.TestPattern {
			patternName = "test_pattern"
		}
		debug.TakeSnapshot(t.currentFrame, patternName)
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

// LogLevel returns the minimum level shown in the log panel.
func (t *Backend) LogLevel() slog.Level {
	return t.logLevel.Level()
}

// SetLogLevel sets the minimum level shown in the log panel.
func (t *Backend) SetLogLevel(level slog.Level) {
	t.logLevel.Set(level)
}

func (t *Backend) quit() {
	t.running = false
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF12:    "F12",
}

// keyName returns the name used in the default mappings for a key event.
func keyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() != tcell.KeyRune {
		name, ok := tcellKeyNameMap[ev.Key()]
		return name, ok
	}
	if ev.Rune() == ' ' {
		return "Space", true
	}
	return string(unicode.ToLower(ev.Rune())), true
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	if ev.Key() == tcell.KeyCtrlC {
		t.quit()
		return
	}

	name, ok := keyName(ev)
	if !ok {
		return
	}
	act, ok := input.GetDefaultMapping(name)
	if !ok {
		return
	}

	if act == action.EmulatorQuit {
		t.quit()
		return
	}

	if action.GetInfo(act).Category == action.CategoryKeypad {
		t.keyStates[act] = now
		return
	}

	slog.Debug("UI event", "key", name, "action", act)
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()
	newLevel := oldLevel
	switch direction {
	case -1:
		switch oldLevel {
		case slog.LevelDebug:
			newLevel = slog.LevelInfo
		case slog.LevelInfo:
			newLevel = slog.LevelWarn
		case slog.LevelWarn:
			newLevel = slog.LevelError
		}
	case 1:
		switch oldLevel {
		case slog.LevelError:
			newLevel = slog.LevelWarn
		case slog.LevelWarn:
			newLevel = slog.LevelInfo
		case slog.LevelInfo:
			newLevel = slog.LevelDebug
		}
	}
	if oldLevel != newLevel {
		t.logLevel.Set(newLevel)
		slog.Info("Log filter changed", "from", oldLevel, "to", newLevel)
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	t.drawTitle(termWidth)
	t.drawFrame(frame)
	t.drawStatus(termWidth)
	t.drawLogs(statusY+1, termWidth, termHeight)
}

func (t *Backend) drawTitle(termWidth int) {
	title := " CHIP-8 "
	if t.config.Title != "" {
		title = fmt.Sprintf(" %s ", t.config.Title)
	}
	if t.config.TestPattern {
		title = " Test Pattern "
	}
	t.drawText(1, 0, termWidth-1, title, tcell.StyleDefault.Foreground(tcell.ColorYellow))
}

func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := frame.GetPixel(x, y)
			bottom := y+1 < height && frame.GetPixel(x, y+1)
			char := render.GetHalfBlockChar(top, bottom)

			screenY := y/2 + 1
			for dx := 0; dx < scaleX; dx++ {
				t.screen.SetContent(x*scaleX+dx, screenY, char, nil, style)
			}
		}
	}
}

func (t *Backend) drawStatus(termWidth int) {
	var parts []string
	if t.config.Status != nil {
		status := t.config.Status.Status()
		parts = append(parts, fmt.Sprintf("frame %d", status.Frame))
		if status.Paused {
			parts = append(parts, "PAUSED")
		}
		if status.AwaitingKey {
			parts = append(parts, "waiting for key")
		}
		if status.SoundActive {
			parts = append(parts, "♪")
		}
	}
	parts = append(parts, fmt.Sprintf("log %s (-/+)", t.logLevel.Level()))
	parts = append(parts, "SPACE=pause O=step F5=reset F12=snapshot ESC=quit")

	t.drawText(0, statusY, termWidth, " "+strings.Join(parts, " | "), tcell.StyleDefault.Foreground(tcell.ColorSilver))
}

func (t *Backend) drawLogs(startY, termWidth, termHeight int) {
	available := min(termHeight-startY, logPanelHeight)
	if available <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(available, t.logLevel.Level()) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		text := render.FormatLogEntry(entry)
		if len(text) > termWidth && termWidth > 3 {
			text = text[:termWidth-3] + "..."
		}
		t.drawText(0, startY+i, termWidth, text, style)
	}
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= maxWidth {
			return
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

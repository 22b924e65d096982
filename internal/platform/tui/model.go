package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/llama-leap/internal/core"
	"github.com/vovakirdan/llama-leap/internal/registry"
)

// helpHeight is the number of rows reserved below the game for key help.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// HostOptions configures a game host.
type HostOptions struct {
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	// QuitOnClose ends the Bubble Tea program once the game is closed.
	// Embedding hosts leave it off and take control back instead.
	QuitOnClose bool
}

// Model is the Bubble Tea model hosting one mounted game.
type Model struct {
	game          registry.Game
	screen        *core.Screen
	sched         *Scheduler
	keys          KeyMap
	help          help.Model
	display       core.DisplayState
	config        core.RuntimeConfig
	logger        *log.Logger
	quitOnClose   bool
	inputAttached bool
	closed        bool
	readRequested bool
	quitting      bool
}

// NewModel creates a host for the given game. It fails with
// core.ErrSurfaceUnavailable when the terminal is too small to draw on.
func NewModel(game registry.Game, opts HostOptions) (Model, error) {
	cfg := opts.Runtime
	screen, err := core.AcquireScreen(cfg.ScreenW, cfg.ScreenH-helpHeight)
	if err != nil {
		return Model{}, fmt.Errorf("tui: mount %s: %w", game.ID(), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:          game,
		screen:        screen,
		sched:         NewScheduler(cfg.TickRate),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		display:       game.Display(),
		config:        cfg,
		logger:        logger,
		quitOnClose:   opts.QuitOnClose,
		inputAttached: true,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Debug("game mounted", "game", m.game.ID(), "rate", m.config.TickRate)
	return m.sched.Start()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleAction applies one normalized input action.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	if a == core.ActionQuit {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}
	if !m.inputAttached {
		return m, nil
	}

	switch a {
	case core.ActionJump:
		if m.display.Mode == core.ModeGameOver {
			return m, nil
		}
		m.observe(m.game.Apply(a))
	case core.ActionRestart:
		m.observe(m.game.Apply(a))
	case core.ActionRead:
		if !m.game.CanRead() {
			return m, nil
		}
		m.readRequested = true
		m.Close()
	case core.ActionClose:
		m.Close()
	}

	if m.closed && m.quitOnClose {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize follows the terminal size. The simulation is in surface
// units, so only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h := msg.Height - helpHeight
	if msg.Width < core.MinScreenW || h < core.MinScreenH {
		m.logger.Warn("terminal too small, keeping previous size",
			"width", msg.Width, "height", msg.Height)
		return m, nil
	}
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks. Ticks from a stopped or replaced
// scheduler are dropped without touching the game.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.sched.Accept(msg) {
		return m, nil
	}
	m.observe(m.game.Tick())
	return m, m.sched.Next()
}

// observe records the latest published DisplayState.
func (m *Model) observe(res core.StepResult) {
	ds, ok := res.Latest()
	if !ok {
		return
	}
	if ds.Mode != m.display.Mode {
		m.logger.Debug("mode changed", "from", m.display.Mode, "to", ds.Mode, "score", ds.Score)
	}
	m.display = ds
}

// Close tears the game down: ticks stop first, then input is detached,
// then the game hands control back through its OnClose.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.sched.Stop()
	m.inputAttached = false
	m.game.Close()
	m.closed = true
	m.logger.Debug("game closed", "game", m.game.ID(), "score", m.display.Score)
}

// Closed reports whether the game has been torn down.
func (m Model) Closed() bool {
	return m.closed
}

// ReadRequested reports whether the game was closed through "Read Message".
func (m Model) ReadRequested() bool {
	return m.readRequested
}

// Display returns the last DisplayState the game published.
func (m Model) Display() core.DisplayState {
	return m.display
}

// InputAttached reports whether input is routed to the game.
func (m Model) InputAttached() bool {
	return m.inputAttached
}

// frame renders the game and host overlays into the screen buffer.
func (m Model) frame() *core.Screen {
	m.game.Render(m.screen)
	drawHUD(m.screen, m.display, m.game, m.keys)
	return m.screen
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.frame()) + "\n" + m.helpLine()
}

// ViewOver renders the game composited over background lines.
// Transparent cells show the background through.
func (m Model) ViewOver(background []string) string {
	return CompositeScreen(m.frame(), background) + "\n" + m.helpLine()
}

// helpLine renders the key hints with the game's own close label,
// so the close affordance is visible in every mode.
func (m Model) helpLine() string {
	keys := m.keys
	keys.Close.SetHelp(keys.Close.Help().Key, m.game.CloseLabel())
	return helpStyle.Render(m.help.View(keys))
}

// Run starts the Bubble Tea program for a standalone game.
func Run(game registry.Game, opts HostOptions) error {
	opts.QuitOnClose = true
	model, err := NewModel(game, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Taps flap
	)

	_, err = p.Run()
	return err
}

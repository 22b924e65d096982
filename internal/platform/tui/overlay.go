package tui

import (
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/llama-leap/internal/core"
	"github.com/vovakirdan/llama-leap/internal/registry"
)

// Placeholder conversation shown behind the game.
var (
	transcriptPrompt = []string{
		"you:  can you plan a three day trip to the andes for me?",
		"",
	}
	transcriptThinking = "kiwi: ..."
	transcriptReply    = []string{
		"kiwi: Day one, acclimatize in Cusco. Day two, the Sacred Valley.",
		"      Day three, an early train to Machu Picchu. Bring layers.",
	}
)

var (
	transcriptStyle = lipgloss.NewStyle().Padding(0, 1)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// OverlayOptions configures the chat stand-in host.
type OverlayOptions struct {
	Runtime    core.RuntimeConfig
	Logger     *log.Logger
	GameID     string
	Variant    string
	ConfigPath string
	// BusyFor is how long the assistant keeps "thinking" after start.
	BusyFor time.Duration
}

type mountMsg struct{}

type busyDoneMsg struct{}

// OverlayModel stands in for a chat view. It mounts a game over its
// transcript while a reply is pending and takes control back on close.
type OverlayModel struct {
	opts      OverlayOptions
	logger    *log.Logger
	busy      *atomic.Bool
	child     *Model
	mountErr  error
	replyOpen bool
	quitting  bool
}

// NewOverlayModel creates the chat stand-in host.
func NewOverlayModel(opts OverlayOptions) OverlayModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	busy := &atomic.Bool{}
	busy.Store(opts.BusyFor > 0)

	return OverlayModel{
		opts:   opts,
		logger: logger,
		busy:   busy,
	}
}

// Init mounts the game and starts the busy timer.
func (m OverlayModel) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return mountMsg{} }}
	if m.opts.BusyFor > 0 {
		cmds = append(cmds, tea.Tick(m.opts.BusyFor, func(time.Time) tea.Msg {
			return busyDoneMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

// Busy reports whether the assistant is still composing.
func (m OverlayModel) Busy() bool {
	return m.busy.Load()
}

// Mounted reports whether a game is currently shown.
func (m OverlayModel) Mounted() bool {
	return m.child != nil
}

// Update handles messages for the chat view and the mounted game.
func (m OverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height

	case busyDoneMsg:
		m.busy.Store(false)
		m.logger.Info("reply ready")
		return m, nil

	case mountMsg:
		return m.mount()
	}

	if m.child != nil {
		return m.updateChild(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "g":
			return m.mount()
		case "enter":
			if !m.Busy() {
				m.replyOpen = true
			}
		}
	}
	return m, nil
}

// mount creates the game. A failed mount is logged and the transcript stays.
func (m OverlayModel) mount() (tea.Model, tea.Cmd) {
	if m.child != nil {
		return m, nil
	}

	logger := m.logger
	game, err := registry.Create(m.opts.GameID, registry.Mount{
		Variant:    m.opts.Variant,
		OnClose:    func() { logger.Info("game closed, back to chat") },
		Busy:       m.busy.Load,
		Seed:       m.opts.Runtime.Seed,
		ConfigPath: m.opts.ConfigPath,
	})
	if err != nil {
		return m.mountFailed(err)
	}

	child, err := NewModel(game, HostOptions{Runtime: m.opts.Runtime, Logger: m.logger})
	if err != nil {
		return m.mountFailed(err)
	}

	m.child = &child
	m.mountErr = nil
	return m, child.Init()
}

func (m OverlayModel) mountFailed(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, core.ErrSurfaceUnavailable) {
		m.logger.Warn("no room for the game", "error", err)
	} else {
		m.logger.Error("could not mount game", "error", err)
	}
	m.mountErr = err
	return m, nil
}

func (m OverlayModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.child.Update(msg)
	child, ok := next.(Model)
	if !ok {
		return m, cmd
	}
	m.child = &child

	if child.Closed() {
		m.replyOpen = child.ReadRequested() || !m.Busy()
		m.child = nil
	}
	return m, cmd
}

// transcript returns the chat lines in their current state.
func (m OverlayModel) transcript() []string {
	lines := append([]string{}, transcriptPrompt...)
	if m.Busy() || (!m.replyOpen && m.child != nil) {
		return append(lines, transcriptThinking)
	}
	return append(lines, transcriptReply...)
}

// View renders the transcript, with the game composited over it while mounted.
func (m OverlayModel) View() string {
	if m.quitting {
		return ""
	}

	if m.child != nil {
		bg := make([]string, 0, len(m.transcript()))
		for _, l := range m.transcript() {
			bg = append(bg, " "+l)
		}
		return m.child.ViewOver(bg)
	}

	var sb strings.Builder
	sb.WriteString(transcriptStyle.Render(strings.Join(m.transcript(), "\n")))
	sb.WriteString("\n\n")
	if m.mountErr != nil {
		sb.WriteString(errorStyle.Render("game unavailable: " + m.mountErr.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle.Render("[g] play Llama Leap  [enter] read reply  [q] quit"))
	return sb.String()
}

// RunOverlay starts the chat stand-in host.
func RunOverlay(opts OverlayOptions) error {
	p := tea.NewProgram(
		NewOverlayModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

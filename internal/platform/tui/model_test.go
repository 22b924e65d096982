package tui

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
	"github.com/vovakirdan/llama-leap/internal/games/llamaleap"
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}

type hostFixture struct {
	game   *llamaleap.Game
	model  Model
	closes int
	busy   bool
}

func newHostFixture(t *testing.T, v llamaleap.Variant, quitOnClose bool) *hostFixture {
	t.Helper()
	f := &hostFixture{}
	g, err := llamaleap.New(config.DefaultLeapConfig(), llamaleap.Options{
		Variant: v,
		Seed:    1,
		OnClose: func() { f.closes++ },
		Busy:    func() bool { return f.busy },
	})
	if err != nil {
		t.Fatalf("llamaleap.New failed: %v", err)
	}
	m, err := NewModel(g, HostOptions{Runtime: testRuntime, QuitOnClose: quitOnClose})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	m.Init()
	f.game = g
	f.model = m
	return f
}

func (f *hostFixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

// tick delivers the tick the scheduler is currently waiting for.
func (f *hostFixture) tick() tea.Cmd {
	return f.send(TickMsg{ID: f.model.sched.id, Tag: f.model.sched.tag})
}

func (f *hostFixture) crash(t *testing.T) {
	t.Helper()
	f.send(runeKey('w'))
	for i := 0; i < 1000; i++ {
		f.tick()
		if f.model.Display().Mode == core.ModeGameOver {
			return
		}
	}
	t.Fatal("round never ended")
}

func TestNewModelRejectsTinyTerminal(t *testing.T) {
	g, err := llamaleap.New(config.DefaultLeapConfig(), llamaleap.Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, size := range [][2]int{{0, 0}, {10, 30}, {80, core.MinScreenH}} {
		cfg := core.RuntimeConfig{ScreenW: size[0], ScreenH: size[1], TickRate: 60}
		if _, err := NewModel(g, HostOptions{Runtime: cfg}); err == nil {
			t.Errorf("size %v should be rejected", size)
		}
	}
}

func TestModelJumpIsImmediate(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, true)

	f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	if f.model.Display().Mode != core.ModePlaying {
		t.Errorf("mode after space = %v, expected PLAYING before any tick", f.model.Display().Mode)
	}
	if v := f.game.Snapshot().Velocity; v != config.DefaultLeapConfig().Physics.JumpImpulse {
		t.Errorf("velocity = %v", v)
	}
}

func TestModelMouseTapJumps(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, true)

	f.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if f.model.Display().Mode != core.ModePlaying {
		t.Errorf("mode after tap = %v, expected PLAYING", f.model.Display().Mode)
	}
}

func TestModelTickAdvancesAndReschedules(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, true)
	f.send(runeKey('w'))
	y := f.game.Snapshot().PlayerY

	if cmd := f.tick(); cmd == nil {
		t.Error("accepted tick should queue the next one")
	}
	if f.game.Snapshot().PlayerY == y {
		t.Error("tick should advance the simulation")
	}

	stale := TickMsg{ID: f.model.sched.id, Tag: f.model.sched.tag - 1}
	if cmd := f.send(stale); cmd != nil {
		t.Error("stale tick should not queue another")
	}
}

func TestTeardownDropsQueuedTick(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, false)
	f.send(runeKey('w'))
	f.tick()

	queued := TickMsg{ID: f.model.sched.id, Tag: f.model.sched.tag}
	before := f.game.Snapshot()

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd := f.send(queued); cmd != nil {
		t.Error("no tick should be queued after teardown")
	}
	f.send(runeKey('w'))

	after := f.game.Snapshot()
	if after.PlayerY != before.PlayerY || after.Velocity != before.Velocity || len(after.Obstacles) != len(before.Obstacles) {
		t.Errorf("state changed after teardown: %+v -> %+v", before, after)
	}
}

func TestCloseOrder(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantOverlay, false)

	var stoppedFirst bool
	sched := f.model.sched
	g, err := llamaleap.New(config.DefaultLeapConfig(), llamaleap.Options{
		OnClose: func() { stoppedFirst = !sched.Running() },
	})
	if err != nil {
		t.Fatal(err)
	}
	f.model.game = g

	f.send(runeKey('x'))

	if !stoppedFirst {
		t.Error("scheduler should be stopped before OnClose runs")
	}
	if f.model.InputAttached() {
		t.Error("input should be detached after close")
	}
	if !f.model.Closed() {
		t.Error("model should report closed")
	}
}

func TestGameOverInput(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantOverlay, false)
	f.busy = true
	f.crash(t)

	score := f.model.Display()
	f.send(runeKey('w'))
	if f.model.Display() != score {
		t.Errorf("jump in GAME_OVER changed display to %+v", f.model.Display())
	}

	// Read is not offered while busy
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	if f.model.Closed() {
		t.Fatal("read should be ignored while the reply is pending")
	}

	f.send(runeKey('r'))
	if f.model.Display().Mode != core.ModeReady {
		t.Errorf("restart mode = %v, expected READY", f.model.Display().Mode)
	}
}

func TestReadMessageClosesGame(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantOverlay, false)
	f.crash(t)

	f.send(tea.KeyMsg{Type: tea.KeyEnter})

	if !f.model.Closed() || !f.model.ReadRequested() {
		t.Errorf("closed=%v read=%v, expected both", f.model.Closed(), f.model.ReadRequested())
	}
	if f.closes != 1 {
		t.Errorf("OnClose called %d times", f.closes)
	}
}

func TestQuitOnClose(t *testing.T) {
	standalone := newHostFixture(t, llamaleap.VariantArcade, true)
	if cmd := standalone.send(runeKey('x')); cmd == nil {
		t.Error("standalone host should quit once the game closes")
	}

	embedded := newHostFixture(t, llamaleap.VariantOverlay, false)
	if cmd := embedded.send(runeKey('x')); cmd != nil {
		t.Error("embedded host should hand control back instead of quitting")
	}
}

func TestModelView(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, true)

	view := stripANSI(f.model.View())
	if !strings.Contains(view, TapPrompt) || !strings.Contains(view, llamaleap.CaptionTitle) {
		t.Errorf("READY view missing prompt or caption:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != testRuntime.ScreenH {
		t.Errorf("view has %d lines, expected %d", lines, testRuntime.ScreenH)
	}

	f.crash(t)
	view = stripANSI(f.model.View())
	for _, want := range []string{GameOverTitle, "Score: 0", PlayAgain, "Exit Game"} {
		if !strings.Contains(view, want) {
			t.Errorf("GAME_OVER view missing %q", want)
		}
	}
	if strings.Contains(view, ReadMessage) {
		t.Error("arcade GAME_OVER should not offer Read Message")
	}
}

func TestModelResize(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, true)

	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if f.model.screen.Width() != 100 || f.model.screen.Height() != 30-helpHeight {
		t.Errorf("screen = %dx%d", f.model.screen.Width(), f.model.screen.Height())
	}

	f.send(tea.WindowSizeMsg{Width: 5, Height: 5})
	if f.model.screen.Width() != 100 {
		t.Error("too small resize should keep the previous screen")
	}
}

func TestScoreReadoutInEveryMode(t *testing.T) {
	f := newHostFixture(t, llamaleap.VariantArcade, true)

	assertScoreRow := func(mode core.Mode) {
		t.Helper()
		if got := f.model.Display().Mode; got != mode {
			t.Fatalf("mode = %v, expected %v", got, mode)
		}
		s := f.model.frame()
		text := fmt.Sprintf(" %d ", f.model.Display().Score)
		x := (s.Width() - len(text)) / 2
		if row := s.Row(0); !strings.Contains(row, text) {
			t.Errorf("%v: top row %q missing score %q", mode, row, text)
		}
		if c := s.GetCell(x+1, 0); c.Bg != core.ColorBanner {
			t.Errorf("%v: score cell background = %v, expected banner", mode, c.Bg)
		}
	}

	assertScoreRow(core.ModeReady)

	f.send(runeKey('w'))
	f.tick()
	assertScoreRow(core.ModePlaying)

	f.crash(t)
	assertScoreRow(core.ModeGameOver)

	// The smallest screen still keeps the panel below the score.
	f.send(tea.WindowSizeMsg{Width: 40, Height: core.MinScreenH + helpHeight})
	assertScoreRow(core.ModeGameOver)
	if row := f.model.frame().Row(1); strings.Contains(row, GameOverTitle) {
		t.Errorf("game-over panel reached the score rows: %q", row)
	}
}

func TestCloseLabelInHelpLine(t *testing.T) {
	arcade := newHostFixture(t, llamaleap.VariantArcade, true)
	if view := stripANSI(arcade.model.View()); !strings.Contains(view, "Exit Game") {
		t.Errorf("READY help line missing arcade close label:\n%s", view)
	}

	overlay := newHostFixture(t, llamaleap.VariantOverlay, false)
	overlay.busy = true
	overlay.send(runeKey('w'))
	overlay.tick()
	if view := stripANSI(overlay.model.ViewOver(nil)); !strings.Contains(view, "Close Game") {
		t.Errorf("PLAYING help line missing overlay close label:\n%s", view)
	}

	overlay.busy = false
	if view := stripANSI(overlay.model.ViewOver(nil)); !strings.Contains(view, "Close & Read Message") {
		t.Errorf("help line should follow the reply state:\n%s", view)
	}
}

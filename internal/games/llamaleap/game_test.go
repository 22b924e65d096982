package llamaleap

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
	"github.com/vovakirdan/llama-leap/internal/registry"
)

// fixedClock returns a clock frozen at ms milliseconds after the epoch.
func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newTestGame(t *testing.T, cfg config.LeapConfig, opts Options) *Game {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = fixedClock(0)
	}
	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

// tallConfig leaves enough room to fall for 100 ticks without hitting the ground.
func tallConfig() config.LeapConfig {
	cfg := config.DefaultLeapConfig()
	cfg.Surface.Height = 2000
	return cfg
}

// playUntilGameOver jumps once and lets the llama drop onto the ground.
func playUntilGameOver(t *testing.T, g *Game) {
	t.Helper()
	g.Apply(core.ActionJump)
	for i := 0; i < 1000; i++ {
		g.Tick()
		if g.Display().Mode == core.ModeGameOver {
			return
		}
	}
	t.Fatal("game never ended")
}

func TestScenarioArcadeJumpAndFall(t *testing.T) {
	cfg := tallConfig()
	g := newTestGame(t, cfg, Options{Variant: VariantArcade, Seed: 7})

	if ds := g.Display(); ds.Mode != core.ModeReady || ds.Score != 0 {
		t.Fatalf("mounted display = %+v, expected READY with score 0", ds)
	}

	res := g.Apply(core.ActionJump)
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventModeChanged {
		t.Errorf("jump from READY events = %+v, expected one mode change", res.Events)
	}
	s := g.Snapshot()
	if s.Mode != core.ModePlaying || s.Velocity != cfg.Physics.JumpImpulse {
		t.Fatalf("after jump mode=%v velocity=%v, expected PLAYING at %v", s.Mode, s.Velocity, cfg.Physics.JumpImpulse)
	}

	for i := 0; i < 100; i++ {
		g.Tick()
	}

	s = g.Snapshot()
	want := cfg.Physics.JumpImpulse + 100*cfg.Physics.Gravity
	if s.Velocity != want {
		t.Errorf("velocity after 100 ticks = %v, expected %v", s.Velocity, want)
	}
	if s.Mode != core.ModePlaying {
		t.Errorf("mode after 100 ticks = %v, expected PLAYING", s.Mode)
	}
	if len(s.Obstacles) == 0 {
		t.Error("obstacles should be present after a spacing interval has elapsed")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() State {
		g := newTestGame(t, config.DefaultLeapConfig(), Options{Variant: VariantArcade, Seed: 12345})
		for i := 0; i < 400; i++ {
			if i%18 == 0 {
				g.Apply(core.ActionJump)
			}
			g.Tick()
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Score != s2.Score || s1.Mode != s2.Mode || s1.PlayerY != s2.PlayerY {
		t.Errorf("runs differ: %+v vs %+v", s1, s2)
	}
	if len(s1.Obstacles) != len(s2.Obstacles) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(s1.Obstacles), len(s2.Obstacles))
	}
	for i := range s1.Obstacles {
		if s1.Obstacles[i] != s2.Obstacles[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, s1.Obstacles[i], s2.Obstacles[i])
		}
	}
}

func TestJumpResetsVelocity(t *testing.T) {
	cfg := tallConfig()
	g := newTestGame(t, cfg, Options{})
	g.Apply(core.ActionJump)

	for _, ticks := range []int{1, 10, 40} {
		for i := 0; i < ticks; i++ {
			g.Tick()
		}
		g.Apply(core.ActionJump)
		if v := g.Snapshot().Velocity; v != cfg.Physics.JumpImpulse {
			t.Errorf("after %d ticks jump velocity = %v, expected %v", ticks, v, cfg.Physics.JumpImpulse)
		}
	}

	// Re-applying is not cumulative
	g.Apply(core.ActionJump)
	g.Apply(core.ActionJump)
	if v := g.Snapshot().Velocity; v != cfg.Physics.JumpImpulse {
		t.Errorf("double jump velocity = %v, expected %v", v, cfg.Physics.JumpImpulse)
	}
}

func TestRestartIdempotence(t *testing.T) {
	cfg := config.DefaultLeapConfig()
	g := newTestGame(t, cfg, Options{Seed: 3})
	playUntilGameOver(t, g)

	for i := 0; i < 3; i++ {
		g.Apply(core.ActionRestart)

		s := g.Snapshot()
		if s.PlayerY != cfg.Surface.Height/2 || s.Velocity != 0 || len(s.Obstacles) != 0 ||
			s.Score != 0 || s.Mode != core.ModeReady {
			t.Errorf("restart %d state = %+v, expected fresh READY state", i, s)
		}
		if ds := g.Display(); ds != (core.DisplayState{Mode: core.ModeReady}) {
			t.Errorf("restart %d display = %+v", i, ds)
		}
	}
}

func TestGameOverIgnoresJump(t *testing.T) {
	g := newTestGame(t, config.DefaultLeapConfig(), Options{})
	playUntilGameOver(t, g)

	before := g.Snapshot()
	res := g.Apply(core.ActionJump)
	after := g.Snapshot()

	if len(res.Events) != 0 {
		t.Errorf("jump in GAME_OVER produced events %+v", res.Events)
	}
	if after.Mode != core.ModeGameOver || after.Velocity != before.Velocity {
		t.Errorf("jump in GAME_OVER changed state: %+v -> %+v", before, after)
	}
}

func TestRestartIgnoredOutsideGameOver(t *testing.T) {
	g := newTestGame(t, tallConfig(), Options{})
	g.Apply(core.ActionJump)
	g.Tick()

	if res := g.Apply(core.ActionRestart); len(res.Events) != 0 {
		t.Errorf("restart while PLAYING produced events %+v", res.Events)
	}
	if g.Display().Mode != core.ModePlaying {
		t.Errorf("restart while PLAYING changed mode to %v", g.Display().Mode)
	}
}

func TestDisplayPublishedOnlyAtBoundaries(t *testing.T) {
	g := newTestGame(t, tallConfig(), Options{})

	// Idle ticks never publish
	for i := 0; i < 5; i++ {
		if res := g.Tick(); len(res.Events) != 0 {
			t.Fatalf("READY tick %d published %+v", i, res.Events)
		}
	}

	g.Apply(core.ActionJump)
	for i := 0; i < 50; i++ {
		if res := g.Tick(); len(res.Events) != 0 {
			t.Fatalf("PLAYING tick %d published %+v without a boundary", i, res.Events)
		}
	}
	if ds := g.Display(); ds.Mode != core.ModePlaying || ds.Score != 0 {
		t.Errorf("display = %+v", ds)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	bad := config.DefaultLeapConfig()
	bad.Physics.Gravity = 0
	if _, err := New(bad, Options{}); !errors.Is(err, config.ErrInvalidPhysics) {
		t.Errorf("New with zero gravity error = %v, expected ErrInvalidPhysics", err)
	}

	if _, err := New(config.DefaultLeapConfig(), Options{Variant: Variant(9)}); !errors.Is(err, ErrInvalidVariant) {
		t.Errorf("New with unknown variant error = %v, expected ErrInvalidVariant", err)
	}
}

func TestCloseCallsOnCloseOnce(t *testing.T) {
	calls := 0
	g := newTestGame(t, config.DefaultLeapConfig(), Options{OnClose: func() { calls++ }})

	g.Close()
	g.Close()

	if calls != 1 {
		t.Errorf("OnClose called %d times, expected 1", calls)
	}
	if !g.Closed() {
		t.Error("Closed should report true")
	}

	before := g.Snapshot()
	g.Apply(core.ActionJump)
	g.Tick()
	if after := g.Snapshot(); after.Mode != before.Mode || after.PlayerY != before.PlayerY {
		t.Errorf("closed game changed: %+v -> %+v", before, after)
	}
}

func TestAffordances(t *testing.T) {
	busy := true
	isBusy := func() bool { return busy }

	overlay := newTestGame(t, config.DefaultLeapConfig(), Options{Variant: VariantOverlay, Busy: isBusy})
	arcade := newTestGame(t, config.DefaultLeapConfig(), Options{Variant: VariantArcade, Busy: isBusy})

	if overlay.CanRead() {
		t.Error("Read Message should not be offered before GAME_OVER")
	}
	if got := overlay.CloseLabel(); got != "Close Game" {
		t.Errorf("busy overlay close label = %q", got)
	}

	playUntilGameOver(t, overlay)
	playUntilGameOver(t, arcade)

	if overlay.CanRead() {
		t.Error("Read Message should not be offered while busy")
	}

	busy = false
	if !overlay.CanRead() {
		t.Error("Read Message should be offered in overlay GAME_OVER once the reply is ready")
	}
	if got := overlay.CloseLabel(); got != "Close & Read Message" {
		t.Errorf("ready overlay close label = %q", got)
	}
	if arcade.CanRead() {
		t.Error("arcade variant never offers Read Message")
	}
	if got := arcade.CloseLabel(); got != "Exit Game" {
		t.Errorf("arcade close label = %q", got)
	}
}

func TestBusyDoesNotAffectSimulation(t *testing.T) {
	run := func(busy bool) State {
		g := newTestGame(t, config.DefaultLeapConfig(), Options{Seed: 5, Busy: func() bool { return busy }})
		for i := 0; i < 200; i++ {
			if i%20 == 0 {
				g.Apply(core.ActionJump)
			}
			g.Tick()
			g.Render(core.NewScreen(40, 20))
		}
		return g.Snapshot()
	}

	a, b := run(true), run(false)
	if a.PlayerY != b.PlayerY || a.Score != b.Score || len(a.Obstacles) != len(b.Obstacles) {
		t.Errorf("busy flag changed the simulation: %+v vs %+v", a, b)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t, tallConfig(), Options{})
	g.Apply(core.ActionJump)
	g.Tick()

	s := g.Snapshot()
	if len(s.Obstacles) == 0 {
		t.Fatal("expected an obstacle after the first PLAYING tick")
	}
	s.Obstacles[0].X = -999
	s.Score = 99

	if g.Snapshot().Obstacles[0].X == -999 || g.Snapshot().Score == 99 {
		t.Error("mutating a snapshot leaked into the game")
	}
}

func TestRegisteredFactory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if !registry.Exists(ID) {
		t.Fatalf("%q should be registered", ID)
	}

	g, err := registry.Create(ID, registry.Mount{Variant: "arcade", Seed: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != ID || g.Title() != "Llama Leap" {
		t.Errorf("created game = %s %q", g.ID(), g.Title())
	}
	if got := g.CloseLabel(); got != "Exit Game" {
		t.Errorf("arcade mount close label = %q", got)
	}

	if _, err := registry.Create(ID, registry.Mount{Variant: "neon"}); !errors.Is(err, ErrInvalidVariant) {
		t.Errorf("unknown variant error = %v, expected ErrInvalidVariant", err)
	}
}

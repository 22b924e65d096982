// Package llamaleap implements Llama Leap, a side-scrolling obstacle game.
// The llama flaps through gaps in pipes; a crash ends the round.
//
// The package is the whole simulation: state, physics, obstacle generation,
// input transitions and a renderer into a core.Screen. Hosts drive it one
// tick at a time and observe it only through core.DisplayState.
package llamaleap

import (
	"fmt"
	"time"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
	"github.com/vovakirdan/llama-leap/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "llamaleap"

// Options configures one mounted game.
type Options struct {
	// OnClose is called once when the embedding context should take control back.
	OnClose func()
	// Variant selects the visual theme. It never changes physics.
	Variant Variant
	// Busy reports the external "assistant is composing" flag.
	// Only the status banner and the read affordance look at it.
	Busy func() bool
	// Seed drives obstacle gap placement.
	Seed int64
	// Clock supplies wall-clock time for cosmetic animation. Defaults to time.Now.
	Clock func() time.Time
}

// Game is one mounted Llama Leap instance. It owns its State exclusively.
type Game struct {
	cfg      config.LeapConfig
	opts     Options
	state    *State
	physics  Physics
	gen      *Generator
	ctrl     Controller
	renderer Renderer
	display  core.DisplayState
	closed   bool
}

// New mounts a game with the given tuning and options.
func New(cfg config.LeapConfig, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("llamaleap: invalid config: %w", err)
	}
	if opts.Variant != VariantOverlay && opts.Variant != VariantArcade {
		return nil, fmt.Errorf("%w %d", ErrInvalidVariant, opts.Variant)
	}
	if opts.OnClose == nil {
		opts.OnClose = func() {}
	}
	if opts.Busy == nil {
		opts.Busy = func() bool { return false }
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	g := &Game{
		cfg:      cfg,
		opts:     opts,
		state:    newState(cfg),
		physics:  NewPhysics(cfg),
		gen:      NewGenerator(cfg, opts.Seed),
		ctrl:     NewController(cfg),
		renderer: NewRenderer(cfg, opts.Variant),
	}
	g.state.LastTick = opts.Clock()
	g.display = g.state.display()
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Llama Leap"
}

// Tick advances physics, then maintains obstacles. Display events are
// returned only for mode changes and score increments.
func (g *Game) Tick() core.StepResult {
	if g.closed {
		return core.StepResult{}
	}
	events := g.physics.Advance(g.state, g.opts.Clock())
	g.gen.Maintain(g.state)
	return g.publish(events)
}

// Apply feeds one normalized input action into the state machine.
// Jump and Restart are the only actions the simulation knows about;
// everything else belongs to the host.
func (g *Game) Apply(a core.Action) core.StepResult {
	if g.closed {
		return core.StepResult{}
	}
	switch a {
	case core.ActionJump:
		return g.publish(g.ctrl.Jump(g.state))
	case core.ActionRestart:
		return g.publish(g.ctrl.Restart(g.state))
	}
	return core.StepResult{}
}

func (g *Game) publish(events []core.DisplayEvent) core.StepResult {
	if ds, ok := (core.StepResult{Events: events}).Latest(); ok {
		g.display = ds
	}
	return core.StepResult{Events: events}
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	g.renderer.Draw(dst, g.state, Frame{
		Busy: g.opts.Busy(),
		Now:  g.opts.Clock(),
	})
}

// Display returns the last published DisplayState.
func (g *Game) Display() core.DisplayState {
	return g.display
}

// Variant returns the visual theme this game was mounted with.
func (g *Game) Variant() Variant {
	return g.opts.Variant
}

// Busy reports the external busy flag.
func (g *Game) Busy() bool {
	return g.opts.Busy()
}

// CanRead reports whether the "Read Message" affordance is offered:
// overlay variant, round over, and the reply has arrived.
func (g *Game) CanRead() bool {
	return g.opts.Variant == VariantOverlay &&
		g.display.Mode == core.ModeGameOver &&
		!g.opts.Busy()
}

// CloseLabel returns the text of the close affordance.
func (g *Game) CloseLabel() string {
	if g.opts.Variant == VariantArcade {
		return "Exit Game"
	}
	if g.opts.Busy() {
		return "Close Game"
	}
	return "Close & Read Message"
}

// Close freezes the game and hands control back through OnClose.
// The host stops its scheduler and input before calling it.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.opts.OnClose()
}

// Closed reports whether Close has been called.
func (g *Game) Closed() bool {
	return g.closed
}

// Snapshot returns a deep copy of the simulation state.
func (g *Game) Snapshot() State {
	return g.state.clone()
}

// Config returns the tuning the game was mounted with.
func (g *Game) Config() config.LeapConfig {
	return g.cfg
}

func init() {
	registry.Register(ID, "Llama Leap", func(m registry.Mount) (registry.Game, error) {
		cfg, err := config.Load(m.ConfigPath)
		if err != nil {
			return nil, err
		}
		v, err := ParseVariant(m.Variant)
		if err != nil {
			return nil, err
		}
		g, err := New(cfg, Options{
			OnClose: m.OnClose,
			Variant: v,
			Busy:    m.Busy,
			Seed:    m.Seed,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}

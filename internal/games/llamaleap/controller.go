package llamaleap

import (
	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
)

// Controller owns the input-driven transitions of the state machine:
//
//	READY     --jump-->    PLAYING (impulse)
//	PLAYING   --jump-->    PLAYING (impulse)
//	GAME_OVER --restart--> READY
//
// PLAYING -> GAME_OVER belongs to Physics.
type Controller struct {
	cfg config.LeapConfig
}

// NewController creates a controller for the given tuning.
func NewController(cfg config.LeapConfig) Controller {
	return Controller{cfg: cfg}
}

// Jump sets the upward impulse, starting play from READY.
// Velocity is replaced, never accumulated. Ignored after a crash.
func (c Controller) Jump(s *State) []core.DisplayEvent {
	switch s.Mode {
	case core.ModeReady:
		s.Mode = core.ModePlaying
		s.Velocity = c.cfg.Physics.JumpImpulse
		return []core.DisplayEvent{modeEvent(s)}
	case core.ModePlaying:
		s.Velocity = c.cfg.Physics.JumpImpulse
	}
	return nil
}

// Restart returns a finished round to READY. It does nothing in other modes,
// so calling it repeatedly leaves the same fresh state.
func (c Controller) Restart(s *State) []core.DisplayEvent {
	if s.Mode != core.ModeGameOver {
		return nil
	}
	s.reset(c.cfg)
	return []core.DisplayEvent{modeEvent(s)}
}

package llamaleap

import (
	"time"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
)

// Obstacle is a pipe pair with a passable gap.
// The gap spans [GapTop, GapTop+GapHeight).
type Obstacle struct {
	X      float64 // Left edge
	GapTop float64 // Bottom edge of the upper barrier
	Passed bool    // Already counted towards the score
}

// State is the authoritative simulation world of one mounted game.
// Obstacles are in spawn order: index 0 is the oldest and leftmost.
type State struct {
	PlayerY   float64 // Vertical center of the player
	Velocity  float64 // Positive = falling
	Obstacles []Obstacle
	Score     int
	Mode      core.Mode
	LastTick  time.Time // Wall clock of the last tick; cosmetic animation only
}

func newState(cfg config.LeapConfig) *State {
	s := &State{Obstacles: make([]Obstacle, 0, 8)}
	s.reset(cfg)
	return s
}

// reset puts every dynamic field back to its mount-time value.
func (s *State) reset(cfg config.LeapConfig) {
	s.PlayerY = cfg.Surface.Height / 2
	s.Velocity = 0
	s.Obstacles = s.Obstacles[:0]
	s.Score = 0
	s.Mode = core.ModeReady
}

func (s *State) display() core.DisplayState {
	return core.DisplayState{Mode: s.Mode, Score: s.Score}
}

// clone returns a deep copy safe to hand outside the game.
func (s *State) clone() State {
	c := *s
	c.Obstacles = append([]Obstacle(nil), s.Obstacles...)
	return c
}

func modeEvent(s *State) core.DisplayEvent {
	return core.DisplayEvent{Kind: core.EventModeChanged, State: s.display()}
}

func scoreEvent(s *State) core.DisplayEvent {
	return core.DisplayEvent{Kind: core.EventScored, State: s.display()}
}

package llamaleap

import (
	"math"
	"time"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
)

// Physics advances the simulation by one fixed tick.
// Every quantity is integrated per call, never per elapsed second.
type Physics struct {
	cfg config.LeapConfig
}

// NewPhysics creates the physics engine for the given tuning.
func NewPhysics(cfg config.LeapConfig) Physics {
	return Physics{cfg: cfg}
}

// Advance runs one tick against s and returns the display events it caused.
func (p Physics) Advance(s *State, now time.Time) []core.DisplayEvent {
	s.LastTick = now

	switch s.Mode {
	case core.ModeReady:
		p.idle(s, now)
		return nil
	case core.ModePlaying:
		return p.play(s)
	case core.ModeGameOver:
		p.fall(s)
	}
	return nil
}

// idle bobs the player around the surface center while waiting for input.
func (p Physics) idle(s *State, now time.Time) {
	r := p.cfg.Render
	center := p.cfg.Surface.Height / 2
	if r.FloatPeriodMS <= 0 {
		s.PlayerY = center
		return
	}
	ms := float64(now.UnixMilli())
	s.PlayerY = center + math.Sin(ms/r.FloatPeriodMS)*r.FloatAmplitude
}

func (p Physics) play(s *State) []core.DisplayEvent {
	var events []core.DisplayEvent

	s.Velocity += p.cfg.Physics.Gravity
	s.PlayerY += s.Velocity

	for i := range s.Obstacles {
		s.Obstacles[i].X -= p.cfg.Physics.PipeSpeed
	}

	player := p.PlayerBox(s.PlayerY)

	for _, o := range s.Obstacles {
		if p.Collides(player, o) {
			s.Mode = core.ModeGameOver
			events = append(events, modeEvent(s))
			break
		}
	}

	if s.Mode == core.ModePlaying && !p.InBounds(s.PlayerY) {
		s.Mode = core.ModeGameOver
		events = append(events, modeEvent(s))
	}

	// An obstacle left of the player can never be the one that collided,
	// so scoring still runs on the tick that ended the round.
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if !o.Passed && o.X+p.cfg.Obstacles.Width < player.Left {
			o.Passed = true
			s.Score++
			events = append(events, scoreEvent(s))
		}
	}

	return events
}

// fall drops the player onto the ground line after a crash. Cosmetic only.
func (p Physics) fall(s *State) {
	ground := p.cfg.GroundY()
	if s.PlayerY >= ground {
		s.PlayerY = ground
		return
	}
	s.Velocity += p.cfg.Physics.Gravity
	s.PlayerY = math.Min(s.PlayerY+s.Velocity, ground)
}

// PlayerBox returns the player hitbox for a given vertical center.
func (p Physics) PlayerBox(y float64) core.Box {
	return core.BoxAround(p.cfg.Player.X, y, p.cfg.Player.HalfExtent)
}

// Collides reports whether the player box hits either barrier of o.
// Only obstacles whose column overlaps the player horizontally can collide.
func (p Physics) Collides(player core.Box, o Obstacle) bool {
	column := core.Box{
		Left:   o.X,
		Right:  o.X + p.cfg.Obstacles.Width,
		Top:    math.Inf(-1),
		Bottom: math.Inf(1),
	}
	if !player.OverlapsX(column) {
		return false
	}
	return player.Top < o.GapTop || player.Bottom > o.GapTop+p.cfg.Obstacles.GapHeight
}

// InBounds reports whether y lies between the ceiling and the ground line.
func (p Physics) InBounds(y float64) bool {
	return y >= 0 && y <= p.cfg.GroundY()
}

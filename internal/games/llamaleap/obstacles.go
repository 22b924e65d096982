package llamaleap

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
)

// Generator spawns and retires obstacles at a fixed spatial cadence.
type Generator struct {
	cfg config.LeapConfig
	rng *rand.Rand
}

// NewGenerator creates a generator whose gap placement is driven by seed.
func NewGenerator(cfg config.LeapConfig, seed int64) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Maintain retires off-screen obstacles and spawns new ones. It only acts
// while PLAYING; the obstacle set is frozen in every other mode.
func (g *Generator) Maintain(s *State) {
	if s.Mode != core.ModePlaying {
		return
	}

	width := g.cfg.Obstacles.Width

	// Remove obstacles that have moved fully past the left edge
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.X+width >= 0 {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept

	surfaceW := g.cfg.Surface.Width
	spacing := g.cfg.Obstacles.Spacing

	if len(s.Obstacles) == 0 {
		s.Obstacles = append(s.Obstacles, g.spawn(surfaceW))
	}

	// Each spawn lands exactly one spacing behind the previous one. With the
	// default speed and spacing that is the right edge of the surface.
	for {
		last := s.Obstacles[len(s.Obstacles)-1]
		if surfaceW-last.X < spacing {
			break
		}
		s.Obstacles = append(s.Obstacles, g.spawn(last.X+spacing))
	}
}

func (g *Generator) spawn(x float64) Obstacle {
	return Obstacle{
		X:      x,
		GapTop: g.gapTop(),
		Passed: false,
	}
}

// gapTop draws a whole-unit gap top uniformly from [MinTop, MaxGapTop].
func (g *Generator) gapTop() float64 {
	minTop := g.cfg.Obstacles.MinTop
	maxTop := g.cfg.MaxGapTop()
	if maxTop <= minTop {
		return minTop // Edge case for very short surfaces
	}
	span := maxTop - minTop
	// Float64 keeps huge surfaces from overflowing an int range.
	return minTop + math.Min(math.Floor(g.rng.Float64()*(span+1)), math.Floor(span))
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// leapEnv holds raw env overrides. Nil means the variable was not set.
type leapEnv struct {
	SurfaceWidth  *float64 `env:"LLAMALEAP_SURFACE_WIDTH"`
	SurfaceHeight *float64 `env:"LLAMALEAP_SURFACE_HEIGHT"`
	Gravity       *float64 `env:"LLAMALEAP_GRAVITY"`
	JumpImpulse   *float64 `env:"LLAMALEAP_JUMP_IMPULSE"`
	PipeSpeed     *float64 `env:"LLAMALEAP_PIPE_SPEED"`
	PipeWidth     *float64 `env:"LLAMALEAP_PIPE_WIDTH"`
	PipeSpacing   *float64 `env:"LLAMALEAP_PIPE_SPACING"`
	GapHeight     *float64 `env:"LLAMALEAP_GAP_HEIGHT"`
	Clouds        *bool    `env:"LLAMALEAP_CLOUDS"`
}

// ApplyEnv overlays LLAMALEAP_* environment variables onto cfg.
func ApplyEnv(cfg *LeapConfig) error {
	var raw leapEnv
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	setF(&cfg.Surface.Width, raw.SurfaceWidth)
	setF(&cfg.Surface.Height, raw.SurfaceHeight)
	setF(&cfg.Physics.Gravity, raw.Gravity)
	setF(&cfg.Physics.JumpImpulse, raw.JumpImpulse)
	setF(&cfg.Physics.PipeSpeed, raw.PipeSpeed)
	setF(&cfg.Obstacles.Width, raw.PipeWidth)
	setF(&cfg.Obstacles.Spacing, raw.PipeSpacing)
	setF(&cfg.Obstacles.GapHeight, raw.GapHeight)
	if raw.Clouds != nil {
		cfg.Render.CloudsEnabled = *raw.Clouds
	}
	return nil
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Package config provides YAML-based tuning for Llama Leap, with embedded
// defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
)

// LeapConfig contains every tuning constant of the Llama Leap simulation.
// It is treated as immutable once handed to a game.
type LeapConfig struct {
	Surface   LeapSurface   `yaml:"surface"`
	Physics   LeapPhysics   `yaml:"physics"`
	Obstacles LeapObstacles `yaml:"obstacles"`
	Player    LeapPlayer    `yaml:"player"`
	Render    LeapRender    `yaml:"render"`
}

// LeapSurface is the logical drawing surface, in surface units.
type LeapSurface struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// LeapPhysics defines per-tick physics. Values are applied once per frame
// tick, not per elapsed second.
type LeapPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set on jump (negative = up)
	PipeSpeed   float64 `yaml:"pipe_speed"`   // Leftward scroll per tick
}

// LeapObstacles defines obstacle geometry and cadence.
type LeapObstacles struct {
	Width     float64 `yaml:"width"`
	Spacing   float64 `yaml:"spacing"`    // Distance between consecutive spawn positions
	GapHeight float64 `yaml:"gap_height"` // Height of the passable gap
	MinTop    float64 `yaml:"min_top"`    // Smallest allowed gap top
}

// LeapPlayer defines the player hitbox.
type LeapPlayer struct {
	X          float64 `yaml:"x"`
	HalfExtent float64 `yaml:"half_extent"`
}

// LeapRender holds cosmetic animation constants. None of them affect physics.
type LeapRender struct {
	RotationScale  float64 `yaml:"rotation_scale"`   // Radians of tilt per unit of velocity
	FloatAmplitude float64 `yaml:"float_amplitude"`  // Idle bob height while READY
	FloatPeriodMS  float64 `yaml:"float_period_ms"`  // Divisor of wall-clock ms for the idle bob
	GroundStripe   float64 `yaml:"ground_stripe"`    // Stripe repeat distance
	GroundScrollMS float64 `yaml:"ground_scroll_ms"` // Wall-clock ms per unit of ground scroll
	CloudsEnabled  bool    `yaml:"clouds_enabled"`   // Draw decorative clouds in arcade variant
}

// Validation errors.
var (
	ErrInvalidSurface  = errors.New("config: surface must have positive size and room above the ground")
	ErrInvalidPhysics  = errors.New("config: gravity and pipe speed must be positive, jump impulse negative")
	ErrInvalidObstacle = errors.New("config: obstacle width, spacing and gap must be positive")
	ErrInvalidPlayer   = errors.New("config: player must sit inside the surface with a positive half extent")
)

// Validate rejects tuning that would break simulation invariants.
func (c LeapConfig) Validate() error {
	var errs []error

	s := c.Surface
	if s.Width <= 0 || s.Height <= 0 || s.GroundHeight < 0 || s.GroundHeight >= s.Height {
		errs = append(errs, fmt.Errorf("%w (width=%v height=%v ground=%v)", ErrInvalidSurface, s.Width, s.Height, s.GroundHeight))
	}

	p := c.Physics
	if p.Gravity <= 0 || p.PipeSpeed <= 0 || p.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("%w (gravity=%v speed=%v jump=%v)", ErrInvalidPhysics, p.Gravity, p.PipeSpeed, p.JumpImpulse))
	}

	o := c.Obstacles
	if o.Width <= 0 || o.Spacing <= 0 || o.GapHeight <= 0 || o.MinTop < 0 {
		errs = append(errs, fmt.Errorf("%w (width=%v spacing=%v gap=%v min_top=%v)", ErrInvalidObstacle, o.Width, o.Spacing, o.GapHeight, o.MinTop))
	}

	pl := c.Player
	if pl.HalfExtent <= 0 || pl.X < 0 || pl.X > s.Width {
		errs = append(errs, fmt.Errorf("%w (x=%v half_extent=%v)", ErrInvalidPlayer, pl.X, pl.HalfExtent))
	}

	return errors.Join(errs...)
}

// GroundY returns the y-coordinate of the ground line.
func (c LeapConfig) GroundY() float64 {
	return c.Surface.Height - c.Surface.GroundHeight
}

// MaxGapTop returns the largest gap top that keeps the whole gap above ground.
func (c LeapConfig) MaxGapTop() float64 {
	return c.GroundY() - c.Obstacles.GapHeight
}

package config

import (
	_ "embed"
)

//go:embed defaults/llamaleap.yaml
var defaultLeapYAML []byte

// DefaultLeapConfig returns the built-in Llama Leap tuning.
// It mirrors defaults/llamaleap.yaml and is used if the embedded file cannot be parsed.
func DefaultLeapConfig() LeapConfig {
	return LeapConfig{
		Surface: LeapSurface{
			Width:        320,
			Height:       480,
			GroundHeight: 20,
		},
		Physics: LeapPhysics{
			Gravity:     0.25,
			JumpImpulse: -6,
			PipeSpeed:   2,
		},
		Obstacles: LeapObstacles{
			Width:     52,
			Spacing:   160,
			GapHeight: 150,
			MinTop:    50,
		},
		Player: LeapPlayer{
			X:          80,
			HalfExtent: 15,
		},
		Render: LeapRender{
			RotationScale:  0.1,
			FloatAmplitude: 10,
			FloatPeriodMS:  300,
			GroundStripe:   20,
			GroundScrollMS: 5,
			CloudsEnabled:  true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultLeapYAML
}

package config

import (
	_ "embed"
)

//go:embed defaults/bee.yaml
var defaultBeeYAML []byte

// DefaultBeeConfig returns the built-in configuration. It mirrors
// defaults/bee.yaml and is used when the embedded file cannot be parsed.
func DefaultBeeConfig() BeeConfig {
	return BeeConfig{
		Physics: Physics{
			Gravity:      0.8,
			JumpImpulse:  -12,
			MaxVelocity:  25,
			PipeVelocity: 5,
		},
		Bee: BeeSettings{
			Radius:    30,
			XFraction: 0.25,
		},
		Pipes: Pipes{
			Width:                 150,
			GapSize:               250,
			LandscapeSpawnDivisor: 1.25,
			PortraitSpawnDivisor:  2.0,
		},
		Viewport: Viewport{
			CellWidth:  20,
			CellHeight: 40,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// Package bee implements Clappy Bee: a bee falls under gravity, the player
// flaps to push it upward, and it must slip through the gaps of pipe pairs
// scrolling in from the right.
//
// Simulation is the pure, frame-stepped engine. Game adapts it to the
// terminal platform (input actions, cell rendering, difficulty).
package bee

import "github.com/vovakirdan/clappy-bee/internal/config"

// Params are the simulation constants, in world units per tick.
type Params struct {
	Gravity      float64
	JumpImpulse  float64 // negative = up
	MaxVelocity  float64 // |velocity| never exceeds this
	BeeRadius    float64
	BeeXFraction float64 // bee x = width * fraction
	PipeWidth    float64
	PipeVelocity float64
	GapSize      float64

	LandscapeSpawnDivisor float64
	PortraitSpawnDivisor  float64
}

// DefaultParams returns the stock tuning, sized for a phone-like viewport.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultBeeConfig())
}

// ParamsFromConfig extracts simulation parameters from a game config.
func ParamsFromConfig(cfg config.BeeConfig) Params {
	return Params{
		Gravity:               cfg.Physics.Gravity,
		JumpImpulse:           cfg.Physics.JumpImpulse,
		MaxVelocity:           cfg.Physics.MaxVelocity,
		BeeRadius:             cfg.Bee.Radius,
		BeeXFraction:          cfg.Bee.XFraction,
		PipeWidth:             cfg.Pipes.Width,
		PipeVelocity:          cfg.Physics.PipeVelocity,
		GapSize:               cfg.Pipes.GapSize,
		LandscapeSpawnDivisor: cfg.Pipes.LandscapeSpawnDivisor,
		PortraitSpawnDivisor:  cfg.Pipes.PortraitSpawnDivisor,
	}
}

// fallingThreshold is the velocity past which the bee counts as plunging.
func (p Params) fallingThreshold() float64 {
	return p.MaxVelocity / 1.1
}

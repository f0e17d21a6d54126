// Package config provides YAML-based game configuration loading and
// difficulty management for Clappy Bee.
package config

// BeeConfig contains all configuration for the bee game.
type BeeConfig struct {
	Physics    Physics          `yaml:"physics"`
	Bee        BeeSettings      `yaml:"bee"`
	Pipes      Pipes            `yaml:"pipes"`
	Viewport   Viewport         `yaml:"viewport"`
	Audio      Audio            `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines per-tick motion parameters, in world units.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"` // negative = up
	MaxVelocity  float64 `yaml:"max_velocity"`
	PipeVelocity float64 `yaml:"pipe_velocity"`
}

// BeeSettings defines the player avatar.
type BeeSettings struct {
	Radius    float64 `yaml:"radius"`
	XFraction float64 `yaml:"x_fraction"` // horizontal position as a fraction of width
}

// Pipes defines obstacle geometry and spawn cadence.
type Pipes struct {
	Width                 float64 `yaml:"width"`
	GapSize               float64 `yaml:"gap_size"`
	LandscapeSpawnDivisor float64 `yaml:"landscape_spawn_divisor"` // spawn threshold = width / divisor
	PortraitSpawnDivisor  float64 `yaml:"portrait_spawn_divisor"`
}

// Viewport maps terminal cells to world units.
type Viewport struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Audio toggles the synthesized sound effects.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to pipe speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. The empty string means
// "keep whatever the config file says".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	case "":
		return "", true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

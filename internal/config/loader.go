package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-user directory under $HOME holding configs,
// scores and the SSH host key.
const ConfigDirName = ".clappybee"

// LoadBee loads the bee game configuration.
// Search order: customPath -> ~/.clappybee/configs/bee.yaml -> ./configs/bee.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadBee(customPath string) (BeeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BeeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBee(data)
		if err != nil {
			return BeeConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("bee.yaml"), filepath.Join("configs", "bee.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBee(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseBee(defaultBeeYAML)
	if err != nil {
		return DefaultBeeConfig(), nil
	}
	return cfg, nil
}

func parseBee(data []byte) (BeeConfig, error) {
	cfg := DefaultBeeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BeeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BeeConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c BeeConfig) Validate() error {
	var errs []error
	if c.Physics.MaxVelocity <= 0 {
		errs = append(errs, errors.New("physics.max_velocity must be positive"))
	}
	if c.Physics.PipeVelocity <= 0 {
		errs = append(errs, errors.New("physics.pipe_velocity must be positive"))
	}
	if c.Bee.Radius <= 0 {
		errs = append(errs, errors.New("bee.radius must be positive"))
	}
	if c.Bee.XFraction <= 0 || c.Bee.XFraction >= 1 {
		errs = append(errs, errors.New("bee.x_fraction must be in (0, 1)"))
	}
	if c.Pipes.Width <= 0 || c.Pipes.GapSize <= 0 {
		errs = append(errs, errors.New("pipes.width and pipes.gap_size must be positive"))
	}
	if c.Pipes.LandscapeSpawnDivisor <= 0 || c.Pipes.PortraitSpawnDivisor <= 0 {
		errs = append(errs, errors.New("pipes spawn divisors must be positive"))
	}
	if c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0 {
		errs = append(errs, errors.New("viewport cell size must be positive"))
	}
	return errors.Join(errs...)
}

// UserDir returns ~/.clappybee, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName)
}

func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyBeePreset modifies the config based on a difficulty preset.
func ApplyBeePreset(cfg *BeeConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

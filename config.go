package trajectory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied to configuration values that are absent.
const (
	DefaultStepMs     = 20
	DefaultDurationMs = 5000.0
	DefaultSpeed      = 1.0
)

// Config is the editor configuration. It is read once when a session is
// created and does not change during an editing session.
type Config struct {
	Limits Limits

	// StepMs is the default sampling step of exports.
	StepMs int
	// SnapMs is the grid that point times are snapped to. Zero disables
	// snapping.
	SnapMs float64
	// DurationMs is the initial length of the timeline.
	DurationMs float64
	// Speed is the initial playback speed multiplier.
	Speed float64
}

// DefaultConfig returns the configuration used when no configuration file
// exists.
func DefaultConfig() Config {
	return Config{
		Limits:     DefaultLimits(),
		StepMs:     DefaultStepMs,
		DurationMs: DefaultDurationMs,
		Speed:      DefaultSpeed,
	}
}

type yamlLimit struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

type yamlConfig struct {
	AngleLimits map[string]yamlLimit `yaml:"angle_limits"`
	Export      struct {
		StepMs *int `yaml:"step_ms"`
	} `yaml:"export"`
	Editor struct {
		SnapMs *float64 `yaml:"snap_ms"`
	} `yaml:"editor"`
	Playback struct {
		DurationMs *float64 `yaml:"duration_ms"`
		Speed      *float64 `yaml:"speed"`
	} `yaml:"playback"`
}

// LoadConfig parses a YAML configuration. Sections and axes that are absent
// keep their defaults. Malformed values fail with an error matching
// [ErrConfig].
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	var raw yamlConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			// empty file
			return cfg, nil
		}
		return Config{}, configf("%s", err)
	}

	for key, l := range raw.AngleLimits {
		a, err := ParseAxis(key)
		if err != nil {
			return Config{}, configf("angle_limits: %s", err)
		}
		if l.Min == nil || l.Max == nil {
			return Config{}, configf("angle_limits.%s: both min and max are required", key)
		}
		cfg.Limits[a] = AngleLimit{Min: *l.Min, Max: *l.Max}
	}
	if err := cfg.Limits.Validate(); err != nil {
		return Config{}, err
	}

	if v := raw.Export.StepMs; v != nil {
		if *v <= 0 {
			return Config{}, configf("export.step_ms must be positive, got %d", *v)
		}
		cfg.StepMs = *v
	}
	if v := raw.Editor.SnapMs; v != nil {
		if *v < 0 {
			return Config{}, configf("editor.snap_ms must not be negative, got %g", *v)
		}
		cfg.SnapMs = *v
	}
	if v := raw.Playback.DurationMs; v != nil {
		if *v <= 0 {
			return Config{}, configf("playback.duration_ms must be positive, got %g", *v)
		}
		cfg.DurationMs = *v
	}
	if v := raw.Playback.Speed; v != nil {
		if *v < MinSpeed || *v > MaxSpeed {
			return Config{}, configf("playback.speed must be within [%g, %g], got %g", MinSpeed, MaxSpeed, *v)
		}
		cfg.Speed = *v
	}
	return cfg, nil
}

// LoadConfigFile reads the configuration at path. A missing file is not an
// error; the default configuration is returned instead.
func LoadConfigFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	cfg, err := LoadConfig(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

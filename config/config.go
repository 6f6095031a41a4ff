package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Physics PhysicsConfig `toml:"physics"`
	Input   InputConfig   `toml:"input"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type PhysicsConfig struct {
	GravityScale   float64 `toml:"gravity_scale"`    // gravity per unit of tilt, m/s^2
	PointsPerMeter float64 `toml:"points_per_meter"` // world units per meter
}

type InputConfig struct {
	Source      string  `toml:"source"`       // "pointer" or "keys"
	MaxTilt     float64 `toml:"max_tilt"`     // tilt magnitude cap
	PointerSpan float64 `toml:"pointer_span"` // drag distance for full tilt, in world units
}

type GameConfig struct {
	StartLevel int    `toml:"start_level"`
	LevelsDir  string `toml:"levels_dir"`
	PrefabsDir string `toml:"prefabs_dir"`
	HotReload  bool   `toml:"hot_reload"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

const (
	InputPointer = "pointer"
	InputKeys    = "keys"
)

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Physics.GravityScale <= 0 || c.Physics.PointsPerMeter <= 0 {
		return errors.New("physics scales must be positive")
	}
	switch c.Input.Source {
	case InputPointer, InputKeys:
	default:
		return fmt.Errorf("unknown input source %q", c.Input.Source)
	}
	if c.Game.StartLevel < 1 {
		return fmt.Errorf("start_level must be at least 1, got %d", c.Game.StartLevel)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Marble Maze",
			Width:  1024,
			Height: 768,
		},
		Physics: PhysicsConfig{
			GravityScale:   50,
			PointsPerMeter: 150,
		},
		Input: InputConfig{
			Source:      InputPointer,
			MaxTilt:     1,
			PointerSpan: 256,
		},
		Game: GameConfig{
			StartLevel: 1,
			LevelsDir:  "levels",
			PrefabsDir: "prefabs",
			HotReload:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

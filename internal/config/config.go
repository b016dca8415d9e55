package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/ephemeris"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
)

const (
	DefaultDt            = 60.0   // seconds
	DefaultDurationDays  = 1000.0 // simulated days
	DefaultStepsPerFrame = 5000
	DefaultEpoch         = "2022-01-01 00:00:00"
	DefaultCanvasSize    = 250e9 // half-width of the view, meters
	DefaultBodyScale     = 250.0 // display magnification of body radii
	DefaultOutput        = "simulation.gif"
)

// epochLayout matches the epoch strings Horizons queries are written with.
const epochLayout = "2006-01-02 15:04:05"

type Config struct {
	Source        string   `yaml:"source"` // catalog | horizons
	Epoch         string   `yaml:"epoch"`
	Bodies        []string `yaml:"bodies"`
	Dt            float64  `yaml:"dt"`
	DurationDays  float64  `yaml:"duration_days"`
	StepsPerFrame int      `yaml:"steps_per_frame"`

	Render RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	Output     string  `yaml:"output"`
	CanvasSize float64 `yaml:"canvas_size"`
	BodyScale  float64 `yaml:"body_scale"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Source:        "catalog",
		Epoch:         DefaultEpoch,
		Bodies:        ephemeris.Names(),
		Dt:            DefaultDt,
		DurationDays:  DefaultDurationDays,
		StepsPerFrame: DefaultStepsPerFrame,
		Render: RenderConfig{
			Output:     DefaultOutput,
			CanvasSize: DefaultCanvasSize,
			BodyScale:  DefaultBodyScale,
			Width:      500,
			Height:     500,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EpochTime parses the configured epoch, accepting both "2006-01-02
// 15:04:05" and RFC 3339.
func (c *Config) EpochTime() (time.Time, error) {
	if t, err := time.Parse(epochLayout, c.Epoch); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, c.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("epoch %q: %w", c.Epoch, err)
	}
	return t.UTC(), nil
}

// SimConfig converts to the runner's config, with duration in seconds.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.DurationDays * sim.Day,
		StepsPerFrame: c.StepsPerFrame,
	}
}

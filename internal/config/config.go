// Package config loads and saves chart specs: the viewport, the data
// source, the four field selections, and the dimension descriptor table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bubbleplot/internal/chart"
	"bubbleplot/internal/force"
)

const (
	DefaultWidth    = 800.0
	DefaultHeight   = 500.0
	DefaultPadding  = 3.0
	DefaultMaxTicks = 1000
)

type Chart struct {
	Title      string           `yaml:"title"`
	Width      float64          `yaml:"width"`
	Height     float64          `yaml:"height"`
	Data       string           `yaml:"data"`
	LabelField string           `yaml:"label_field"`
	Select     chart.Selections `yaml:"select"`
	Dimensions chart.Dimensions `yaml:"dimensions"`
	Padding    float64          `yaml:"padding"`
	MaxTicks   int              `yaml:"max_ticks"`
}

func Default() *Chart {
	return &Chart{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Select:     chart.DefaultSelections(),
		Dimensions: chart.Dimensions{},
		Padding:    DefaultPadding,
		MaxTicks:   DefaultMaxTicks,
	}
}

func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart spec: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse chart spec: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("chart spec %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Chart) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode chart spec: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Chart) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %.0fx%.0f", c.Width, c.Height)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %f", c.Padding)
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("max_ticks must be positive, got %d", c.MaxTicks)
	}
	return nil
}

// ResolveData returns the data path, interpreted relative to the chart
// spec's directory when not absolute.
func (c *Chart) ResolveData(specPath string) string {
	if c.Data == "" || filepath.IsAbs(c.Data) {
		return c.Data
	}
	return filepath.Join(filepath.Dir(specPath), c.Data)
}

// ForceConfig is the relaxation configuration for this spec: engine
// defaults with the spec's padding and tick budget applied.
func (c *Chart) ForceConfig() force.Config {
	fc := force.DefaultConfig()
	fc.Padding = c.Padding
	fc.MaxTicks = c.MaxTicks
	return fc
}

// LabelFunc returns the bubble label generator, or nil when no label
// field is configured.
func (c *Chart) LabelFunc() chart.LabelFunc {
	if c.LabelField == "" {
		return nil
	}
	field := c.LabelField
	return func(r chart.Record) string { return r[field] }
}

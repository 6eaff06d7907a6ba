package internal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"
)

// Config holds the configuration for a page of charts, parsed from a YAML file.
type Config struct {
	Page     string   `yaml:"page"`     // Optional host page the charts bind into.
	Viewport Viewport `yaml:"viewport"` // Window size used for layout and screenshots.
	Defaults Tree     `yaml:"defaults"` // Global chart options.
	Charts   []Tree   `yaml:"charts"`   // One configuration per chart.
}

type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func defaultConfig() Config {
	return Config{
		Viewport: Viewport{
			Width:  1280,
			Height: 720,
		},
	}
}

func ReadConfig(reader io.Reader) (Config, error) {
	config := defaultConfig()
	if err := yaml.NewDecoder(reader).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	if err := config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	for i, chart := range c.Charts {
		if chart == nil {
			return fmt.Errorf("chart %d is empty", i)
		}
	}
	return nil
}

// NewDocument returns the host page, or a blank one when none is configured.
func (c Config) NewDocument() (*Document, error) {
	if c.Page == "" {
		return NewDocument(c.Viewport.Width, c.Viewport.Height), nil
	}
	f, err := os.Open(c.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()
	return ParseDocument(f, c.Viewport.Width, c.Viewport.Height)
}

// Package config loads the YAML run configuration for one-shot attribution
// runs. The core packages never read files or environment themselves; every
// tunable arrives through this struct.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one attribution run: the inputs, the model, and the
// sampling tunables.
type RunConfig struct {
	// ImagePath is the image to attribute. Required.
	ImagePath string `yaml:"image"`

	// ModelPath is the ONNX classification model. Required.
	ModelPath string `yaml:"model"`

	// MetadataPath is the model's JSON metadata file. Required.
	MetadataPath string `yaml:"metadata"`

	// PatchSize is the grid cell edge length in pixels.
	PatchSize int `yaml:"patch_size"`

	// Samples is the number of Monte-Carlo trials.
	Samples int `yaml:"samples"`

	// Seed feeds the mask sampler. Fixed default so runs are
	// reproducible unless the caller asks otherwise.
	Seed int64 `yaml:"seed"`

	// Workers is the number of concurrent trial workers.
	Workers int `yaml:"workers"`

	// FillColor is a hex color like "#000000", or "mean" to fill with
	// the image's average color.
	FillColor string `yaml:"fill_color"`

	// TargetClass pins the tracked class. Empty means the baseline
	// prediction's top class.
	TargetClass string `yaml:"target_class"`

	// TopK is how many ranked patches the run mode prints.
	TopK int `yaml:"top_k"`
}

// Defaults mirror the original tool's settings: 32 px patches, 200 samples,
// black fill.
const (
	DefaultPatchSize = 32
	DefaultSamples   = 200
	DefaultFillColor = "#000000"
	DefaultTopK      = 5
)

// Load reads a RunConfig from a YAML file, applies defaults, and validates
// it.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued tunables with their defaults. Paths are
// left alone; missing paths are a validation error, not a defaultable one.
func (c *RunConfig) ApplyDefaults() {
	if c.PatchSize == 0 {
		c.PatchSize = DefaultPatchSize
	}
	if c.Samples == 0 {
		c.Samples = DefaultSamples
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.FillColor == "" {
		c.FillColor = DefaultFillColor
	}
	if c.TopK == 0 {
		c.TopK = DefaultTopK
	}
}

// Validate rejects configurations that cannot produce a run.
func (c *RunConfig) Validate() error {
	if c.ImagePath == "" {
		return fmt.Errorf("config: image path is required")
	}
	if c.ModelPath == "" {
		return fmt.Errorf("config: model path is required")
	}
	if c.MetadataPath == "" {
		return fmt.Errorf("config: metadata path is required")
	}
	if c.PatchSize < 1 {
		return fmt.Errorf("config: patch_size %d must be positive", c.PatchSize)
	}
	if c.Samples < 1 {
		return fmt.Errorf("config: samples %d must be positive", c.Samples)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers %d must be positive", c.Workers)
	}
	if c.TopK < 1 {
		return fmt.Errorf("config: top_k %d must be positive", c.TopK)
	}
	return nil
}

// Package config handles evaluation run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EvaluationConfig configures the metric computation loop.
type EvaluationConfig struct {
	SampleBudget     int    `yaml:"sample_budget"`
	BatchSize        int    `yaml:"batch_size"`
	TargetIndex      int    `yaml:"target_index"`
	ConditionIndices []int  `yaml:"condition_indices,omitempty"`
	NoiseDim         int    `yaml:"noise_dim,omitempty"`
	CachePath        string `yaml:"cache_path,omitempty"`
}

// ClassifierConfig describes the pretrained classifier used as the metric's
// feature extractor.
type ClassifierConfig struct {
	FeatureDim int `yaml:"feature_dim"`
	NumClasses int `yaml:"num_classes"`
	InputSize  int `yaml:"input_size"`
}

// GeneratorConfig describes how generated samples were normalized during
// training, so their statistics can be inverted before classification.
type GeneratorConfig struct {
	Channels   int       `yaml:"channels"`
	OutputMean []float32 `yaml:"output_mean,omitempty"`
	OutputStd  []float32 `yaml:"output_std,omitempty"`
}

// Config is the root run configuration.
type Config struct {
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Generator  GeneratorConfig  `yaml:"generator"`
}

// Load reads a config from the given path. If the file does not exist,
// defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the standard configuration: 512 samples in batches of 8
// over a 2048-feature, 1000-class classifier with 299x299 inputs and a
// Tanh-output generator.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Evaluation.SampleBudget <= 0 {
		return fmt.Errorf("sample_budget must be positive, got %d", c.Evaluation.SampleBudget)
	}
	if c.Evaluation.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Evaluation.BatchSize)
	}
	if c.Classifier.FeatureDim <= 0 {
		return fmt.Errorf("feature_dim must be positive, got %d", c.Classifier.FeatureDim)
	}
	if c.Classifier.NumClasses <= 0 {
		return fmt.Errorf("num_classes must be positive, got %d", c.Classifier.NumClasses)
	}
	if len(c.Generator.OutputMean) != len(c.Generator.OutputStd) {
		return fmt.Errorf("output_mean and output_std lengths differ: %d vs %d",
			len(c.Generator.OutputMean), len(c.Generator.OutputStd))
	}
	if len(c.Evaluation.ConditionIndices) == 0 && c.Evaluation.NoiseDim <= 0 {
		return errors.New("noise_dim is required when condition_indices is empty")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Evaluation.SampleBudget == 0 {
		cfg.Evaluation.SampleBudget = 512
	}
	if cfg.Evaluation.BatchSize == 0 {
		cfg.Evaluation.BatchSize = 8
	}
	if len(cfg.Evaluation.ConditionIndices) == 0 && cfg.Evaluation.NoiseDim == 0 {
		cfg.Evaluation.NoiseDim = 128
	}
	if cfg.Classifier.FeatureDim == 0 {
		cfg.Classifier.FeatureDim = 2048
	}
	if cfg.Classifier.NumClasses == 0 {
		cfg.Classifier.NumClasses = 1000
	}
	if cfg.Classifier.InputSize == 0 {
		cfg.Classifier.InputSize = 299
	}
	if cfg.Generator.Channels == 0 {
		cfg.Generator.Channels = 3
	}
	if len(cfg.Generator.OutputMean) == 0 {
		for i := 0; i < cfg.Generator.Channels; i++ {
			cfg.Generator.OutputMean = append(cfg.Generator.OutputMean, 0.5)
			cfg.Generator.OutputStd = append(cfg.Generator.OutputStd, 0.5)
		}
	}
}

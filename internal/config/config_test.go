package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Evaluation.SampleBudget != 512 {
		t.Errorf("SampleBudget = %d, want 512", cfg.Evaluation.SampleBudget)
	}
	if cfg.Evaluation.BatchSize != 8 {
		t.Errorf("BatchSize = %d, want 8", cfg.Evaluation.BatchSize)
	}
	if cfg.Evaluation.NoiseDim != 128 {
		t.Errorf("NoiseDim = %d, want 128", cfg.Evaluation.NoiseDim)
	}
	if cfg.Classifier.FeatureDim != 2048 {
		t.Errorf("FeatureDim = %d, want 2048", cfg.Classifier.FeatureDim)
	}
	if cfg.Classifier.NumClasses != 1000 {
		t.Errorf("NumClasses = %d, want 1000", cfg.Classifier.NumClasses)
	}
	if cfg.Classifier.InputSize != 299 {
		t.Errorf("InputSize = %d, want 299", cfg.Classifier.InputSize)
	}
	if len(cfg.Generator.OutputMean) != 3 || cfg.Generator.OutputMean[0] != 0.5 {
		t.Errorf("OutputMean = %v, want three 0.5 entries", cfg.Generator.OutputMean)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Evaluation.SampleBudget != 512 {
		t.Errorf("SampleBudget = %d, want default 512", cfg.Evaluation.SampleBudget)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.yaml")
	payload := `evaluation:
  sample_budget: 64
  condition_indices: [1]
classifier:
  feature_dim: 192
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Evaluation.SampleBudget != 64 {
		t.Errorf("SampleBudget = %d, want 64", cfg.Evaluation.SampleBudget)
	}
	if cfg.Classifier.FeatureDim != 192 {
		t.Errorf("FeatureDim = %d, want 192", cfg.Classifier.FeatureDim)
	}
	// Unset fields fall back to defaults.
	if cfg.Evaluation.BatchSize != 8 {
		t.Errorf("BatchSize = %d, want default 8", cfg.Evaluation.BatchSize)
	}
	// Conditional generators get no noise dimension.
	if cfg.Evaluation.NoiseDim != 0 {
		t.Errorf("NoiseDim = %d, want 0 for conditional config", cfg.Evaluation.NoiseDim)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.yaml")
	payload := `evaluation:
  sample_budget: -1
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative sample budget")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.yaml")
	if err := os.WriteFile(path, []byte("evaluation: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative batch size", func(c *Config) { c.Evaluation.BatchSize = -1 }},
		{"zero feature dim", func(c *Config) { c.Classifier.FeatureDim = 0 }},
		{"zero classes", func(c *Config) { c.Classifier.NumClasses = 0 }},
		{"mean/std length mismatch", func(c *Config) { c.Generator.OutputStd = c.Generator.OutputStd[:1] }},
		{"no noise and no conditions", func(c *Config) { c.Evaluation.NoiseDim = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "eval.yaml")

	cfg := Default()
	cfg.Evaluation.SampleBudget = 100
	cfg.Evaluation.CachePath = "moments.db"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Evaluation.SampleBudget != 100 {
		t.Errorf("SampleBudget = %d, want 100", loaded.Evaluation.SampleBudget)
	}
	if loaded.Evaluation.CachePath != "moments.db" {
		t.Errorf("CachePath = %q, want %q", loaded.Evaluation.CachePath, "moments.db")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()

	// World defaults
	if config.World.Width != 800 || config.World.Height != 600 {
		t.Errorf("expected 800x600 world, got %gx%g", config.World.Width, config.World.Height)
	}
	if config.World.GravityX != 0 || config.World.GravityY != -500 {
		t.Errorf("expected gravity (0, -500), got (%g, %g)", config.World.GravityX, config.World.GravityY)
	}

	// Physics defaults
	if config.Physics.Timestep != 1.0/60.0 {
		t.Errorf("expected Timestep 1/60, got %g", config.Physics.Timestep)
	}
	if config.Physics.Iterations != 120 {
		t.Errorf("expected Iterations 120, got %d", config.Physics.Iterations)
	}
	if config.Physics.CollisionSlop != 0.01 {
		t.Errorf("expected CollisionSlop 0.01, got %g", config.Physics.CollisionSlop)
	}

	// Body and contact defaults
	if config.Body.Radius != 20 {
		t.Errorf("expected Radius 20, got %g", config.Body.Radius)
	}
	if config.Contact.ThresholdRatio != 1.02 {
		t.Errorf("expected ThresholdRatio 1.02, got %g", config.Contact.ThresholdRatio)
	}

	// Output defaults
	if config.Output.AdjacencyFile != "connections.txt" {
		t.Errorf("expected AdjacencyFile 'connections.txt', got '%s'", config.Output.AdjacencyFile)
	}
	if config.Output.ReportLayout != "20060102-150405" {
		t.Errorf("expected ReportLayout '20060102-150405', got '%s'", config.Output.ReportLayout)
	}
	if config.Sources.SeedsPath != "config.txt" || !config.Sources.UseSeeds {
		t.Errorf("expected seeds from config.txt enabled, got %+v", config.Sources)
	}

	// Logging defaults
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ballfall.yaml")

	configContent := `
world:
  width: 1000
body:
  radius: 12.5
contact:
  threshold_ratio: 1.05
batch:
  bodies: 7
  rand_seed: 42
sources:
  use_seeds: false
  segments_path: lines.txt
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.World.Width != 1000 {
		t.Errorf("expected Width 1000, got %g", config.World.Width)
	}
	if config.World.Height != 600 {
		t.Errorf("expected untouched Height 600, got %g", config.World.Height)
	}
	if config.Body.Radius != 12.5 {
		t.Errorf("expected Radius 12.5, got %g", config.Body.Radius)
	}
	if config.Contact.ThresholdRatio != 1.05 {
		t.Errorf("expected ThresholdRatio 1.05, got %g", config.Contact.ThresholdRatio)
	}
	if config.Batch.Bodies != 7 || config.Batch.RandSeed != 42 {
		t.Errorf("expected batch bodies 7 seed 42, got %+v", config.Batch)
	}
	if config.Sources.UseSeeds {
		t.Error("expected UseSeeds to be false")
	}
	if config.Sources.SegmentsPath != "lines.txt" {
		t.Errorf("expected SegmentsPath 'lines.txt', got '%s'", config.Sources.SegmentsPath)
	}
}

func TestLoad_ImplicitFileInWorkingDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	if err := os.WriteFile("ballfall.yaml", []byte("body:\n  radius: 9\n"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Body.Radius != 9 {
		t.Errorf("expected Radius 9 from ballfall.yaml, got %g", config.Body.Radius)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Body.Radius != 20 {
		t.Errorf("expected default Radius, got %g", config.Body.Radius)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for explicit missing config")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BALLFALL_OUTPUT_DIR", "/tmp/out")
	t.Setenv("BALLFALL_BODIES", "12")
	t.Setenv("BALLFALL_RADIUS", "15")
	t.Setenv("BALLFALL_THRESHOLD_RATIO", "1.1")
	t.Setenv("BALLFALL_USE_SEEDS", "false")
	t.Setenv("BALLFALL_RAND_SEED", "99")

	config := Default()
	applyEnvOverrides(config)

	if config.Output.Dir != "/tmp/out" {
		t.Errorf("expected Output.Dir '/tmp/out', got '%s'", config.Output.Dir)
	}
	if config.Batch.Bodies != 12 {
		t.Errorf("expected Bodies 12, got %d", config.Batch.Bodies)
	}
	if config.Body.Radius != 15 {
		t.Errorf("expected Radius 15, got %g", config.Body.Radius)
	}
	if config.Contact.ThresholdRatio != 1.1 {
		t.Errorf("expected ThresholdRatio 1.1, got %g", config.Contact.ThresholdRatio)
	}
	if config.Sources.UseSeeds {
		t.Error("expected UseSeeds false")
	}
	if config.Batch.RandSeed != 99 {
		t.Errorf("expected RandSeed 99, got %d", config.Batch.RandSeed)
	}
}

func TestEnvOverrides_IgnoresUnparseable(t *testing.T) {
	t.Setenv("BALLFALL_BODIES", "many")
	t.Setenv("BALLFALL_RADIUS", "big")

	config := Default()
	applyEnvOverrides(config)

	if config.Batch.Bodies != 40 {
		t.Errorf("expected default Bodies, got %d", config.Batch.Bodies)
	}
	if config.Body.Radius != 20 {
		t.Errorf("expected default Radius, got %g", config.Body.Radius)
	}
}

func TestEnvOverrides_LogLevel(t *testing.T) {
	t.Setenv("BALLFALL_LOG_LEVEL", "debug")

	config := Default()
	applyEnvOverrides(config)

	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestValidate_Valid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *BallfallConfig)
	}{
		{"zero width", func(c *BallfallConfig) { c.World.Width = 0 }},
		{"negative timestep", func(c *BallfallConfig) { c.Physics.Timestep = -1 }},
		{"negative collision slop", func(c *BallfallConfig) { c.Physics.CollisionSlop = -0.1 }},
		{"zero iterations", func(c *BallfallConfig) { c.Physics.Iterations = 0 }},
		{"zero radius", func(c *BallfallConfig) { c.Body.Radius = 0 }},
		{"zero mass", func(c *BallfallConfig) { c.Body.Mass = 0 }},
		{"ratio below one", func(c *BallfallConfig) { c.Contact.ThresholdRatio = 0.99 }},
		{"margin wider than world", func(c *BallfallConfig) { c.Spawn.Margin = 500 }},
		{"negative bodies", func(c *BallfallConfig) { c.Batch.Bodies = -1 }},
		{"zero spawn interval", func(c *BallfallConfig) { c.Batch.SpawnEvery = 0 }},
		{"no stop condition", func(c *BallfallConfig) { c.Batch.MaxFrames = 0; c.Batch.IdleFrames = 0 }},
		{"empty adjacency name", func(c *BallfallConfig) { c.Output.AdjacencyFile = "" }},
		{"negative retention count", func(c *BallfallConfig) { c.Output.Retention.MaxCount = -1 }},
		{"invalid log level", func(c *BallfallConfig) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"", "info", "debug", "trace"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			config := Default()
			config.Logging.Level = level
			if err := config.Validate(); err != nil {
				t.Errorf("expected log level '%s' to be valid, got error: %v", level, err)
			}
		})
	}
}

func TestMarshal_RoundTripsThroughLoad(t *testing.T) {
	config := Default()
	config.Body.Radius = 33

	data, err := config.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "threshold_ratio: 1.02") {
		t.Errorf("expected threshold_ratio in YAML, got:\n%s", data)
	}
	if strings.Contains(string(data), "persistence") {
		t.Errorf("unexpected collision persistence key in YAML:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "ballfall.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Body.Radius != 33 {
		t.Errorf("expected Radius 33, got %g", loaded.Body.Radius)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/ballfall.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ballfall.yaml")

	invalidYAML := `
body:
  radius: [invalid yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestRetentionConfig_Enabled(t *testing.T) {
	if Default().Output.Retention.Enabled() {
		t.Error("expected retention disabled by default")
	}
	if !(RetentionConfig{MaxCount: 3}).Enabled() {
		t.Error("expected MaxCount to enable retention")
	}
	if !(RetentionConfig{MaxAge: "30d"}).Enabled() {
		t.Error("expected MaxAge to enable retention")
	}
}

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test decal defaults
	if cfg.Decal.DefaultSize != 0.1 {
		t.Errorf("expected default size 0.1, got %f", cfg.Decal.DefaultSize)
	}
	if cfg.Decal.MinSize >= cfg.Decal.MaxSize {
		t.Errorf("expected min size < max size, got %f >= %f", cfg.Decal.MinSize, cfg.Decal.MaxSize)
	}
	if cfg.Decal.RotationStepDeg != 15 {
		t.Errorf("expected rotation step 15, got %f", cfg.Decal.RotationStepDeg)
	}
	if cfg.Decal.NormalOffset <= 0 {
		t.Error("expected positive normal offset by default")
	}

	// Test segment defaults
	if cfg.Segment.DefaultTolerance != 20 {
		t.Errorf("expected tolerance 20, got %f", cfg.Segment.DefaultTolerance)
	}
	if cfg.Segment.MaxImageDim != 2048 {
		t.Errorf("expected max image dim 2048, got %d", cfg.Segment.MaxImageDim)
	}

	// Test crop and input defaults
	if cfg.Crop.HandleThresholdPx != 10 {
		t.Errorf("expected handle threshold 10, got %f", cfg.Crop.HandleThresholdPx)
	}
	if cfg.Input.ClickThresholdPx != 4 {
		t.Errorf("expected click threshold 4, got %f", cfg.Input.ClickThresholdPx)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestRotationStep(t *testing.T) {
	c := DecalConfig{RotationStepDeg: 90}
	got := c.RotationStep()
	if math.Abs(float64(got)-math.Pi/2) > 1e-6 {
		t.Errorf("expected pi/2, got %f", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
decal:
  default_size: 0.2
  min_size: 0.05
  max_size: 1.5
  rotation_step_deg: 5

segment:
  default_tolerance: 35
  max_history: 10
  max_image_dim: 1024

crop:
  handle_threshold_px: 12
  min_size_px: 16

input:
  click_threshold_px: 6

logging:
  level: "debug"
  log_file: "decals.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Decal.DefaultSize != 0.2 {
		t.Errorf("expected default size 0.2, got %f", cfg.Decal.DefaultSize)
	}
	if cfg.Decal.MaxSize != 1.5 {
		t.Errorf("expected max size 1.5, got %f", cfg.Decal.MaxSize)
	}
	if cfg.Decal.RotationStepDeg != 5 {
		t.Errorf("expected rotation step 5, got %f", cfg.Decal.RotationStepDeg)
	}
	// Untouched keys keep their defaults
	if cfg.Decal.ResizeStep != 1.1 {
		t.Errorf("expected resize step 1.1 to survive merge, got %f", cfg.Decal.ResizeStep)
	}

	if cfg.Segment.DefaultTolerance != 35 {
		t.Errorf("expected tolerance 35, got %f", cfg.Segment.DefaultTolerance)
	}
	if cfg.Segment.MaxHistory != 10 {
		t.Errorf("expected max history 10, got %d", cfg.Segment.MaxHistory)
	}
	if cfg.Crop.MinSizePx != 16 {
		t.Errorf("expected crop min size 16, got %f", cfg.Crop.MinSizePx)
	}
	if cfg.Input.ClickThresholdPx != 6 {
		t.Errorf("expected click threshold 6, got %f", cfg.Input.ClickThresholdPx)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "decals.log" {
		t.Errorf("expected log file 'decals.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
decal:
  default_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileSanitizes(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
decal:
  min_size: -1
  max_size: 0.001
  resize_step: 0.5
segment:
  default_tolerance: 250
crop:
  min_size_px: 0
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Decal.MinSize != 0.01 {
		t.Errorf("expected min size reset to 0.01, got %f", cfg.Decal.MinSize)
	}
	if cfg.Decal.MaxSize != cfg.Decal.MinSize {
		t.Errorf("expected max size raised to min size, got %f", cfg.Decal.MaxSize)
	}
	if cfg.Decal.DefaultSize != cfg.Decal.MinSize {
		t.Errorf("expected default size clamped to %f, got %f", cfg.Decal.MinSize, cfg.Decal.DefaultSize)
	}
	if cfg.Decal.ResizeStep != 1.1 {
		t.Errorf("expected resize step reset to 1.1, got %f", cfg.Decal.ResizeStep)
	}
	if cfg.Segment.DefaultTolerance != 100 {
		t.Errorf("expected tolerance clamped to 100, got %f", cfg.Segment.DefaultTolerance)
	}
	if cfg.Crop.MinSizePx != 1 {
		t.Errorf("expected crop min size floored to 1, got %f", cfg.Crop.MinSizePx)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("decal:\n  default_size: 0.3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "tolerance flag",
			setup: func() { *flagTolerance = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Segment.DefaultTolerance != 0 {
					t.Errorf("expected tolerance 0, got %f", cfg.Segment.DefaultTolerance)
				}
			},
			teardown: func() { *flagTolerance = -1 },
		},
		{
			name:  "max-dim flag",
			setup: func() { *flagMaxDim = 512 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Segment.MaxImageDim != 512 {
					t.Errorf("expected max image dim 512, got %d", cfg.Segment.MaxImageDim)
				}
			},
			teardown: func() { *flagMaxDim = 0 },
		},
		{
			name:  "size flag",
			setup: func() { *flagSize = 0.25 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Decal.DefaultSize != 0.25 {
					t.Errorf("expected default size 0.25, got %f", cfg.Decal.DefaultSize)
				}
			},
			teardown: func() { *flagSize = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
segment:
  default_tolerance: 40
  max_image_dim: 800
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagMaxDim = 1600
	defer func() {
		*flagConfig = ""
		*flagMaxDim = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Max dim should be from flag (1600), not file (800)
	if cfg.Segment.MaxImageDim != 1600 {
		t.Errorf("expected max image dim 1600 from flag, got %d", cfg.Segment.MaxImageDim)
	}

	// Tolerance should be from file (40) since no flag override
	if cfg.Segment.DefaultTolerance != 40 {
		t.Errorf("expected tolerance 40 from file, got %f", cfg.Segment.DefaultTolerance)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Decal.DefaultSize = 0.5
	cfg.Logging.Level = "warn"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Decal.DefaultSize != 0.5 {
		t.Errorf("expected default size 0.5, got %f", loaded.Decal.DefaultSize)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", loaded.Logging.Level)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected saved config at %s: %v", path, err)
	}
}

// Package config handles editor configuration loading and management.
package config

import "math"

// Config holds all editor settings.
type Config struct {
	Decal   DecalConfig   `yaml:"decal"`
	Segment SegmentConfig `yaml:"segment"`
	Crop    CropConfig    `yaml:"crop"`
	Input   InputConfig   `yaml:"input"`
	Logging LoggingConfig `yaml:"logging"`
}

// DecalConfig holds decal placement and projection settings.
// Sizes are in world units of the target mesh.
type DecalConfig struct {
	DefaultSize     float32 `yaml:"default_size"`
	MinSize         float32 `yaml:"min_size"`
	MaxSize         float32 `yaml:"max_size"`
	ResizeStep      float32 `yaml:"resize_step"`       // Multiplier per grow/shrink command
	RotationStepDeg float32 `yaml:"rotation_step_deg"` // Degrees per rotate command
	NormalOffset    float32 `yaml:"normal_offset"`     // Lift along vertex normals
	ClipEpsilon     float32 `yaml:"clip_epsilon"`
	MinFragmentArea float32 `yaml:"min_fragment_area"`
}

// SegmentConfig holds background removal settings.
type SegmentConfig struct {
	DefaultTolerance float64 `yaml:"default_tolerance"` // 0-100
	MaxHistory       int     `yaml:"max_history"`
	MaxImageDim      int     `yaml:"max_image_dim"` // Longest side before segmentation
}

// CropConfig holds crop tool settings.
type CropConfig struct {
	HandleThresholdPx float64 `yaml:"handle_threshold_px"` // Screen pixels
	MinSizePx         float64 `yaml:"min_size_px"`         // Image pixels
}

// InputConfig holds pointer settings.
type InputConfig struct {
	ClickThresholdPx float32 `yaml:"click_threshold_px"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Decal: DecalConfig{
			DefaultSize:     0.1,
			MinSize:         0.01,
			MaxSize:         2.0,
			ResizeStep:      1.1,
			RotationStepDeg: 15,
			NormalOffset:    0.0005,
			ClipEpsilon:     1e-6,
			MinFragmentArea: 1e-12,
		},
		Segment: SegmentConfig{
			DefaultTolerance: 20,
			MaxHistory:       50,
			MaxImageDim:      2048,
		},
		Crop: CropConfig{
			HandleThresholdPx: 10,
			MinSizePx:         8,
		},
		Input: InputConfig{
			ClickThresholdPx: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// RotationStep returns the rotation step in radians.
func (c DecalConfig) RotationStep() float32 {
	return c.RotationStepDeg * math.Pi / 180
}

// sanitize replaces out-of-range values with defaults instead of rejecting the file.
func (c *Config) sanitize() {
	def := Default()

	if c.Decal.MinSize <= 0 {
		c.Decal.MinSize = def.Decal.MinSize
	}
	if c.Decal.MaxSize < c.Decal.MinSize {
		c.Decal.MaxSize = c.Decal.MinSize
	}
	if c.Decal.DefaultSize < c.Decal.MinSize || c.Decal.DefaultSize > c.Decal.MaxSize {
		c.Decal.DefaultSize = clamp32(def.Decal.DefaultSize, c.Decal.MinSize, c.Decal.MaxSize)
	}
	if c.Decal.ResizeStep <= 1 {
		c.Decal.ResizeStep = def.Decal.ResizeStep
	}
	if c.Decal.NormalOffset < 0 {
		c.Decal.NormalOffset = 0
	}

	if c.Segment.DefaultTolerance < 0 {
		c.Segment.DefaultTolerance = 0
	}
	if c.Segment.DefaultTolerance > 100 {
		c.Segment.DefaultTolerance = 100
	}
	if c.Segment.MaxHistory < 0 {
		c.Segment.MaxHistory = 0
	}

	if c.Crop.MinSizePx < 1 {
		c.Crop.MinSizePx = 1
	}
	if c.Input.ClickThresholdPx < 0 {
		c.Input.ClickThresholdPx = 0
	}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package editor

import (
	"github.com/Faultbox/decal-studio/internal/config"
	"github.com/Faultbox/decal-studio/internal/decal"
)

// Options tunes the session's placement and input handling.
type Options struct {
	Decal          decal.Options
	DefaultSize    float32
	ResizeStep     float32 // Multiplier per grow command
	RotationStep   float32 // Radians per rotate command
	ClickThreshold float32 // Pixels a press may move and still count as a click
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps editor configuration onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Decal:          ProjectionOptions(cfg.Decal),
		DefaultSize:    cfg.Decal.DefaultSize,
		ResizeStep:     cfg.Decal.ResizeStep,
		RotationStep:   cfg.Decal.RotationStep(),
		ClickThreshold: cfg.Input.ClickThresholdPx,
	}
}

// ProjectionOptions maps decal configuration onto projector options.
func ProjectionOptions(c config.DecalConfig) decal.Options {
	return decal.Options{
		NormalOffset:    c.NormalOffset,
		ClipEpsilon:     c.ClipEpsilon,
		MinFragmentArea: c.MinFragmentArea,
		MinSize:         c.MinSize,
		MaxSize:         c.MaxSize,
	}
}

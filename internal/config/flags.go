package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagTolerance = flag.Float64("tolerance", -1, "Default flood fill tolerance (0-100)")
	flagMaxDim    = flag.Int("max-dim", 0, "Longest image side before segmentation")
	flagSize      = flag.Float64("size", 0, "Default decal size in world units")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTolerance >= 0 {
		cfg.Segment.DefaultTolerance = *flagTolerance
	}
	if *flagMaxDim > 0 {
		cfg.Segment.MaxImageDim = *flagMaxDim
	}
	if *flagSize > 0 {
		cfg.Decal.DefaultSize = float32(*flagSize)
	}
}

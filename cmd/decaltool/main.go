// Package main is the entry point for the decal studio tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/config"
	"github.com/Faultbox/decal-studio/internal/logger"
)

const usage = `usage: decaltool [flags] <command> [args]

commands:
  prep     remove background and crop a source image, write a WebP texture
  project  project a decal onto a primitive target and report the geometry
  config   write the effective configuration as YAML
  view     open the interactive editor window

flags:
  -config path   config file
  -debug         debug logging
  -tolerance n   default flood fill tolerance (0-100)
  -max-dim n     longest image side before segmentation
  -size n        default decal size in world units
`

var errUsage = errors.New("invalid arguments")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd, rest := args[0], args[1:]
	logger.Sugar.Debugf("Config: %+v", cfg)

	switch cmd {
	case "prep":
		err = runPrep(cfg, rest)
	case "project":
		err = runProject(cfg, rest)
	case "config":
		err = runConfig(cfg, rest)
	case "view":
		err = runView(cfg, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConfig(cfg *config.Config, args []string) error {
	switch len(args) {
	case 0:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case 1:
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Println(args[0])
		return nil
	default:
		return errUsage
	}
}

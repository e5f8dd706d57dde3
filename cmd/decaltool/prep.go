package main

import (
	"flag"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/config"
	"github.com/Faultbox/decal-studio/internal/engine/texture"
	"github.com/Faultbox/decal-studio/internal/imaging"
	"github.com/Faultbox/decal-studio/internal/logger"
)

// prepSteps is a scripted editing session, replayed in field order.
type prepSteps struct {
	Seeds     []image.Point
	Tolerance float64
	Retune    float64 // Negative leaves the last fill alone
	Undo      int
	Redo      int
	Crop      *imaging.Rect
	Drags     []cropDrag
}

// runPrep: decaltool prep [-seed x,y]... [-tolerance n] [-retune n] [-undo n] [-redo n]
// [-crop x,y,w,h] [-drag x0,y0:x1,y1]... in out.webp
func runPrep(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("prep", flag.ExitOnError)
	var seeds pointList
	var drags dragList
	fs.Var(&seeds, "seed", "Flood fill seed x,y in image pixels (repeatable)")
	fs.Var(&drags, "drag", "Crop gesture x0,y0:x1,y1 in image pixels (repeatable)")
	tolerance := fs.Float64("tolerance", cfg.Segment.DefaultTolerance, "Flood fill tolerance (0-100)")
	retune := fs.Float64("retune", -1, "Re-run the last fill at this tolerance")
	undo := fs.Int("undo", 0, "Undo this many fills after retuning")
	redo := fs.Int("redo", 0, "Redo this many fills after undoing")
	cropArg := fs.String("crop", "", "Crop rectangle x,y,w,h in image pixels")
	fs.Parse(args)

	if fs.NArg() != 2 {
		return errUsage
	}
	in, out := fs.Arg(0), fs.Arg(1)

	steps := prepSteps{
		Seeds:     seeds,
		Tolerance: *tolerance,
		Retune:    *retune,
		Undo:      *undo,
		Redo:      *redo,
		Drags:     drags,
	}
	if *cropArg != "" {
		r, err := parseRect(*cropArg)
		if err != nil {
			return fmt.Errorf("crop: %w", err)
		}
		steps.Crop = &r
	}

	img, err := texture.Load(in)
	if err != nil {
		return err
	}
	img = texture.Downscale(img, cfg.Segment.MaxImageDim)

	p := imaging.NewPrep(img, imaging.PrepOptions{
		MaxHistory:      cfg.Segment.MaxHistory,
		HandleThreshold: cfg.Crop.HandleThresholdPx,
		MinCropSize:     cfg.Crop.MinSizePx,
	})
	replay(p, steps)

	result := p.Result()
	if err := texture.SaveWebP(out, result); err != nil {
		return err
	}

	b := result.Bounds()
	fmt.Printf("%s: %dx%d, aspect %.3f\n", out, b.Dx(), b.Dy(), p.AspectRatio())
	return nil
}

// replay applies steps to p the way the interactive editor would.
func replay(p *imaging.Prep, steps prepSteps) {
	for _, seed := range steps.Seeds {
		n := p.History.Apply(seed, steps.Tolerance)
		logger.Info("background removed",
			zap.Int("x", seed.X),
			zap.Int("y", seed.Y),
			zap.Float64("tolerance", steps.Tolerance),
			zap.Int("pixels", n))
	}

	if steps.Retune >= 0 {
		if p.History.Retune(steps.Retune) {
			logger.Info("fill retuned", zap.Float64("tolerance", steps.Retune))
		} else {
			logger.Warn("nothing to retune")
		}
	}

	for i := 0; i < steps.Undo; i++ {
		if !p.History.Undo() {
			logger.Warn("undo history exhausted", zap.Int("undone", i))
			break
		}
	}
	for i := 0; i < steps.Redo; i++ {
		if !p.History.Redo() {
			logger.Warn("redo history exhausted", zap.Int("redone", i))
			break
		}
	}

	if steps.Crop != nil {
		p.Crop.SetRect(*steps.Crop)
	}
	for _, d := range steps.Drags {
		h := p.Crop.Press(d.From, 1)
		p.Crop.Drag(d.To)
		p.Crop.Release()
		logger.Debug("crop gesture", zap.Stringer("handle", h), zap.Any("rect", p.Crop.Rect()))
	}
}

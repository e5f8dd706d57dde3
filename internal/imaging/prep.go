package imaging

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/logger"
)

// PrepOptions configures a Prep session.
type PrepOptions struct {
	MaxHistory      int
	HandleThreshold float64
	MinCropSize     float64
}

// Prep combines background removal and cropping for one source image.
// The two edits are independent; Result applies the crop to the segmented raster.
type Prep struct {
	History *History
	Crop    *CropTool
}

// NewPrep starts a session on img. img is modified in place by fills.
func NewPrep(img *image.NRGBA, opts PrepOptions) *Prep {
	b := img.Bounds()
	return &Prep{
		History: NewHistory(img, opts.MaxHistory),
		Crop:    NewCropTool(b.Dx(), b.Dy(), opts.HandleThreshold, opts.MinCropSize),
	}
}

// Result returns the cropped, segmented texture.
func (p *Prep) Result() *image.NRGBA {
	img := p.History.Image()
	r := p.Crop.Bounds().Add(img.Bounds().Min)
	out := Crop(img, r)

	logger.Debug("prepared texture",
		zap.Int("width", out.Bounds().Dx()),
		zap.Int("height", out.Bounds().Dy()))
	return out
}

// AspectRatio returns the width/height ratio of the result.
func (p *Prep) AspectRatio() float32 {
	b := p.Crop.Bounds()
	if b.Dy() == 0 {
		return 1
	}
	return float32(b.Dx()) / float32(b.Dy())
}

// Package imaging prepares source rasters for use as decal textures:
// magic-wand background removal with undo, and interactive cropping.
package imaging

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/logger"
)

// MaxTolerance is the upper bound of the tolerance scale.
const MaxTolerance = 100

// toleranceScale maps the 0-100 tolerance onto the 0-255 channel range.
const toleranceScale = 2.55

// ClampTolerance limits tol to [0, MaxTolerance].
func ClampTolerance(tol float64) float64 {
	return max(0, min(MaxTolerance, tol))
}

// FloodFill clears the alpha of every pixel 4-connected to seed whose RGB
// distance to the seed colour is within tolerance. RGB is left untouched.
// It returns the number of pixels cleared. A seed outside the image is a no-op.
func FloodFill(img *image.NRGBA, seed image.Point, tolerance float64) int {
	b := img.Bounds()
	if !seed.In(b) {
		return 0
	}

	w, h := b.Dx(), b.Dy()
	threshold := ClampTolerance(tolerance) * toleranceScale
	limit := threshold * threshold

	sx, sy := seed.X-b.Min.X, seed.Y-b.Min.Y
	so := sy*img.Stride + sx*4
	sr, sg, sb := float64(img.Pix[so]), float64(img.Pix[so+1]), float64(img.Pix[so+2])

	visited := make([]bool, w*h)
	stack := []int{sy*w + sx}
	visited[sy*w+sx] = true
	filled := 0

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%w, idx/w

		o := y*img.Stride + x*4
		dr := float64(img.Pix[o]) - sr
		dg := float64(img.Pix[o+1]) - sg
		db := float64(img.Pix[o+2]) - sb
		if dr*dr+dg*dg+db*db > limit {
			continue
		}

		img.Pix[o+3] = 0
		filled++

		if x > 0 && !visited[idx-1] {
			visited[idx-1] = true
			stack = append(stack, idx-1)
		}
		if x < w-1 && !visited[idx+1] {
			visited[idx+1] = true
			stack = append(stack, idx+1)
		}
		if y > 0 && !visited[idx-w] {
			visited[idx-w] = true
			stack = append(stack, idx-w)
		}
		if y < h-1 && !visited[idx+w] {
			visited[idx+w] = true
			stack = append(stack, idx+w)
		}
	}

	logger.Debug("flood fill",
		zap.Int("seed_x", seed.X),
		zap.Int("seed_y", seed.Y),
		zap.Float64("tolerance", tolerance),
		zap.Int("filled", filled))
	return filled
}

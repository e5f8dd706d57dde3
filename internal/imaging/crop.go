package imaging

import (
	"image"
	gomath "math"

	"golang.org/x/image/draw"
)

// Rect is a crop rectangle in image pixels.
type Rect struct {
	X, Y, W, H float64
}

// Point is a pointer position in image pixels.
type Point struct {
	X, Y float64
}

// Handle identifies what a press grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleNW
	HandleNE
	HandleSW
	HandleSE
	HandleCreate
)

func (h Handle) String() string {
	switch h {
	case HandleMove:
		return "move"
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	case HandleCreate:
		return "create"
	default:
		return "none"
	}
}

// CropTool is the press/drag/release state machine for the crop rectangle.
type CropTool struct {
	width, height float64
	threshold     float64 // Corner grab distance in screen pixels
	minSize       float64

	rect   Rect
	active Handle
	start  Point
	orig   Rect
}

// NewCropTool creates a tool covering the whole width x height image.
func NewCropTool(width, height int, threshold, minSize float64) *CropTool {
	c := &CropTool{
		width:     float64(width),
		height:    float64(height),
		threshold: threshold,
		minSize:   max(1, minSize),
	}
	c.Reset()
	return c
}

// Rect returns the current rectangle.
func (c *CropTool) Rect() Rect { return c.rect }

// Active returns the handle being dragged.
func (c *CropTool) Active() Handle { return c.active }

// Reset selects the whole image and ends any gesture.
func (c *CropTool) Reset() {
	c.rect = Rect{W: c.width, H: c.height}
	c.active = HandleNone
}

// SetRect replaces the rectangle, clamped to the image, and ends any gesture.
func (c *CropTool) SetRect(r Rect) {
	c.rect = c.clamp(r)
	c.active = HandleNone
}

// Press classifies pt against the rectangle. zoom is the display scale; the
// corner threshold shrinks in image space as zoom grows.
func (c *CropTool) Press(pt Point, zoom float64) Handle {
	if zoom <= 0 {
		zoom = 1
	}
	t := c.threshold / zoom
	r := c.rect

	corners := []struct {
		h    Handle
		x, y float64
	}{
		{HandleNW, r.X, r.Y},
		{HandleNE, r.X + r.W, r.Y},
		{HandleSW, r.X, r.Y + r.H},
		{HandleSE, r.X + r.W, r.Y + r.H},
	}

	c.active = HandleNone
	for _, k := range corners {
		if gomath.Abs(pt.X-k.x) <= t && gomath.Abs(pt.Y-k.y) <= t {
			c.active = k.h
			break
		}
	}
	if c.active == HandleNone {
		if pt.X >= r.X && pt.X <= r.X+r.W && pt.Y >= r.Y && pt.Y <= r.Y+r.H {
			c.active = HandleMove
		} else {
			c.active = HandleCreate
			c.rect = Rect{X: pt.X, Y: pt.Y}
		}
	}

	c.start = pt
	c.orig = c.rect
	return c.active
}

// Drag recomputes the rectangle from the press-time rectangle and the pointer delta.
func (c *CropTool) Drag(pt Point) {
	if c.active == HandleNone {
		return
	}

	dx, dy := pt.X-c.start.X, pt.Y-c.start.Y
	o := c.orig
	l, t, r, b := o.X, o.Y, o.X+o.W, o.Y+o.H

	switch c.active {
	case HandleMove:
		l, r = l+dx, r+dx
		t, b = t+dy, b+dy
	case HandleNW:
		l, t = l+dx, t+dy
	case HandleNE:
		r, t = r+dx, t+dy
	case HandleSW:
		l, b = l+dx, b+dy
	case HandleSE:
		r, b = r+dx, b+dy
	case HandleCreate:
		l, r = min(c.start.X, pt.X), max(c.start.X, pt.X)
		t, b = min(c.start.Y, pt.Y), max(c.start.Y, pt.Y)
	}

	if c.active != HandleMove {
		l, r = c.floorEdges(l, r, c.width, c.active == HandleNW || c.active == HandleSW)
		t, b = c.floorEdges(t, b, c.height, c.active == HandleNW || c.active == HandleNE)
	}
	c.rect = c.clamp(Rect{X: l, Y: t, W: r - l, H: b - t})
}

// Release commits the rectangle.
func (c *CropTool) Release() {
	c.rect = c.clamp(c.rect)
	c.active = HandleNone
}

// Bounds returns the rectangle rounded to whole pixels.
func (c *CropTool) Bounds() image.Rectangle {
	r := c.rect
	return image.Rect(
		int(gomath.Round(r.X)),
		int(gomath.Round(r.Y)),
		int(gomath.Round(r.X+r.W)),
		int(gomath.Round(r.Y+r.H)),
	).Intersect(image.Rect(0, 0, int(c.width), int(c.height)))
}

// floorEdges keeps lo..hi inside [0, limit] and at least minSize apart.
// When moveLo is set the low edge gives way, otherwise the high edge does.
func (c *CropTool) floorEdges(lo, hi, limit float64, moveLo bool) (float64, float64) {
	lo = max(0, min(lo, limit))
	hi = max(0, min(hi, limit))
	size := min(c.minSize, limit)
	if hi-lo >= size {
		return lo, hi
	}
	if moveLo {
		return hi - size, hi
	}
	return lo, lo + size
}

// clamp enforces the minimum size and keeps the rectangle inside the image.
func (c *CropTool) clamp(r Rect) Rect {
	r.W = min(max(r.W, min(c.minSize, c.width)), c.width)
	r.H = min(max(r.H, min(c.minSize, c.height)), c.height)
	r.X = max(0, min(r.X, c.width-r.W))
	r.Y = max(0, min(r.Y, c.height-r.H))
	return r
}

// Crop copies the r region of img into a new image with origin (0, 0).
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	r = r.Intersect(img.Bounds())
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, img, r, draw.Src, nil)
	return dst
}

package decal

import (
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/logger"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// Params is the source-of-truth state of a decal. The mesh is derived from it.
type Params struct {
	Position    math.Vec3
	Normal      math.Vec3
	Angle       float32 // In-plane rotation (radians)
	Size        float32 // Larger of width and height; also the box depth
	AspectRatio float32 // Source image width / height
	FlipH       bool
	FlipV       bool
	Layer       int
	Visible     bool
}

// Dimensions returns width and height for size and aspect.
// The larger side equals size.
func Dimensions(size, aspect float32) (width, height float32) {
	if aspect <= 0 {
		aspect = 1
	}
	if aspect >= 1 {
		return size, size / aspect
	}
	return size * aspect, size
}

// Box returns the projection volume for p.
func (p Params) Box() Box {
	w, h := Dimensions(p.Size, p.AspectRatio)
	return Box{
		Position: p.Position,
		Normal:   p.Normal,
		Size:     math.Vec3{X: w, Y: h, Z: p.Size},
		Angle:    p.Angle,
	}
}

// Build projects p onto target.
func Build(p Params, target *model.Mesh, opts Options) *Geometry {
	return Project(target, p.Box(), opts)
}

// Surface receives decal meshes for drawing. It never owns geometry.
type Surface interface {
	Add(m *Mesh)
	Remove(m *Mesh)
}

// Mesh is a decal's current geometry and material as submitted to the surface.
type Mesh struct {
	DecalID     uuid.UUID
	Geometry    *Geometry
	Material    Material
	RenderOrder int
	Visible     bool

	disposed bool
}

// Dispose releases the mesh geometry. It must be called exactly once.
func (m *Mesh) Dispose() {
	if m.disposed {
		logger.Warn("decal mesh disposed twice", zap.Stringer("decal", m.DecalID))
		return
	}
	m.disposed = true
	m.Geometry = nil
}

// Disposed reports whether Dispose has been called.
func (m *Mesh) Disposed() bool {
	return m.disposed
}

// Decal is one placed image projection. It owns exactly one mesh while alive.
type Decal struct {
	ID uuid.UUID

	params  Params
	texture image.Image
	target  *model.Mesh
	surface Surface
	opts    Options

	mesh      *Mesh
	destroyed bool
}

// New creates a decal anchored on target and submits its first mesh.
// The target must outlive the decal.
func New(p Params, tex image.Image, target *model.Mesh, surface Surface, opts Options) *Decal {
	p.Size = ClampSize(p.Size, opts)
	if p.Layer < 0 {
		p.Layer = 0
	}
	d := &Decal{
		ID:      uuid.New(),
		params:  p,
		texture: tex,
		target:  target,
		surface: surface,
		opts:    opts,
	}
	d.Rebuild()
	return d
}

// Params returns a copy of the current parameters.
func (d *Decal) Params() Params { return d.params }

// Layer returns the draw-order key.
func (d *Decal) Layer() int { return d.params.Layer }

// Visible reports whether the decal is drawn.
func (d *Decal) Visible() bool { return d.params.Visible }

// Texture returns the source raster.
func (d *Decal) Texture() image.Image { return d.texture }

// Target returns the mesh the decal is anchored to.
func (d *Decal) Target() *model.Mesh { return d.target }

// Mesh returns the current mesh, or nil after Destroy.
func (d *Decal) Mesh() *Mesh { return d.mesh }

// Dimensions returns the current width and height.
func (d *Decal) Dimensions() (width, height float32) {
	return Dimensions(d.params.Size, d.params.AspectRatio)
}

// Destroyed reports whether the decal has been deleted.
func (d *Decal) Destroyed() bool { return d.destroyed }

// Rebuild regenerates the mesh from the current parameters, replacing the old one.
func (d *Decal) Rebuild() {
	if d.destroyed {
		return
	}

	geom := Build(d.params, d.target, d.opts)
	next := &Mesh{
		DecalID:     d.ID,
		Geometry:    geom,
		Material:    NewMaterial(d.texture, d.params.FlipH, d.params.FlipV),
		RenderOrder: d.params.Layer,
		Visible:     d.params.Visible,
	}

	d.release()
	d.mesh = next
	if d.surface != nil {
		d.surface.Add(next)
	}

	logger.Debug("decal rebuilt",
		zap.Stringer("decal", d.ID),
		zap.Int("triangles", geom.TriangleCount()),
		zap.Int("layer", d.params.Layer))
}

// Destroy removes the mesh from the surface and releases it.
func (d *Decal) Destroy() {
	if d.destroyed {
		return
	}
	d.release()
	d.destroyed = true
}

func (d *Decal) release() {
	if d.mesh == nil {
		return
	}
	if d.surface != nil {
		d.surface.Remove(d.mesh)
	}
	d.mesh.Dispose()
	d.mesh = nil
}

// MoveTo re-anchors the decal at a new surface point.
func (d *Decal) MoveTo(position, normal math.Vec3) {
	d.params.Position = position
	d.params.Normal = normal
	d.Rebuild()
}

// MoveOnto re-anchors the decal on a different target mesh.
func (d *Decal) MoveOnto(target *model.Mesh, position, normal math.Vec3) {
	d.target = target
	d.params.Position = position
	d.params.Normal = normal
	d.Rebuild()
}

// Rotate adds delta radians to the in-plane angle.
func (d *Decal) Rotate(delta float32) {
	d.params.Angle += delta
	d.Rebuild()
}

// SetAngle sets the in-plane angle in radians.
func (d *Decal) SetAngle(angle float32) {
	d.params.Angle = angle
	d.Rebuild()
}

// SetSize sets the size, clamped to the configured range.
func (d *Decal) SetSize(size float32) {
	d.params.Size = ClampSize(size, d.opts)
	d.Rebuild()
}

// Resize scales the size by factor.
func (d *Decal) Resize(factor float32) {
	d.SetSize(d.params.Size * factor)
}

// SetFlip sets both mirror flags.
func (d *Decal) SetFlip(h, v bool) {
	d.params.FlipH = h
	d.params.FlipV = v
	d.Rebuild()
}

// FlipH toggles horizontal mirroring.
func (d *Decal) FlipH() {
	d.SetFlip(!d.params.FlipH, d.params.FlipV)
}

// FlipV toggles vertical mirroring.
func (d *Decal) FlipV() {
	d.SetFlip(d.params.FlipH, !d.params.FlipV)
}

// SetLayer sets the draw-order key, floored at 0.
func (d *Decal) SetLayer(layer int) {
	if layer < 0 {
		layer = 0
	}
	d.params.Layer = layer
	d.Rebuild()
}

// SetVisible shows or hides the decal.
func (d *Decal) SetVisible(visible bool) {
	d.params.Visible = visible
	d.Rebuild()
}

// ClampSize limits size to [MinSize, MaxSize]. A zero bound is not enforced.
func ClampSize(size float32, opts Options) float32 {
	if opts.MinSize > 0 && size < opts.MinSize {
		return opts.MinSize
	}
	if opts.MaxSize > 0 && size > opts.MaxSize {
		return opts.MaxSize
	}
	return size
}

// Package decal builds surface-conforming decal geometry and manages placed decals.
package decal

import (
	gomath "math"

	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/engine/picking"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// Options tunes projection and decal limits.
type Options struct {
	NormalOffset    float32 // Lift along the surface normal
	ClipEpsilon     float32 // Tolerance when classifying vertices against box planes
	MinFragmentArea float32 // Smaller triangles are dropped
	MinSize         float32
	MaxSize         float32
}

// DefaultOptions returns the built-in projection settings.
func DefaultOptions() Options {
	return Options{
		NormalOffset:    0.0005,
		ClipEpsilon:     1e-6,
		MinFragmentArea: 1e-12,
		MinSize:         0.01,
		MaxSize:         2.0,
	}
}

// Box is the oriented projection volume centered on the anchor point.
type Box struct {
	Position math.Vec3
	Normal   math.Vec3
	Size     math.Vec3 // Width, height, depth
	Angle    float32   // In-plane rotation about Normal (radians)
}

// Frame returns the box's orthonormal axes. Z points along the normal.
func (b Box) Frame() (x, y, z math.Vec3) {
	m := b.Orientation().ToMat4()
	return m.Column(0), m.Column(1), m.Column(2)
}

// Orientation returns the box rotation: the unrotated frame for the normal,
// then Angle about the normal.
func (b Box) Orientation() math.Quat {
	x, y, z := baseFrame(b.Normal)
	q := math.QuatFromBasis(x, y, z)
	if b.Angle != 0 {
		q = math.QuatFromAxisAngle(z, b.Angle).Mul(q)
	}
	return q
}

// Transform returns the box-local to world matrix.
func (b Box) Transform() math.Mat4 {
	return math.Translate(b.Position.X, b.Position.Y, b.Position.Z).Mul(b.Orientation().ToMat4())
}

// baseFrame returns the axes for normal before any in-plane rotation.
// X is up x Z with up = +Y, or +Z when the normal is nearly vertical.
func baseFrame(normal math.Vec3) (x, y, z math.Vec3) {
	z = normal.Normalize()
	if z == (math.Vec3{}) {
		z = math.Vec3{Z: 1}
	}

	up := math.Vec3{Y: 1}
	if gomath.Abs(float64(z.Dot(up))) > 0.999 {
		up = math.Vec3{Z: 1}
	}
	x = up.Cross(z).Normalize()
	y = z.Cross(x)
	return x, y, z
}

// Geometry is the projected decal mesh in world space.
type Geometry struct {
	Vertices []model.Vertex
	Indices  []uint32
	Bounds   model.Bounds
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// Empty reports whether the projection produced no triangles.
func (g *Geometry) Empty() bool {
	return g.TriangleCount() == 0
}

// Raycast returns the closest hit distance along r.
func (g *Geometry) Raycast(r picking.Ray) (float32, bool) {
	if g.Empty() {
		return 0, false
	}
	if _, ok := r.IntersectAABB(g.Bounds); !ok {
		return 0, false
	}

	best := float32(gomath.MaxFloat32)
	found := false
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a := math.Vec3From(g.Vertices[g.Indices[i]].Position)
		b := math.Vec3From(g.Vertices[g.Indices[i+1]].Position)
		c := math.Vec3From(g.Vertices[g.Indices[i+2]].Position)
		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best {
			best = t
			found = true
		}
	}
	return best, found
}

// clipVertex carries a box-local position and a world-space normal through clipping.
type clipVertex struct {
	pos    math.Vec3
	normal math.Vec3
}

// projector holds per-call state shared across triangles.
type projector struct {
	box       Box
	opts      Options
	half      math.Vec3
	toLocal   math.Mat4
	fromLocal math.Mat4
	out       *Geometry

	// Scratch buffers reused between triangles
	poly, next []clipVertex
	keep       []uint32
}

// Project clips every triangle of target against box and returns the surviving
// fragments with box-space UVs. An empty result is valid.
func Project(target *model.Mesh, box Box, opts Options) *Geometry {
	out := &Geometry{}
	if target == nil || box.Size.X <= 0 || box.Size.Y <= 0 || box.Size.Z <= 0 {
		return out
	}

	p := &projector{
		box:       box,
		opts:      opts,
		half:      box.Size.Scale(0.5),
		fromLocal: box.Transform(),
		out:       out,
	}
	p.toLocal = p.fromLocal.Inverse()

	local := picking.AABB{Min: p.half.Neg(), Max: p.half}
	if !overlaps(target.WorldBounds(), picking.TransformAABB(local, p.fromLocal)) {
		return out
	}

	normalMatrix := target.NormalMatrix()
	for i := 0; i < target.TriangleCount(); i++ {
		tri := target.WorldTriangle(i, normalMatrix)
		p.poly = p.poly[:0]
		for _, v := range tri {
			p.poly = append(p.poly, clipVertex{
				pos:    p.toLocal.TransformPoint(math.Vec3From(v.Position)),
				normal: math.Vec3From(v.Normal),
			})
		}

		switch p.classify() {
		case outside:
			continue
		case straddling:
			p.clip()
		}
		p.emit()
	}

	if len(out.Vertices) > 0 {
		out.Bounds = vertexBounds(out.Vertices)
	}
	return out
}

type classification int

const (
	inside classification = iota
	outside
	straddling
)

// classify tests the current triangle against all six planes.
func (p *projector) classify() classification {
	allInside := true
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float32{1, -1} {
			in := 0
			for _, v := range p.poly {
				if p.distance(v, axis, sign) >= -p.opts.ClipEpsilon {
					in++
				}
			}
			if in == 0 {
				return outside
			}
			if in < len(p.poly) {
				allInside = false
			}
		}
	}
	if allInside {
		return inside
	}
	return straddling
}

// distance is positive inside the plane at sign*half[axis].
func (p *projector) distance(v clipVertex, axis int, sign float32) float32 {
	return p.half.Component(axis) - sign*v.pos.Component(axis)
}

// clip runs Sutherland-Hodgman against the six box planes.
func (p *projector) clip() {
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float32{1, -1} {
			p.next = p.next[:0]
			n := len(p.poly)
			for i := 0; i < n; i++ {
				cur := p.poly[i]
				nxt := p.poly[(i+1)%n]
				dc := p.distance(cur, axis, sign)
				dn := p.distance(nxt, axis, sign)
				curIn := dc >= -p.opts.ClipEpsilon
				nxtIn := dn >= -p.opts.ClipEpsilon

				if curIn {
					p.next = append(p.next, cur)
				}
				if curIn != nxtIn {
					t := dc / (dc - dn)
					p.next = append(p.next, clipVertex{
						pos:    cur.pos.Lerp(nxt.pos, t),
						normal: cur.normal.Lerp(nxt.normal, t),
					})
				}
			}
			p.poly, p.next = p.next, p.poly
			if len(p.poly) < 3 {
				p.poly = p.poly[:0]
				return
			}
		}
	}
}

// emit fan-triangulates the current polygon, dropping slivers.
func (p *projector) emit() {
	if len(p.poly) < 3 {
		return
	}

	p.keep = p.keep[:0]
	for i := 1; i+1 < len(p.poly); i++ {
		a, b, c := p.poly[0].pos, p.poly[i].pos, p.poly[i+1].pos
		area := b.Sub(a).Cross(c.Sub(a)).Length() / 2
		if area < p.opts.MinFragmentArea {
			continue
		}
		p.keep = append(p.keep, 0, uint32(i), uint32(i+1))
	}
	if len(p.keep) == 0 {
		return
	}

	base := uint32(len(p.out.Vertices))
	for _, v := range p.poly {
		p.out.Vertices = append(p.out.Vertices, p.vertex(v))
	}
	for _, k := range p.keep {
		p.out.Indices = append(p.out.Indices, base+k)
	}
}

// vertex converts a clipped vertex to a world-space output vertex.
func (p *projector) vertex(v clipVertex) model.Vertex {
	n := v.normal.Normalize()
	if n == (math.Vec3{}) {
		n = p.box.Normal.Normalize()
	}
	world := p.fromLocal.TransformPoint(v.pos).Add(n.Scale(p.opts.NormalOffset))

	return model.Vertex{
		Position: world.Array(),
		Normal:   n.Array(),
		// Texture rows run top-down, so v grows toward the box's -Y edge.
		TexCoord: [2]float32{
			clamp01(0.5 + v.pos.X/p.box.Size.X),
			clamp01(0.5 - v.pos.Y/p.box.Size.Y),
		},
	}
}

func overlaps(a, b picking.AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func vertexBounds(vertices []model.Vertex) model.Bounds {
	p := math.Vec3From(vertices[0].Position)
	b := model.Bounds{Min: p, Max: p}
	for _, v := range vertices[1:] {
		b = b.Extend(math.Vec3From(v.Position))
	}
	return b
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}

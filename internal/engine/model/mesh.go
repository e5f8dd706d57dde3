package model

import (
	gomath "math"

	"github.com/Faultbox/decal-studio/internal/engine/picking"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// NewMesh creates a visible mesh with an identity world transform.
// Vertices with a zero normal get the normal of the first face that uses them.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		World:    math.Identity(),
		Visible:  true,
	}
	fillMissingNormals(m)
	m.Bounds = computeBounds(vertices)
	return m
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// WorldTriangle returns triangle i transformed to world space.
// Normals use the inverse-transpose of the world matrix and are renormalized.
func (m *Mesh) WorldTriangle(i int, normalMatrix math.Mat4) [3]Vertex {
	var tri [3]Vertex
	for k := 0; k < 3; k++ {
		v := m.Vertices[m.Indices[i*3+k]]
		tri[k] = Vertex{
			Position: m.World.TransformPoint(math.Vec3From(v.Position)).Array(),
			Normal:   normalMatrix.TransformDirection(math.Vec3From(v.Normal)).Normalize().Array(),
			TexCoord: v.TexCoord,
		}
	}
	return tri
}

// NormalMatrix returns the matrix that carries local normals into world space.
func (m *Mesh) NormalMatrix() math.Mat4 {
	return m.World.Inverse().Transpose()
}

// WorldBounds returns the bounding box in world space.
func (m *Mesh) WorldBounds() Bounds {
	return picking.TransformAABB(m.Bounds, m.World)
}

// Raycast returns the closest front-of-origin intersection with this mesh.
func (m *Mesh) Raycast(r picking.Ray) (Hit, bool) {
	if len(m.Indices) < 3 {
		return Hit{}, false
	}
	if _, ok := r.IntersectAABB(m.WorldBounds()); !ok {
		return Hit{}, false
	}

	best := Hit{Distance: gomath.MaxFloat32}
	found := false
	for i := 0; i < m.TriangleCount(); i++ {
		a := m.World.TransformPoint(math.Vec3From(m.Vertices[m.Indices[i*3]].Position))
		b := m.World.TransformPoint(math.Vec3From(m.Vertices[m.Indices[i*3+1]].Position))
		c := m.World.TransformPoint(math.Vec3From(m.Vertices[m.Indices[i*3+2]].Position))

		t, ok := r.IntersectTriangle(a, b, c)
		if !ok || t >= best.Distance {
			continue
		}

		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if n.Dot(r.Direction) > 0 {
			n = n.Neg()
		}
		best = Hit{Point: r.At(t), Normal: n, Distance: t, Mesh: m, Triangle: i}
		found = true
	}
	return best, found
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on loaded meshes.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.0001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(math.Vec3From(vertices[idx].Normal))
		}

		avg := sum.Normalize()
		if avg == (math.Vec3{}) {
			continue
		}
		for _, idx := range idxs {
			vertices[idx].Normal = avg.Array()
		}
	}
}

func fillMissingNormals(m *Mesh) {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := math.Vec3From(m.Vertices[i0].Position)
		b := math.Vec3From(m.Vertices[i1].Position)
		c := math.Vec3From(m.Vertices[i2].Position)
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()

		// Degenerate triangle
		if n == (math.Vec3{}) {
			continue
		}
		for _, idx := range [3]uint32{i0, i1, i2} {
			if m.Vertices[idx].Normal == [3]float32{} {
				m.Vertices[idx].Normal = n.Array()
			}
		}
	}
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	p := math.Vec3From(vertices[0].Position)
	b := Bounds{Min: p, Max: p}
	for _, v := range vertices[1:] {
		b = b.Extend(math.Vec3From(v.Position))
	}
	return b
}

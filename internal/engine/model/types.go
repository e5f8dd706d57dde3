// Package model holds the target meshes decals are projected onto.
// Meshes are owned by the loader; the decal engine only reads them.
package model

import (
	"github.com/Faultbox/decal-studio/internal/engine/picking"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
// The layout is interleaved for direct GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds = picking.AABB

// Mesh is an indexed triangle mesh placed in the world by a fixed transform.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds // Local space
	World    math.Mat4
	Visible  bool
}

// Hit describes the closest intersection of a ray with a mesh collection.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3 // Unit face normal facing the ray origin
	Distance float32
	Mesh     *Mesh
	Triangle int
}

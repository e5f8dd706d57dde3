package model

import gomath "math"

// NewPlane builds a width x height plane in the XY plane facing +Z,
// split into segments x segments quads.
func NewPlane(width, height float32, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}

	var vertices []Vertex
	var indices []uint32
	row := uint32(segments + 1)

	for j := 0; j <= segments; j++ {
		v := float32(j) / float32(segments)
		for i := 0; i <= segments; i++ {
			u := float32(i) / float32(segments)
			vertices = append(vertices, Vertex{
				Position: [3]float32{(u - 0.5) * width, (v - 0.5) * height, 0},
				Normal:   [3]float32{0, 0, 1},
				TexCoord: [2]float32{u, v},
			})
		}
	}

	for j := uint32(0); j < uint32(segments); j++ {
		for i := uint32(0); i < uint32(segments); i++ {
			a := j*row + i
			b := a + 1
			c := a + row
			d := c + 1
			indices = append(indices, a, b, d, a, d, c)
		}
	}

	return NewMesh("plane", vertices, indices)
}

// boxFaces lists each face's normal and the two in-plane axes (u x v = normal).
var boxFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewBox builds an axis-aligned box centered at the origin with flat face normals.
func NewBox(width, height, depth float32) *Mesh {
	half := [3]float32{width / 2, height / 2, depth / 2}

	var vertices []Vertex
	var indices []uint32

	for _, face := range boxFaces {
		n, u, v := face[0], face[1], face[2]
		base := uint32(len(vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p [3]float32
			for k := 0; k < 3; k++ {
				p[k] = (n[k] + u[k]*c[0] + v[k]*c[1]) * half[k]
			}
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   n,
				TexCoord: [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewMesh("box", vertices, indices)
}

// NewSphere builds a UV sphere centered at the origin. Faces are emitted
// unshared and then welded with SmoothNormals.
func NewSphere(radius float32, rings, sectors int) *Mesh {
	rings = max(rings, 2)
	sectors = max(sectors, 3)

	at := func(i, j int) Vertex {
		theta := gomath.Pi * float64(i) / float64(rings)
		phi := 2 * gomath.Pi * float64(j%sectors) / float64(sectors)
		return Vertex{
			Position: [3]float32{
				radius * float32(gomath.Sin(theta)*gomath.Cos(phi)),
				radius * float32(gomath.Cos(theta)),
				radius * float32(gomath.Sin(theta)*gomath.Sin(phi)),
			},
			TexCoord: [2]float32{float32(j) / float32(sectors), float32(i) / float32(rings)},
		}
	}

	var vertices []Vertex
	var indices []uint32
	tri := func(a, b, c Vertex) {
		base := uint32(len(vertices))
		vertices = append(vertices, a, b, c)
		indices = append(indices, base, base+1, base+2)
	}

	for i := 0; i < rings; i++ {
		for j := 0; j < sectors; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			if i > 0 {
				tri(a, d, c)
			}
			if i < rings-1 {
				tri(a, c, b)
			}
		}
	}

	m := NewMesh("sphere", vertices, indices)
	SmoothNormals(m.Vertices)
	return m
}
